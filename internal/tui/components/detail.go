package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/tubes/internal/domain"
	"github.com/mmcdole/tubes/internal/format"
	"github.com/mmcdole/tubes/internal/tui/styles"
)

// Detail shows the metadata of one video or channel in a scrollable panel
type Detail struct {
	video   *domain.Video
	channel *domain.Channel
	liked   bool
	later   bool
	now     func() time.Time

	width  int
	height int
	offset int
}

// NewDetail creates an empty detail panel
func NewDetail() Detail {
	return Detail{now: time.Now}
}

// SetVideo shows v, resetting scroll when the video changes
func (d *Detail) SetVideo(v *domain.Video, liked, later bool) {
	if v == nil || d.video == nil || d.video.ID != v.ID {
		d.offset = 0
	}
	d.video = v
	d.channel = nil
	d.liked = liked
	d.later = later
}

// SetChannel shows c, resetting scroll when the channel changes
func (d *Detail) SetChannel(c *domain.Channel) {
	if c == nil || d.channel == nil || d.channel.ID != c.ID {
		d.offset = 0
	}
	d.channel = c
	d.video = nil
}

// SetSize updates the component dimensions
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
}

// ScrollDown moves the body down by n lines
func (d *Detail) ScrollDown(n int) {
	d.offset += n
	d.clamp()
}

// ScrollUp moves the body up by n lines
func (d *Detail) ScrollUp(n int) {
	d.offset -= n
	d.clamp()
}

func (d *Detail) clamp() {
	maxOffset := max(len(d.lines(d.contentWidth()))-d.visible(), 0)
	d.offset = min(max(d.offset, 0), maxOffset)
}

func (d Detail) contentWidth() int {
	return max(d.width-4, 10)
}

func (d Detail) visible() int {
	return max(d.height-2, 1)
}

func (d Detail) lines(width int) []string {
	var content string
	switch {
	case d.video != nil:
		content = d.renderVideo(width)
	case d.channel != nil:
		content = d.renderChannel(width)
	default:
		content = styles.DimStyle.Render("Nothing selected")
	}
	return strings.Split(content, "\n")
}

// View renders the component
func (d Detail) View() string {
	style := styles.InactiveBorder
	lines := d.lines(d.contentWidth())

	visible := d.visible()
	offset := min(d.offset, max(len(lines)-visible, 0))
	end := min(offset+visible, len(lines))
	body := lines[offset:end]
	if end < len(lines) && len(body) > 0 {
		body[len(body)-1] = styles.DimStyle.Render("↓ more")
	}

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(d.width - frameW).
		Height(d.height - frameH).
		Padding(0, 1).
		Render(strings.Join(body, "\n"))
}

func (d Detail) renderVideo(width int) string {
	v := d.video
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(wrap.Inherit(styles.TitleStyle).Render(v.Title))
	b.WriteString("\n")
	b.WriteString(styles.AccentStyle.Render(v.ChannelTitle))
	b.WriteString("\n")

	meta := []string{format.OptionalViews(v.ViewCount) + " views"}
	if !v.PublishedAt.IsZero() {
		meta = append(meta, format.Date(v.PublishedAt)+" ("+format.RelativeTime(v.PublishedAt, d.now())+")")
	}
	if v.Duration != "" {
		meta = append(meta, format.Duration(v.Duration))
	}
	if v.LikeCount != nil {
		meta = append(meta, format.Count(*v.LikeCount)+" likes")
	}
	b.WriteString(styles.SubtitleStyle.Render(strings.Join(meta, " • ")))
	b.WriteString("\n")

	var marks []string
	if d.liked {
		marks = append(marks, styles.AccentStyle.Render("♥ Liked"))
	}
	if d.later {
		marks = append(marks, styles.AccentStyle.Render("◷ Watch later"))
	}
	marks = append(marks, styles.DimStyle.Render(v.WatchURL()))
	b.WriteString(strings.Join(marks, "  "))

	if len(v.Tags) > 0 {
		b.WriteString("\n")
		tags := make([]string, 0, len(v.Tags))
		for _, t := range v.Tags {
			tags = append(tags, "#"+t)
		}
		b.WriteString(wrap.Inherit(styles.DimStyle).Render(strings.Join(tags, " ")))
	}

	if desc := strings.TrimSpace(v.Description); desc != "" {
		b.WriteString("\n\n")
		b.WriteString(wrap.Render(desc))
	}
	return b.String()
}

func (d Detail) renderChannel(width int) string {
	c := d.channel
	wrap := lipgloss.NewStyle().Width(width)

	var b strings.Builder
	b.WriteString(wrap.Inherit(styles.TitleStyle).Render(c.Title))
	if c.CustomURL != "" {
		b.WriteString("\n")
		b.WriteString(styles.AccentStyle.Render(c.CustomURL))
	}
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("%s subscribers • %s videos • %s views",
		format.Views(c.SubscriberCount), format.Count(c.VideoCount), format.Count(c.ViewCount))))

	if desc := strings.TrimSpace(c.Description); desc != "" {
		b.WriteString("\n\n")
		b.WriteString(wrap.Render(desc))
	}
	return b.String()
}
