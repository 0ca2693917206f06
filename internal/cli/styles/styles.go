package styles

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/trtodo/internal/config/colors"
	"github.com/thenoetrevino/trtodo/internal/models"
)

// Palette holds the hex colors used by CLI output
type Palette struct {
	Accent  string
	Title   string
	Subtle  string
	Normal  string
	High    string
	Medium  string
	Low     string
	Success string
	Error   string
}

// DefaultPalette is used until Init is called with another one
var DefaultPalette = FromScheme(*colors.Default())

// FromScheme maps a configured theme onto the CLI palette
func FromScheme(s colors.ColorScheme) Palette {
	return Palette{
		Accent:  s.Accent,
		Title:   s.Title,
		Subtle:  s.Subtle,
		Normal:  s.Normal,
		High:    s.High,
		Medium:  s.Medium,
		Low:     s.Low,
		Success: s.Success,
		Error:   s.Error,
	}
}

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 72

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Priority:"
	ValueStyle    lipgloss.Style // For field values
	DoneStyle     lipgloss.Style

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	priorityStyles map[models.Priority]lipgloss.Style
)

func init() {
	Init(DefaultPalette)
}

// Init initializes all CLI styles with the given palette
func Init(p Palette) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.Accent)).
		Padding(0, 1).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Normal))

	DoneStyle = lipgloss.NewStyle().
		Strikethrough(true).
		Foreground(lipgloss.Color(p.Subtle))

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Success))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.Error))

	priorityStyles = map[models.Priority]lipgloss.Style{
		models.PriorityHigh:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.High)),
		models.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Medium)),
		models.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.Low)),
	}
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// RenderPriority renders a priority token in its color
func RenderPriority(p models.Priority) string {
	style, ok := priorityStyles[p]
	if !ok {
		return p.String()
	}
	return style.Render(p.String())
}

// RenderTaskLine renders one task for list output
// Format: "[✓] #12 Title (high) due 2025-03-17"
func RenderTaskLine(t models.Task) string {
	check := "[ ]"
	title := TitleStyle.Render(t.Title)
	if t.Completed {
		check = SuccessStyle.Render("[✓]")
		title = DoneStyle.Render(t.Title)
	}

	line := fmt.Sprintf("%s %s %s (%s)", check, SubtitleStyle.Render(fmt.Sprintf("#%d", t.ID)), title, RenderPriority(t.Priority))
	if t.DueDate != nil {
		line += " " + SubtitleStyle.Render("due "+t.DueDate.Format("2006-01-02"))
	}
	return line
}

// RenderCategoryLine renders one category for list output, marking the current one
func RenderCategoryLine(c models.Category, taskCount int, current bool) string {
	marker := "  "
	if current {
		marker = SuccessStyle.Render("* ")
	}
	line := fmt.Sprintf("%s%s %s %s", marker, SubtitleStyle.Render(fmt.Sprintf("#%d", c.ID)),
		TitleStyle.Render(c.Name), SubtitleStyle.Render(fmt.Sprintf("(%d tasks)", taskCount)))
	if c.Description != "" {
		line += " " + ValueStyle.Render(c.Description)
	}
	return line
}

// RenderField renders "Label: value"
func RenderField(label, value string) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value)
}

// RenderTaskCard renders the detail view of a task
func RenderTaskCard(t models.Task, categoryName string) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("#%d %s", t.ID, t.Title)))
	b.WriteString("\n\n")
	if categoryName == "" {
		categoryName = "(deleted)"
	}
	status := "open"
	if t.Completed {
		status = "completed"
	}
	fields := []string{
		RenderField("Category", categoryName),
		LabelStyle.Render("Priority:") + " " + RenderPriority(t.Priority),
		RenderField("Status", status),
	}
	if t.DueDate != nil {
		fields = append(fields, RenderField("Due", t.DueDate.Format("2006-01-02")))
	}
	fields = append(fields,
		RenderField("Created", t.CreatedAt.Format("2006-01-02 15:04")),
		RenderField("Updated", t.UpdatedAt.Format("2006-01-02 15:04")),
	)
	b.WriteString(strings.Join(fields, "\n"))
	if t.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(ValueStyle.Render(t.Description))
	}
	return RenderCard(b.String())
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
