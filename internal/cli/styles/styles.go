package styles

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/kdpii/nerlabel/internal/config"
	"github.com/kdpii/nerlabel/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Tasks:", "Labels:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Annotations"

	// Status styles
	CompletedStyle   lipgloss.Style
	OverlappingStyle lipgloss.Style
	SuccessStyle     lipgloss.Style
	ErrorStyle       lipgloss.Style
	WarningStyle     lipgloss.Style
)

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Accent)).
		Bold(true).
		MarginTop(1)

	CompletedStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Completed))

	OverlappingStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Overlapping))

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.InfoFg)).
		Background(lipgloss.Color(colors.InfoBg)).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg)).
		Background(lipgloss.Color(colors.ErrorBg)).
		Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.WarningFg)).
		Background(lipgloss.Color(colors.WarningBg)).
		Padding(0, 1)
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// BoldColoredText renders bold text with a hex color
func BoldColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// RenderLabelChip renders a label as "[value]" in the label's color
func RenderLabelChip(label *models.Label) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(label.Background)).
		Bold(true).
		Render("[" + label.Value + "]")
}

// RenderField renders a "Name: value" line
func RenderField(name string, value any) string {
	return LabelStyle.Render(name+":") + " " + ValueStyle.Render(fmt.Sprint(value))
}

// RenderProgress renders completion as "done/total (pct%)"
func RenderProgress(done, total int, pct float64) string {
	text := fmt.Sprintf("%d/%d (%.1f%%)", done, total, pct)
	if total > 0 && done == total {
		return CompletedStyle.Render(text)
	}
	return ValueStyle.Render(text)
}

// RenderDistribution renders label counts, largest first
func RenderDistribution(dist map[string]int) string {
	values := make([]string, 0, len(dist))
	for v := range dist {
		values = append(values, v)
	}
	slices.SortFunc(values, func(a, b string) int {
		if dist[a] != dist[b] {
			return dist[b] - dist[a]
		}
		return strings.Compare(a, b)
	})

	var b strings.Builder
	for _, v := range values {
		fmt.Fprintf(&b, "  %-20s %d\n", v, dist[v])
	}
	return strings.TrimRight(b.String(), "\n")
}

// HighlightSpans renders text with each annotated span colored by its
// first label. Spans nested inside an earlier span are left to the outer one.
func HighlightSpans(text string, annotations []*models.Annotation, colors map[string]string) string {
	sorted := slices.Clone(annotations)
	slices.SortFunc(sorted, func(a, b *models.Annotation) int {
		if a.Start != b.Start {
			return a.Start - b.Start
		}
		return b.End - a.End
	})

	runes := []rune(text)
	var b strings.Builder
	cursor := 0
	for _, a := range sorted {
		if a.Start < cursor || a.End > len(runes) {
			continue
		}
		b.WriteString(string(runes[cursor:a.Start]))
		color, ok := colors[a.FirstLabel()]
		if !ok {
			color = models.DefaultLabelColor
		}
		b.WriteString(BoldColoredText(string(runes[a.Start:a.End]), color))
		cursor = a.End
	}
	b.WriteString(string(runes[cursor:]))
	return b.String()
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
