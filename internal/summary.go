package internal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	summaryTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("62")).
				Bold(true).
				Underline(true)

	summaryLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	summaryValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Bold(true)
)

// Summary is the final report of one extraction run
type Summary struct {
	Channel            string
	Cycles             int
	TotalEmitted       int
	UniqueParticipants int
}

// Ratio returns emitted messages per unique participant,
// or 0 when no participant was identified
func (s Summary) Ratio() float64 {
	if s.UniqueParticipants == 0 {
		return 0
	}
	return float64(s.TotalEmitted) / float64(s.UniqueParticipants)
}

// RenderSummary renders a styled terminal summary block
func RenderSummary(s Summary) string {
	var b strings.Builder
	b.WriteString(summaryTitleStyle.Render("📊 Extraction Summary"))
	b.WriteString("\n")
	if s.Channel != "" {
		b.WriteString(fmt.Sprintf("%s %s\n",
			summaryLabelStyle.Render("Channel:"),
			summaryValueStyle.Render(s.Channel)))
	}
	b.WriteString(fmt.Sprintf("%s %s\n",
		summaryLabelStyle.Render("Cycles run:"),
		summaryValueStyle.Render(fmt.Sprintf("%d", s.Cycles))))
	b.WriteString(fmt.Sprintf("%s %s\n",
		summaryLabelStyle.Render("Messages captured:"),
		summaryValueStyle.Render(fmt.Sprintf("%d", s.TotalEmitted))))
	b.WriteString(fmt.Sprintf("%s %s\n",
		summaryLabelStyle.Render("Unique participants:"),
		summaryValueStyle.Render(fmt.Sprintf("%d", s.UniqueParticipants))))
	if s.UniqueParticipants > 0 {
		b.WriteString(fmt.Sprintf("%s %s\n",
			summaryLabelStyle.Render("Messages per participant:"),
			summaryValueStyle.Render(fmt.Sprintf("%.1f", s.Ratio()))))
	}
	return b.String()
}
