package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/danielmiessler/Personal-AI-Infrastructure-sub011/internal/policy"
	"github.com/danielmiessler/Personal-AI-Infrastructure-sub011/internal/redact"
)

var (
	blockStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	askStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	allowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	reasonStyle  = lipgloss.NewStyle().Faint(true)
	patternStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

func renderVerdict(verdict policy.Verdict) string {
	reason := redact.Scrub(strings.TrimSpace(verdict.Reason))
	switch verdict.Action() {
	case policy.ActionBlock:
		return fmt.Sprintf("%s %s", blockStyle.Render("BLOCKED:"), reason)
	case policy.ActionAsk:
		return fmt.Sprintf("%s %s", askStyle.Render("CONFIRM:"), reason)
	default:
		return allowStyle.Render("allowed")
	}
}

func renderRuleTable(title string, rows [][2]string) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(title))
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString(reasonStyle.Render("  (none configured)"))
		b.WriteString("\n")
		return b.String()
	}
	for _, row := range rows {
		b.WriteString("  ")
		b.WriteString(patternStyle.Render(row[0]))
		if row[1] != "" {
			b.WriteString("  ")
			b.WriteString(reasonStyle.Render(row[1]))
		}
		b.WriteString("\n")
	}
	return b.String()
}
