// Package tui renders a finished benchmark run's per-worker load
// distribution as a lipgloss-styled bar per row, rather than a
// bubbletea program, since a bench run is a one-shot report, not a
// long-lived interactive session.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
)

// RenderLoadBars renders one bar per worker, scaled to the busiest
// worker, plus a title line naming the policy and imbalance ratio.
func RenderLoadBars(policy string, perWorker []int64, imbalanceRatio float64, width int) string {
	if width < 20 {
		width = 20
	}

	var max int64
	for _, c := range perWorker {
		if c > max {
			max = c
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  (imbalance %.2fx)", policy, imbalanceRatio)))
	b.WriteString("\n")

	for teamID, executed := range perWorker {
		label := labelStyle.Render(fmt.Sprintf("w%d", teamID))
		barLen := 0
		if max > 0 {
			barLen = int(float64(width) * float64(executed) / float64(max))
		}
		bar := barStyle.Render(strings.Repeat("█", barLen))
		b.WriteString(fmt.Sprintf("%s %s %d\n", label, bar, executed))
	}

	return b.String()
}
