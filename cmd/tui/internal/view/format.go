package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	gainStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lossStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// FormatMoney renders a value like 12345.6 as "12,345.60".
func FormatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	s := fmt.Sprintf("%.2f", v)
	dot := strings.IndexByte(s, '.')

	var b strings.Builder
	for i := 0; i < dot; i++ {
		if i > 0 && (dot-i)%3 == 0 {
			b.WriteByte(',')
		}

		b.WriteByte(s[i])
	}

	return sign + b.String() + s[dot:]
}

// FormatPercent renders a signed percentage with two decimals.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// ColorPercent renders a percentage green for gains and red for losses.
func ColorPercent(v float64) string {
	if v < 0 {
		return lossStyle.Render(FormatPercent(v))
	}

	return gainStyle.Render(FormatPercent(v))
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
