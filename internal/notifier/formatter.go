package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"MarketRadar/internal/model"
)

var priorityIcons = map[model.Priority]string{
	model.PriorityHigh:   "🔴",
	model.PriorityMedium: "🟡",
	model.PriorityLow:    "🟢",
}

// FormatAlertDigest formats an evaluation pass into a Telegram message.
// Alerts are expected to arrive already sorted by priority.
func FormatAlertDigest(alerts []model.Alert) string {
	if len(alerts) == 0 {
		return "✅ No active alerts."
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("🚨 <b>MarketRadar Alerts</b> | %s\n\n", time.Now().Format("2006-01-02 15:04")))

	for _, a := range alerts {
		icon, ok := priorityIcons[a.Priority]
		if !ok {
			icon = "⚪"
		}
		b.WriteString(fmt.Sprintf("%s <b>%s</b>\n", icon, a.Name))
		if a.Subject != "" {
			b.WriteString(fmt.Sprintf("   %s\n", a.Subject))
		}
		if detail := formatRecord(a.Record); detail != "" {
			b.WriteString(fmt.Sprintf("   %s\n", detail))
		}
	}

	b.WriteString(fmt.Sprintf("\nTotal: %d alert(s)", len(alerts)))
	return b.String()
}

// formatRecord renders a one-line detail for the record an alert fired on.
func formatRecord(record any) string {
	switch r := record.(type) {
	case model.CongressTransaction:
		if r.AmountMin == nil {
			return ""
		}
		amount := fmt.Sprintf("$%s", humanize.Commaf(*r.AmountMin))
		if r.AmountMax != nil && *r.AmountMax > *r.AmountMin {
			amount += fmt.Sprintf(" - $%s", humanize.Commaf(*r.AmountMax))
		}
		return fmt.Sprintf("%s %s on %s", strings.ToUpper(r.TransactionType), amount, r.Date)
	case model.Holding:
		parts := make([]string, 0, 2)
		if r.Value != nil {
			parts = append(parts, fmt.Sprintf("value $%s", humanize.Commaf(*r.Value)))
		}
		if r.ChangePct != nil {
			parts = append(parts, fmt.Sprintf("change %+.1f%%", *r.ChangePct))
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

// FormatStatus formats the scheduler's runtime status for display.
func FormatStatus(loadedAt time.Time, activeAlerts int, nextEval time.Time) string {
	var b strings.Builder
	b.WriteString("📦 <b>MarketRadar Status</b>\n\n")
	if loadedAt.IsZero() {
		b.WriteString("Data loaded: never\n")
	} else {
		b.WriteString(fmt.Sprintf("Data loaded: %s\n", humanize.Time(loadedAt)))
	}
	b.WriteString(fmt.Sprintf("Active alerts: %d\n", activeAlerts))
	if !nextEval.IsZero() {
		b.WriteString(fmt.Sprintf("Next evaluation: %s\n", humanize.Time(nextEval)))
	}
	return b.String()
}
