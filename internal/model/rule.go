package model

// Priority orders alerts in the evaluation output.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank maps a priority to its sort rank. Unknown priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Rule is one declarative alert rule. The Condition text is display-only;
// trigger logic is dispatched by ID.
type Rule struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
	Condition   string   `json:"condition,omitempty"`
}

// RuleGroups holds the rules for each data domain.
type RuleGroups struct {
	Congress  []Rule `json:"congress"`
	Funds13F  []Rule `json:"funds_13f"`
	Macro     []Rule `json:"macro"`
	Sentiment []Rule `json:"sentiment"`
}

// RuleSet is the root of the rule configuration document.
type RuleSet struct {
	Alerts RuleGroups `json:"alerts"`
}

// Len returns the total number of rules across all domains.
func (rs *RuleSet) Len() int {
	return len(rs.Alerts.Congress) + len(rs.Alerts.Funds13F) +
		len(rs.Alerts.Macro) + len(rs.Alerts.Sentiment)
}
