package model

import "time"

// Alert is one instance of a rule having triggered against one record.
// Alerts are rebuilt from scratch every evaluation pass; nothing carries
// over between passes.
type Alert struct {
	ID          string    `json:"id"`
	RuleID      string    `json:"rule_id"`
	Name        string    `json:"name"`
	Priority    Priority  `json:"priority"`
	Description string    `json:"description"`
	Subject     string    `json:"subject,omitempty"`
	Record      any       `json:"record,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
