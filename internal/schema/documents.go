package schema

// Summary is the summary document shape.
type Summary struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

// Priorities accepted for an action item.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// ActionItem is a single extracted task. DueDate and Priority are nullable.
type ActionItem struct {
	Owner    string  `json:"owner"`
	Task     string  `json:"task"`
	DueDate  *string `json:"due_date"`
	Priority *string `json:"priority" validate:"omitempty,oneof=high medium low"`
}

// ActionItems is the action-items document shape.
type ActionItems struct {
	ActionItems []ActionItem `json:"action_items" validate:"dive"`
}
