package model

// Visibility controls who may see a task.
type Visibility string

const (
	VisibilityPersonal Visibility = "personal"
	VisibilityShared   Visibility = "shared"
)

// Task represents a single item in the planner. The task list is persisted
// as one JSON snapshot, so every field carries a JSON tag.
type Task struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	CategoryID  CategoryID `json:"categoryId"`
	Visibility  Visibility `json:"visibility"`
	Owner       string     `json:"owner,omitempty"` // creator's name for personal tasks, empty for shared
	Date        string     `json:"date"`            // calendar date, YYYY-MM-DD
	TimeStart   string     `json:"timeStart,omitempty"`
	TimeEnd     string     `json:"timeEnd,omitempty"`
	PrizeText   string     `json:"prizeText,omitempty"`
	Completed   bool       `json:"completed"`
}

// TimeRange renders the optional start/end times: "10:00–11:30" when both
// are set, a single time when only one is, empty otherwise.
func (t Task) TimeRange() string {
	switch {
	case t.TimeStart != "" && t.TimeEnd != "":
		return t.TimeStart + "–" + t.TimeEnd
	case t.TimeStart != "":
		return t.TimeStart
	case t.TimeEnd != "":
		return t.TimeEnd
	default:
		return ""
	}
}

// Category resolves the task's category; ok is false for a dangling id.
func (t Task) Category() (Category, bool) {
	return CategoryByID(t.CategoryID)
}
