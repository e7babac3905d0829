// Package crew holds the four code-generation agents and the pipeline that runs them.
package crew

// Priority levels a planned task can carry.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Task is one planned micro-task.
type Task struct {
	ID       string `json:"id"`
	Task     string `json:"task"`
	Priority string `json:"priority"`
}

// CodeResult is the coder's output.
type CodeResult struct {
	Code        string `json:"code"`
	Language    string `json:"language"`
	Description string `json:"description"`
}

// Review is the critic's verdict.
type Review struct {
	Score       int      `json:"score"`
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
	Approved    bool     `json:"approved"`
}

// TestSuite is the tester's output.
type TestSuite struct {
	TestCode    string `json:"test_code"`
	Language    string `json:"language"`
	Description string `json:"description"`
}
