package progress

// TaskStatus は必須タスクの状態です。
type TaskStatus string

const (
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusLocked    TaskStatus = "locked"
	TaskStatusNeedsFix  TaskStatus = "needs_fix"
)

// IsValid は s が既知の状態かどうかを返します。
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusCompleted, TaskStatusPending, TaskStatusLocked, TaskStatusNeedsFix:
		return true
	default:
		return false
	}
}

// Task は画面に表示される必須タスクです。
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"desc"`
	Status      TaskStatus `json:"status"`
	To          string     `json:"to"`
}

// Action は「続ける」ボタンのラベルと遷移先です。
type Action struct {
	Label string `json:"label"`
	To    string `json:"to"`
}

// Step は順序付きステップの 1 つです。TaskTitle で対応するタスクを引きます。
type Step struct {
	Label     string `json:"label"`
	TaskTitle string `json:"task_title"`
	Continue  Action `json:"continue"`
}

// CanonicalSteps はオンボーディングの正規ステップ順です。
var CanonicalSteps = []Step{
	{Label: "Apply", TaskTitle: "Apply", Continue: Action{Label: "Review Application", To: "/progress"}},
	{Label: "Docs", TaskTitle: "Employment Documents", Continue: Action{Label: "Review Employment Documents", To: "/documents"}},
	{Label: "I-9", TaskTitle: "I-9 Readiness", Continue: Action{Label: "Review I-9 Readiness", To: "/i9"}},
	{Label: "PPE", TaskTitle: "Safety Footwear", Continue: Action{Label: "Order Safety Footwear", To: "/safety"}},
	{Label: "Shift", TaskTitle: "Shift Selection", Continue: Action{Label: "Select Your Shift", To: "/shift/select"}},
	{Label: "Photo", TaskTitle: "Photo for Badge", Continue: Action{Label: "Upload Badge Photo", To: "/photo"}},
	{Label: "Start", TaskTitle: "Start Work", Continue: Action{Label: "View First Day Instructions", To: "/first-day"}},
}

// DefaultTasks は初期表示用の必須タスク一覧を返します。
func DefaultTasks() []Task {
	return []Task{
		{ID: "rt1", Title: "Apply", Description: "Pre-approved before access", Status: TaskStatusCompleted, To: "/progress"},
		{ID: "rt2", Title: "Employment Documents", Description: "Acknowledge required policies", Status: TaskStatusPending, To: "/documents"},
		{ID: "rt3", Title: "I-9 Readiness", Description: "Review eligibility verification requirements", Status: TaskStatusPending, To: "/i9"},
		{ID: "rt4", Title: "Safety Footwear", Description: "Obtain required safety footwear", Status: TaskStatusPending, To: "/safety"},
		{ID: "rt5", Title: "Shift Selection", Description: "Select your available work schedule", Status: TaskStatusPending, To: "/shift/select"},
		{ID: "rt6", Title: "Photo for Badge", Description: "Complete badge photo requirements", Status: TaskStatusLocked, To: "/photo"},
		{ID: "rt7", Title: "Start Work", Description: "Review first day instructions", Status: TaskStatusLocked, To: "/first-day"},
	}
}
