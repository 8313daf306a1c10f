// Package progress は必須タスクの状態からステッパーの表示モデルを導出します。
package progress

// StepState はステップの表示状態です。
type StepState string

const (
	StepStateDone    StepState = "done"
	StepStateCurrent StepState = "current"
	StepStatePending StepState = "pending"
)

// StepView はステップと表示状態の組です。
type StepView struct {
	Step  Step      `json:"step"`
	State StepState `json:"state"`
}

// View はステッパー全体の表示モデルです。
type View struct {
	// CompletedIndex は先頭から連続して完了しているステップの最後の添字です。1 つもなければ -1。
	CompletedIndex int        `json:"completed_index"`
	CurrentIndex   int        `json:"current_index"`
	Steps          []StepView `json:"steps"`
	Continue       Action     `json:"continue"`
}

// Derive は steps を先頭から走査し、最初に完了していないステップで停止します。
// 後続のステップが completed でも、途中に未完了があればそこを越えて進めません。
// 対応するタスクが見つからないステップは未完了として扱います。
func Derive(steps []Step, tasks []Task) View {
	statusByTitle := make(map[string]TaskStatus, len(tasks))
	for _, t := range tasks {
		if _, dup := statusByTitle[t.Title]; !dup {
			statusByTitle[t.Title] = t.Status
		}
	}

	completed := -1
	for i, step := range steps {
		if statusByTitle[step.TaskTitle] != TaskStatusCompleted {
			break
		}
		completed = i
	}

	current := clampIndex(completed+1, len(steps))

	views := make([]StepView, len(steps))
	for i, step := range steps {
		state := StepStatePending
		switch {
		case i <= completed:
			state = StepStateDone
		case i == current:
			state = StepStateCurrent
		}
		views[i] = StepView{Step: step, State: state}
	}

	return View{
		CompletedIndex: completed,
		CurrentIndex:   current,
		Steps:          views,
		Continue:       ContinueAction(steps, current),
	}
}

// ContinueAction は index のステップに対応する CTA を返します。index は有効範囲に丸められます。
func ContinueAction(steps []Step, index int) Action {
	if len(steps) == 0 {
		return Action{}
	}
	return steps[clampIndex(index, len(steps))].Continue
}

func clampIndex(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
