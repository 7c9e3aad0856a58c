package domain

// StateTransition is one state change applied to the created record.
type StateTransition struct {
	TargetState int
}

// TransitionsFromStates keeps the order of states.
func TransitionsFromStates(states []int) []StateTransition {
	transitions := make([]StateTransition, 0, len(states))
	for _, s := range states {
		transitions = append(transitions, StateTransition{TargetState: s})
	}
	return transitions
}

// Stage names the step of the lifecycle a run stopped at.
type Stage string

const (
	StageCreate     Stage = "create"
	StageTransition Stage = "transition"
)

// LifecycleResult is either Succeeded (SysID set) or Failed (Stage set).
type LifecycleResult struct {
	SysID  string
	Number string

	Stage Stage
	// Index of the failed transition, zero-based. Only meaningful when
	// Stage is StageTransition.
	Index int
	Err   error
}

func Succeeded(sysID, number string) LifecycleResult {
	return LifecycleResult{SysID: sysID, Number: number}
}

func FailedCreate(err error) LifecycleResult {
	return LifecycleResult{Stage: StageCreate, Err: err}
}

// FailedTransition keeps the sys_id: the record exists remotely in whatever
// state the last successful transition left it.
func FailedTransition(sysID, number string, index int, err error) LifecycleResult {
	return LifecycleResult{SysID: sysID, Number: number, Stage: StageTransition, Index: index, Err: err}
}

func (r LifecycleResult) Succeeded() bool {
	return r.Stage == "" && r.Err == nil
}

// Reason is the remote payload or message that caused the failure.
func (r LifecycleResult) Reason() string {
	return ErrorPayload(r.Err)
}
