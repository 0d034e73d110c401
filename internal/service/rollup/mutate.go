package rollup

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pcp-golang/internal/access"
	"pcp-golang/internal/storage"
)

var (
	ErrPermission = errors.New("actor is not allowed to perform this action")
	// ErrTaskNotFound means the task id is not in the loaded tree. That
	// is an invariant violation on the collaborator's side, not a
	// recoverable condition.
	ErrTaskNotFound  = errors.New("task not found in project tree")
	ErrBadTransition = errors.New("status transition not allowed")
	ErrPauseReason   = errors.New("pausing a task requires a justification")
)

// StartTask moves a planned or paused task to IN_PROGRESS, stamps its
// actual start and recomputes the chain above it.
func (e *Engine) StartTask(actor access.Actor, p *storage.Project, taskID int64, now time.Time) error {
	const op = "rollup.StartTask"

	task, st, _, err := findTask(p, taskID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !e.perms.CanOnStage(actor, access.ActionEditTask, st.Name) {
		return fmt.Errorf("%s: %s on stage %s: %w", op, actor.Email, st.Name, ErrPermission)
	}
	if task.Status != storage.StatusPlanned && task.Status != storage.StatusPaused {
		return fmt.Errorf("%s: task %s is %s: %w", op, task.Number, task.Status, ErrBadTransition)
	}

	task.Status = storage.StatusInProgress
	task.PauseReason = ""
	if task.ActualStart == nil {
		task.ActualStart = &now
	}
	if st.ActualStart == nil {
		st.ActualStart = &now
	}

	e.Recompute(p, now)
	return nil
}

// PauseTask suspends an in-progress task. The justification is required
// and stored verbatim.
func (e *Engine) PauseTask(actor access.Actor, p *storage.Project, taskID int64, reason string, now time.Time) error {
	const op = "rollup.PauseTask"

	task, st, _, err := findTask(p, taskID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !e.perms.CanOnStage(actor, access.ActionEditTask, st.Name) {
		return fmt.Errorf("%s: %s on stage %s: %w", op, actor.Email, st.Name, ErrPermission)
	}
	if task.Status != storage.StatusInProgress {
		return fmt.Errorf("%s: task %s is %s: %w", op, task.Number, task.Status, ErrBadTransition)
	}
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("%s: task %s: %w", op, task.Number, ErrPauseReason)
	}

	task.Status = storage.StatusPaused
	task.PauseReason = reason

	e.Recompute(p, now)
	return nil
}

// CompleteTask marks a task DONE and propagates upward synchronously:
// the owning stage closes once all of its tasks are done, the work order
// percent and status are rederived, and when every work order of the
// project is done the project closes too. Completing an already done
// task recomputes and returns nil, so replays are harmless.
func (e *Engine) CompleteTask(actor access.Actor, p *storage.Project, taskID int64, now time.Time) error {
	const op = "rollup.CompleteTask"

	task, st, wo, err := findTask(p, taskID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !e.perms.CanOnStage(actor, access.ActionEditTask, st.Name) {
		return fmt.Errorf("%s: %s on stage %s: %w", op, actor.Email, st.Name, ErrPermission)
	}

	if task.Status != storage.StatusDone {
		task.Status = storage.StatusDone
		task.ActualEnd = &now
	}

	// Stage closes with its last task.
	if e.StageStatus(st) == storage.StatusDone && st.ActualEnd == nil {
		st.ActualEnd = &now
	}

	e.Recompute(p, now)

	if wo.Status == storage.StatusDone && p.Status == storage.StatusDone && p.ActualEnd == nil {
		p.ActualEnd = &now
	}

	return nil
}

// findTask resolves a task and its owning stage and work order inside
// the materialized tree.
func findTask(p *storage.Project, taskID int64) (*storage.Task, *storage.Stage, *storage.WorkOrder, error) {
	for _, wo := range p.WorkOrders {
		for _, st := range wo.Stages {
			for _, t := range st.Tasks {
				if t.ID == taskID {
					return t, st, wo, nil
				}
			}
		}
	}
	return nil, nil, nil, fmt.Errorf("task %d in project %d: %w", taskID, p.ID, ErrTaskNotFound)
}
