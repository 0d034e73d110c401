package rollup

import (
	"math"
	"time"

	"pcp-golang/internal/access"
	"pcp-golang/internal/storage"
)

// Policy selects how a work order aggregates task completion. The two
// are never mixed inside one computed tree; the engine applies the one
// it was built with everywhere.
type Policy string

const (
	// PolicyHoursWeighted divides done planned hours by total planned
	// hours, rounded to the nearest integer. Primary policy.
	PolicyHoursWeighted Policy = "hours"
	// PolicyCountBased divides done task count by total task count,
	// rounded to 2 decimals.
	PolicyCountBased Policy = "count"
)

// Engine derives percentages and statuses for a materialized project
// tree and propagates task completion upward. It is pure computation:
// collaborators load the tree, call in, and persist what was written
// back, all inside one unit of work.
type Engine struct {
	policy Policy
	perms  *access.Policy
}

func New(policy Policy, perms *access.Policy) *Engine {
	if policy == "" {
		policy = PolicyHoursWeighted
	}
	if perms == nil {
		perms = access.DefaultPolicy()
	}
	return &Engine{policy: policy, perms: perms}
}

// TaskPercent is a pure function of the task status. There is no
// continuous progress tracking: an in-progress task sits at the fixed
// midpoint.
func (e *Engine) TaskPercent(status storage.Status) float64 {
	switch status {
	case storage.StatusDone:
		return 100
	case storage.StatusInProgress:
		return 50
	default: // PLANNED, PAUSED
		return 0
	}
}

// WorkOrderPercent aggregates all tasks across the work order's stages
// under the engine's policy. Zero tasks (or zero planned hours under the
// hours policy) yield 0; an uninitialized stage set is indistinguishable
// from "no tasks yet" here, use storage.ValidateProject to tell them apart.
func (e *Engine) WorkOrderPercent(wo *storage.WorkOrder) float64 {
	var tasks []*storage.Task
	for _, st := range wo.Stages {
		tasks = append(tasks, st.Tasks...)
	}
	return e.percentOf(tasks)
}

// StagePercent applies the same policy to a single stage's tasks.
func (e *Engine) StagePercent(st *storage.Stage) float64 {
	return e.percentOf(st.Tasks)
}

func (e *Engine) percentOf(tasks []*storage.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}

	if e.policy == PolicyCountBased {
		var done int
		for _, t := range tasks {
			if t.Status == storage.StatusDone {
				done++
			}
		}
		return round2(float64(done) / float64(len(tasks)) * 100)
	}

	var total, done float64
	for _, t := range tasks {
		total += t.PlannedHours
		if t.Status == storage.StatusDone {
			done += t.PlannedHours
		}
	}
	if total == 0 {
		return 0
	}
	// Corrupt hours (storage.ValidateProject rejects them, but callers
	// may compute before validating) must not push the result outside
	// the percent range.
	return clamp(math.Round(done / total * 100))
}

func clamp(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// WorkOrderStatus derives the status from the computed percentage, in
// strict priority order: a finished order is never late.
func (e *Engine) WorkOrderStatus(wo *storage.WorkOrder, today time.Time) storage.Status {
	pct := e.WorkOrderPercent(wo)

	if pct >= 100 {
		return storage.StatusDone
	}
	if wo.PlannedEnd != nil && dateAfter(today, *wo.PlannedEnd) {
		return storage.StatusLate
	}
	if pct > 0 {
		return storage.StatusInProgress
	}
	return storage.StatusPlanned
}

// StageStatus: a stage is DONE only when every one of its tasks is DONE.
// Any other activity on its tasks makes it IN_PROGRESS.
func (e *Engine) StageStatus(st *storage.Stage) storage.Status {
	if len(st.Tasks) == 0 {
		return storage.StatusPlanned
	}

	done := true
	touched := false
	for _, t := range st.Tasks {
		if t.Status != storage.StatusDone {
			done = false
		}
		if t.Status != storage.StatusPlanned {
			touched = true
		}
	}

	if done {
		return storage.StatusDone
	}
	if touched {
		return storage.StatusInProgress
	}
	return storage.StatusPlanned
}

// ProjectPercent is the arithmetic mean over the work orders' computed
// percentages, rounded to 2 decimals. Not hours-weighted across orders.
func (e *Engine) ProjectPercent(p *storage.Project) float64 {
	if len(p.WorkOrders) == 0 {
		return 0
	}
	var sum float64
	for _, wo := range p.WorkOrders {
		sum += e.WorkOrderPercent(wo)
	}
	return round2(sum / float64(len(p.WorkOrders)))
}

// ProjectStatus has no lateness rule: project due dates are phase
// specific, so only completion and activity are derived here.
func (e *Engine) ProjectStatus(p *storage.Project) storage.Status {
	pct := e.ProjectPercent(p)
	if len(p.WorkOrders) > 0 && pct >= 100 {
		return storage.StatusDone
	}
	if pct > 0 {
		return storage.StatusInProgress
	}
	return storage.StatusPlanned
}

// TaskDisplayStatus keeps the stored lifecycle statuses and flags a
// planned task as LATE once its planned end has passed. Display only,
// never written back.
func (e *Engine) TaskDisplayStatus(t *storage.Task, today time.Time) storage.Status {
	switch t.Status {
	case storage.StatusDone, storage.StatusInProgress, storage.StatusPaused:
		return t.Status
	}
	if t.PlannedEnd != nil && dateAfter(today, *t.PlannedEnd) {
		return storage.StatusLate
	}
	return storage.StatusPlanned
}

// Recompute rewrites every derived percent and status in the tree from
// the task statuses. Running it twice on an unchanged tree is a no-op.
func (e *Engine) Recompute(p *storage.Project, today time.Time) {
	for _, wo := range p.WorkOrders {
		for _, st := range wo.Stages {
			st.Percent = e.StagePercent(st)
			st.Status = e.StageStatus(st)
		}
		wo.Percent = e.WorkOrderPercent(wo)
		wo.Status = e.WorkOrderStatus(wo, today)
	}
	p.Percent = e.ProjectPercent(p)
	p.Status = e.ProjectStatus(p)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// dateAfter compares calendar days, ignoring the time of day.
func dateAfter(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	aa := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	bb := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return aa.After(bb)
}
