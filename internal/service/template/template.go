package template

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pcp-golang/internal/constants"
	"pcp-golang/internal/service/schedule"
	"pcp-golang/internal/storage"
)

var (
	ErrProductMismatch = errors.New("model is bound to a different product")
	ErrUnknownStage    = errors.New("model references a stage outside the fixed set")
)

// Replayer instantiates work order models ("ModeloOP") and keeps the
// fixed stage set synchronized on existing work orders.
type Replayer struct {
	sched *schedule.Calculator
}

func NewReplayer(sched *schedule.Calculator) *Replayer {
	if sched == nil {
		sched = schedule.NewCalculator(0)
	}
	return &Replayer{sched: sched}
}

// EnsureStages backfills any missing fixed stages on the work order, in
// production order. Existing stages are left untouched. Returns how many
// stages were created.
func (r *Replayer) EnsureStages(wo *storage.WorkOrder) int {
	have := map[storage.StageName]bool{}
	for _, st := range wo.Stages {
		have[st.Name] = true
	}

	created := 0
	for _, name := range constants.FixedStages {
		if have[name] {
			continue
		}
		wo.Stages = append(wo.Stages, &storage.Stage{
			WorkOrderID: wo.ID,
			Name:        name,
			Status:      storage.StatusPlanned,
		})
		created++
	}
	return created
}

// Apply replays a model onto a work order: the fixed stages are ensured,
// each templated stage gets its planned hours, and each templated task
// is created with the next dotted number, the stage's inherited start
// date and a planned end computed from its hours.
func (r *Replayer) Apply(model *storage.WorkOrderModel, p *storage.Project, wo *storage.WorkOrder) error {
	const op = "template.Apply"

	if model.Product != "" && wo.Product != "" && model.Product != wo.Product {
		return fmt.Errorf("%s: model %q is for %q, work order %s is for %q: %w",
			op, model.Name, model.Product, wo.Number, wo.Product, ErrProductMismatch)
	}

	for _, ms := range model.Stages {
		if !constants.IsFixedStage(ms.Name) {
			return fmt.Errorf("%s: model %q: stage %q: %w", op, model.Name, ms.Name, ErrUnknownStage)
		}
	}

	r.EnsureStages(wo)

	for _, ms := range model.Stages {
		st := findStage(wo, ms.Name)
		if ms.PlannedHours > 0 {
			st.PlannedHours = ms.PlannedHours
		}

		start := r.sched.StageStart(ms.Name, p, wo)
		for _, mt := range ms.Tasks {
			task := &storage.Task{
				StageID:      st.ID,
				Number:       NextTaskNumber(wo),
				Title:        mt.Title,
				PlannedHours: mt.PlannedHours,
				PlannedStart: start,
				PlannedEnd:   r.sched.PlannedEnd(start, mt.PlannedHours),
				Status:       storage.StatusPlanned,
			}
			st.Tasks = append(st.Tasks, task)
		}
	}

	return nil
}

// Resync backfills any missing fixed stages and re-dates tasks that
// were created without a schedule. Fabrication tasks align with the
// earliest task start already planned on CUT or BEND; tasks that carry
// a planned start keep it. Returns how many stages were created.
func (r *Replayer) Resync(p *storage.Project, wo *storage.WorkOrder) int {
	created := r.EnsureStages(wo)

	for _, st := range wo.Stages {
		start := r.sched.ResyncStart(st.Name, p, wo)
		for _, t := range st.Tasks {
			if t.PlannedStart != nil {
				continue
			}
			t.PlannedStart = start
			t.PlannedEnd = r.sched.PlannedEnd(start, t.PlannedHours)
		}
	}

	return created
}

// NextTaskNumber yields "<workorder-number>.<index>", unique within the
// work order and monotonically increasing in creation order.
func NextTaskNumber(wo *storage.WorkOrder) string {
	prefix := wo.Number + "."
	max := 0
	for _, st := range wo.Stages {
		for _, t := range st.Tasks {
			if !strings.HasPrefix(t.Number, prefix) {
				continue
			}
			if n, err := strconv.Atoi(strings.TrimPrefix(t.Number, prefix)); err == nil && n > max {
				max = n
			}
		}
	}
	return prefix + strconv.Itoa(max+1)
}

func findStage(wo *storage.WorkOrder, name storage.StageName) *storage.Stage {
	for _, st := range wo.Stages {
		if st.Name == name {
			return st
		}
	}
	return nil
}
