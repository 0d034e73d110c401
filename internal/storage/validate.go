package storage

import (
	"errors"
	"fmt"
)

var (
	ErrOrphan          = errors.New("entity has no owning parent")
	ErrUnknownStage    = errors.New("stage name outside the fixed set")
	ErrDuplicateStage  = errors.New("duplicate stage name in work order")
	ErrIncompleteStage = errors.New("work order is missing fixed stages")
	ErrDuplicateTask   = errors.New("duplicate task number in work order")
	ErrBadPercent      = errors.New("percent outside [0,100]")
	ErrBadStatus       = errors.New("status outside the defined set")
	ErrBadHours        = errors.New("planned hours must not be negative")
)

var taskStatuses = map[Status]bool{
	StatusPlanned:    true,
	StatusInProgress: true,
	StatusPaused:     true,
	StatusDone:       true,
}

var stageStatuses = map[Status]bool{
	StatusPlanned:    true,
	StatusInProgress: true,
	StatusDone:       true,
}

var fixedStages = []StageName{
	StageCut, StageBend, StagePaint, StageBoilerwork, StageAssembly, StageStartup,
}

// ValidateProject checks the structural invariants of a materialized
// project tree before the rollup engine touches it: parent ids line up,
// stage names come from the fixed set with no duplicates, task numbers
// are unique per work order, and stored percents/statuses are in range.
// A work order whose stages were never initialized (zero stages) is
// accepted; a partially initialized one is not.
func ValidateProject(p *Project) error {
	const op = "storage.ValidateProject"

	if !inRange(p.Percent) {
		return fmt.Errorf("%s: project %d: %w", op, p.ID, ErrBadPercent)
	}

	for _, wo := range p.WorkOrders {
		if wo.ProjectID != p.ID {
			return fmt.Errorf("%s: work order %s belongs to project %d, not %d: %w",
				op, wo.Number, wo.ProjectID, p.ID, ErrOrphan)
		}
		if err := validateWorkOrder(wo); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

func validateWorkOrder(wo *WorkOrder) error {
	if !inRange(wo.Percent) {
		return fmt.Errorf("work order %s: %w", wo.Number, ErrBadPercent)
	}

	seen := map[StageName]bool{}
	taskNumbers := map[string]bool{}

	for _, st := range wo.Stages {
		if st.WorkOrderID != wo.ID {
			return fmt.Errorf("stage %s of work order %s: %w", st.Name, wo.Number, ErrOrphan)
		}
		if !isFixed(st.Name) {
			return fmt.Errorf("work order %s: stage %q: %w", wo.Number, st.Name, ErrUnknownStage)
		}
		if seen[st.Name] {
			return fmt.Errorf("work order %s: stage %q: %w", wo.Number, st.Name, ErrDuplicateStage)
		}
		seen[st.Name] = true

		if !inRange(st.Percent) {
			return fmt.Errorf("stage %s of %s: %w", st.Name, wo.Number, ErrBadPercent)
		}
		if st.Status != "" && !stageStatuses[st.Status] {
			return fmt.Errorf("stage %s of %s: status %q: %w", st.Name, wo.Number, st.Status, ErrBadStatus)
		}
		if st.PlannedHours < 0 {
			return fmt.Errorf("stage %s of %s: %.1fh: %w", st.Name, wo.Number, st.PlannedHours, ErrBadHours)
		}

		for _, t := range st.Tasks {
			if t.StageID != st.ID {
				return fmt.Errorf("task %s: %w", t.Number, ErrOrphan)
			}
			if t.Number != "" {
				if taskNumbers[t.Number] {
					return fmt.Errorf("work order %s: task %q: %w", wo.Number, t.Number, ErrDuplicateTask)
				}
				taskNumbers[t.Number] = true
			}
			if t.Status != "" && !taskStatuses[t.Status] {
				return fmt.Errorf("task %s: status %q: %w", t.Number, t.Status, ErrBadStatus)
			}
			if t.PlannedHours < 0 {
				return fmt.Errorf("task %s: %.1fh: %w", t.Number, t.PlannedHours, ErrBadHours)
			}
		}
	}

	// Stages are created in bulk, so any initialized work order must
	// carry the whole fixed set.
	if len(wo.Stages) > 0 && len(seen) < len(fixedStages) {
		return fmt.Errorf("work order %s has %d of %d stages: %w",
			wo.Number, len(seen), len(fixedStages), ErrIncompleteStage)
	}

	return nil
}

func isFixed(name StageName) bool {
	for _, s := range fixedStages {
		if s == name {
			return true
		}
	}
	return false
}

func inRange(pct float64) bool {
	return pct >= 0 && pct <= 100
}
