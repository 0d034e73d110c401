package schedule

import (
	"time"

	"pcp-golang/internal/constants"
	"pcp-golang/internal/storage"
)

// DefaultHoursPerDay is the shop's productivity constant: one operator
// burns this many planned hours per working day.
const DefaultHoursPerDay = 9.0

type Calculator struct {
	hoursPerDay float64
}

func NewCalculator(hoursPerDay float64) *Calculator {
	if hoursPerDay <= 0 {
		hoursPerDay = DefaultHoursPerDay
	}
	return &Calculator{hoursPerDay: hoursPerDay}
}

// PlannedEnd walks forward one calendar day at a time from start. Each
// weekday consumes hoursPerDay from the remaining counter, weekends
// consume nothing. Without a start date or with no hours the start is
// returned unchanged. The estimate is discrete per day: 9 hours starting
// Monday still end on Monday.
func (c *Calculator) PlannedEnd(start *time.Time, hours float64) *time.Time {
	if start == nil || hours <= 0 {
		return start
	}

	remaining := hours
	day := *start
	for remaining > 0 {
		if isWorkday(day) {
			remaining -= c.hoursPerDay
		}
		if remaining > 0 {
			day = day.AddDate(0, 0, 1)
		}
	}

	return &day
}

// StageStart derives the inherited start date for tasks created in bulk
// on a stage. Fabrication stages follow the project's fabrication phase,
// ASSEMBLY follows the assembly phase, and STARTUP begins one calendar
// day after ASSEMBLY's computed planned end.
func (c *Calculator) StageStart(name storage.StageName, p *storage.Project, wo *storage.WorkOrder) *time.Time {
	if constants.FabricationStages[name] {
		return p.FabricationStart
	}

	switch name {
	case storage.StageAssembly:
		return p.AssemblyStart
	case storage.StageStartup:
		asm := findStage(wo, storage.StageAssembly)
		if asm == nil || p.AssemblyStart == nil {
			return p.AssemblyStart
		}
		end := c.PlannedEnd(p.AssemblyStart, stageHours(asm))
		if end == nil {
			return nil
		}
		next := end.AddDate(0, 0, 1)
		return &next
	}

	return nil
}

// ResyncStart derives the start date when re-dating tasks on an already
// initialized work order. Fabrication stages align with the earliest
// planned task start on the sibling CUT and BEND stages, so late-added
// work lines up with what was already scheduled; with nothing scheduled
// yet, and for the other stages, it falls back to StageStart.
func (c *Calculator) ResyncStart(name storage.StageName, p *storage.Project, wo *storage.WorkOrder) *time.Time {
	if constants.FabricationStages[name] {
		if s := earliestTaskStart(wo, storage.StageCut, storage.StageBend); s != nil {
			return s
		}
	}
	return c.StageStart(name, p, wo)
}

func earliestTaskStart(wo *storage.WorkOrder, names ...storage.StageName) *time.Time {
	var earliest *time.Time
	for _, name := range names {
		st := findStage(wo, name)
		if st == nil {
			continue
		}
		for _, t := range st.Tasks {
			if t.PlannedStart == nil {
				continue
			}
			if earliest == nil || t.PlannedStart.Before(*earliest) {
				earliest = t.PlannedStart
			}
		}
	}
	return earliest
}

// stageHours prefers the stage's own planned hours and falls back to the
// sum over its tasks when the stage level figure was never filled in.
func stageHours(st *storage.Stage) float64 {
	if st.PlannedHours > 0 {
		return st.PlannedHours
	}
	var total float64
	for _, t := range st.Tasks {
		total += t.PlannedHours
	}
	return total
}

func findStage(wo *storage.WorkOrder, name storage.StageName) *storage.Stage {
	if wo == nil {
		return nil
	}
	for _, st := range wo.Stages {
		if st.Name == name {
			return st
		}
	}
	return nil
}

func isWorkday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
