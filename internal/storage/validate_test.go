package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProject() *Project {
	p := &Project{ID: 1, Code: "OBR-01"}
	wo := &WorkOrder{ID: 1, Number: "OP-0001", ProjectID: 1}
	for i, name := range []StageName{StageCut, StageBend, StagePaint, StageBoilerwork, StageAssembly, StageStartup} {
		wo.Stages = append(wo.Stages, &Stage{ID: int64(i + 1), WorkOrderID: 1, Name: name, Status: StatusPlanned})
	}
	wo.Stages[0].Tasks = []*Task{
		{ID: 1, StageID: 1, Number: "OP-0001.1", Status: StatusPlanned},
		{ID: 2, StageID: 1, Number: "OP-0001.2", Status: StatusDone},
	}
	p.WorkOrders = []*WorkOrder{wo}
	return p
}

func TestValidateProject_OK(t *testing.T) {
	assert.NoError(t, ValidateProject(validProject()))
}

func TestValidateProject_UninitializedOrderOK(t *testing.T) {
	// Zero stages means "not yet initialized", which is legal.
	p := &Project{ID: 1, WorkOrders: []*WorkOrder{{ID: 1, Number: "OP-0001", ProjectID: 1}}}
	assert.NoError(t, ValidateProject(p))
}

func TestValidateProject_Violations(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Project)
		wantErr error
	}{
		{
			"orphan work order",
			func(p *Project) { p.WorkOrders[0].ProjectID = 99 },
			ErrOrphan,
		},
		{
			"orphan stage",
			func(p *Project) { p.WorkOrders[0].Stages[2].WorkOrderID = 99 },
			ErrOrphan,
		},
		{
			"orphan task",
			func(p *Project) { p.WorkOrders[0].Stages[0].Tasks[0].StageID = 99 },
			ErrOrphan,
		},
		{
			"unknown stage name",
			func(p *Project) { p.WorkOrders[0].Stages[1].Name = "POLISHING" },
			ErrUnknownStage,
		},
		{
			"duplicate stage",
			func(p *Project) { p.WorkOrders[0].Stages[1].Name = StageCut },
			ErrDuplicateStage,
		},
		{
			"missing stage",
			func(p *Project) { p.WorkOrders[0].Stages = p.WorkOrders[0].Stages[:5] },
			ErrIncompleteStage,
		},
		{
			"duplicate task number",
			func(p *Project) { p.WorkOrders[0].Stages[0].Tasks[1].Number = "OP-0001.1" },
			ErrDuplicateTask,
		},
		{
			"percent out of range",
			func(p *Project) { p.WorkOrders[0].Percent = 120 },
			ErrBadPercent,
		},
		{
			"negative project percent",
			func(p *Project) { p.Percent = -1 },
			ErrBadPercent,
		},
		{
			"bad task status",
			func(p *Project) { p.WorkOrders[0].Stages[0].Tasks[0].Status = "CANCELLED" },
			ErrBadStatus,
		},
		{
			"negative task hours",
			func(p *Project) { p.WorkOrders[0].Stages[0].Tasks[1].PlannedHours = -2 },
			ErrBadHours,
		},
		{
			"negative stage hours",
			func(p *Project) { p.WorkOrders[0].Stages[3].PlannedHours = -9 },
			ErrBadHours,
		},
		{
			"late is never stored on a stage",
			func(p *Project) { p.WorkOrders[0].Stages[0].Status = StatusLate },
			ErrBadStatus,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := validProject()
			tc.mutate(p)
			err := ValidateProject(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}
