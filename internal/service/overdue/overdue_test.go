package overdue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcp-golang/internal/storage"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func scanFixture() []*storage.Project {
	respID := int64(7)
	return []*storage.Project{{
		ID:   1,
		Code: "OBR-01",
		WorkOrders: []*storage.WorkOrder{{
			ID:        1,
			Number:    "OP-0001",
			ProjectID: 1,
			Stages: []*storage.Stage{{
				ID:          1,
				WorkOrderID: 1,
				Name:        storage.StageCut,
				Tasks: []*storage.Task{
					// Three days late.
					{ID: 1, StageID: 1, Number: "OP-0001.1", Title: "cut plates",
						PlannedHours: 9, PlannedEnd: datePtr(2026, time.January, 2),
						Status: storage.StatusInProgress, ResponsibleID: &respID},
					// Late but already done.
					{ID: 2, StageID: 1, Number: "OP-0001.2", Title: "cut beams",
						PlannedEnd: datePtr(2026, time.January, 2), Status: storage.StatusDone},
					// Due today, not late yet.
					{ID: 3, StageID: 1, Number: "OP-0001.3", Title: "deburr",
						PlannedEnd: datePtr(2026, time.January, 5), Status: storage.StatusPlanned},
					// No planned end at all.
					{ID: 4, StageID: 1, Number: "OP-0001.4", Title: "unplanned",
						Status: storage.StatusPlanned},
				},
			}},
		}},
	}}
}

func TestScan(t *testing.T) {
	operators := []*storage.Operator{{ID: 7, Name: "J. Silva", Active: true}}
	today := time.Date(2026, time.January, 5, 10, 30, 0, 0, time.UTC)

	alerts := Scan(scanFixture(), operators, today)

	require.Len(t, alerts, 1)
	a := alerts[0]
	assert.Equal(t, int64(1), a.TaskID)
	assert.Equal(t, "OP-0001.1", a.TaskNumber)
	assert.Equal(t, "OP-0001", a.WorkOrderNumber)
	assert.Equal(t, storage.StageCut, a.StageName)
	assert.Equal(t, "J. Silva", a.Responsible)
	assert.Equal(t, 3, a.DaysLate)
}

func TestScan_NothingLate(t *testing.T) {
	today := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	alerts := Scan(scanFixture(), nil, today)
	assert.Empty(t, alerts)
}

func TestScan_UnassignedResponsible(t *testing.T) {
	projects := scanFixture()
	projects[0].WorkOrders[0].Stages[0].Tasks[0].ResponsibleID = nil
	today := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	alerts := Scan(projects, nil, today)
	require.Len(t, alerts, 1)
	assert.Equal(t, "", alerts[0].Responsible)
}
