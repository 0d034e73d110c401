package rollup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcp-golang/internal/access"
	"pcp-golang/internal/storage"
)

var admin = access.Actor{Email: "admin@nexon.com", Role: access.RoleAdmin}

// projectWithTasks builds one project with one fully staged work order
// carrying the given tasks on CUT, ids 1..n.
func projectWithTasks(hours []float64) *storage.Project {
	var tasks []*storage.Task
	for i, h := range hours {
		tasks = append(tasks, task(int64(i+1), h, storage.StatusPlanned))
	}
	wo := fullOrder(1, "OP-0001", tasks...)
	return &storage.Project{ID: 1, Code: "OBR-01", WorkOrders: []*storage.WorkOrder{wo}}
}

func TestStartTask(t *testing.T) {
	e := New(PolicyHoursWeighted, nil)
	p := projectWithTasks([]float64{2, 2})
	now := date(2026, time.January, 5)

	err := e.StartTask(admin, p, 1, now)
	require.NoError(t, err)

	tk := p.WorkOrders[0].Stages[0].Tasks[0]
	assert.Equal(t, storage.StatusInProgress, tk.Status)
	require.NotNil(t, tk.ActualStart)
	assert.Equal(t, now, *tk.ActualStart)
	assert.Equal(t, storage.StatusInProgress, p.WorkOrders[0].Stages[0].Status)

	// Only DONE hours weigh in, so the order itself is still at 0%.
	assert.Equal(t, 0.0, p.WorkOrders[0].Percent)

	// Restarting an in-progress task is rejected.
	err = e.StartTask(admin, p, 1, now)
	assert.ErrorIs(t, err, ErrBadTransition)
}

func TestPauseTask(t *testing.T) {
	e := New(PolicyHoursWeighted, nil)
	p := projectWithTasks([]float64{2, 2})
	now := date(2026, time.January, 5)

	require.NoError(t, e.StartTask(admin, p, 1, now))

	// No justification, no pause.
	err := e.PauseTask(admin, p, 1, "  ", now)
	assert.ErrorIs(t, err, ErrPauseReason)

	err = e.PauseTask(admin, p, 1, "waiting for material", now)
	require.NoError(t, err)

	tk := p.WorkOrders[0].Stages[0].Tasks[0]
	assert.Equal(t, storage.StatusPaused, tk.Status)
	assert.Equal(t, "waiting for material", tk.PauseReason)

	// A paused task contributes nothing.
	assert.Equal(t, 0.0, e.WorkOrderPercent(p.WorkOrders[0]))

	// Resume clears the justification.
	require.NoError(t, e.StartTask(admin, p, 1, now))
	assert.Equal(t, "", tk.PauseReason)
}

func TestCompleteTask_Propagation(t *testing.T) {
	e := New(PolicyHoursWeighted, nil)
	now := date(2026, time.January, 5)

	p := projectWithTasks([]float64{2, 2, 2, 2})
	wo := p.WorkOrders[0]

	require.NoError(t, e.CompleteTask(admin, p, 1, now))
	require.NoError(t, e.CompleteTask(admin, p, 2, now))

	assert.Equal(t, 50.0, wo.Percent)
	assert.Equal(t, storage.StatusInProgress, wo.Status)
	assert.Equal(t, storage.StatusInProgress, wo.Stages[0].Status)
	assert.Equal(t, storage.StatusInProgress, p.Status)

	require.NoError(t, e.CompleteTask(admin, p, 3, now))
	require.NoError(t, e.CompleteTask(admin, p, 4, now))

	assert.Equal(t, 100.0, wo.Percent)
	assert.Equal(t, storage.StatusDone, wo.Status)
	assert.Equal(t, storage.StatusDone, wo.Stages[0].Status)
	assert.Equal(t, 100.0, wo.Stages[0].Percent)
	require.NotNil(t, wo.Stages[0].ActualEnd)

	// Only one work order, so the project closes with it.
	assert.Equal(t, storage.StatusDone, p.Status)
	assert.NotNil(t, p.ActualEnd)
}

func TestCompleteTask_ProjectWaitsForSiblings(t *testing.T) {
	e := New(PolicyHoursWeighted, nil)
	now := date(2026, time.January, 5)

	p := projectWithTasks([]float64{2})
	sibling := fullOrder(2, "OP-0002", task(10, 3, storage.StatusPlanned))
	p.WorkOrders = append(p.WorkOrders, sibling)

	require.NoError(t, e.CompleteTask(admin, p, 1, now))

	assert.Equal(t, storage.StatusDone, p.WorkOrders[0].Status)
	assert.NotEqual(t, storage.StatusDone, p.Status)
	assert.Nil(t, p.ActualEnd)

	require.NoError(t, e.CompleteTask(admin, p, 10, now))
	assert.Equal(t, storage.StatusDone, p.Status)
	assert.NotNil(t, p.ActualEnd)
}

func TestCompleteTask_Replay(t *testing.T) {
	e := New(PolicyHoursWeighted, nil)
	now := date(2026, time.January, 5)
	later := date(2026, time.January, 8)

	p := projectWithTasks([]float64{2})
	require.NoError(t, e.CompleteTask(admin, p, 1, now))
	end := *p.WorkOrders[0].Stages[0].Tasks[0].ActualEnd

	// Completing again keeps the original timestamp.
	require.NoError(t, e.CompleteTask(admin, p, 1, later))
	assert.Equal(t, end, *p.WorkOrders[0].Stages[0].Tasks[0].ActualEnd)
}

func TestMutations_Permissions(t *testing.T) {
	e := New(PolicyHoursWeighted, nil)
	p := projectWithTasks([]float64{2})
	now := date(2026, time.January, 5)

	viewer := access.Actor{Email: "viewer@nexon.com", Role: access.RoleViewer}
	err := e.CompleteTask(viewer, p, 1, now)
	assert.ErrorIs(t, err, ErrPermission)

	// The assembly specialist may not touch a CUT task.
	assembler := access.Actor{Email: "montagem@nexon.com", Role: access.RoleSpecialist}
	err = e.StartTask(assembler, p, 1, now)
	assert.ErrorIs(t, err, ErrPermission)

	// The structure specialist may.
	structure := access.Actor{Email: "estrutura@nexon.com", Role: access.RoleSpecialist}
	assert.NoError(t, e.StartTask(structure, p, 1, now))
}

func TestMutations_TaskNotFound(t *testing.T) {
	e := New(PolicyHoursWeighted, nil)
	p := projectWithTasks([]float64{2})

	err := e.CompleteTask(admin, p, 999, date(2026, time.January, 5))
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
