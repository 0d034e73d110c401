package access

import (
	"pcp-golang/internal/constants"
	"pcp-golang/internal/storage"
)

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "MANAGER"
	RoleOperator   Role = "OPERATOR"
	RoleSpecialist Role = "SPECIALIST"
	RoleViewer     Role = "VIEWER"
)

type Action string

const (
	ActionCreateProject   Action = "create_project"
	ActionEditProject     Action = "edit_project"
	ActionDeleteProject   Action = "delete_project"
	ActionCreateWorkOrder Action = "create_work_order"
	ActionEditWorkOrder   Action = "edit_work_order"
	ActionDeleteWorkOrder Action = "delete_work_order"
	ActionCreateTask      Action = "create_task"
	ActionEditTask        Action = "edit_task"
	ActionDeleteTask      Action = "delete_task"
	ActionView            Action = "view"
)

// Actor is the already-authenticated caller. The engine never reads
// ambient session state; collaborators resolve the user and pass this in.
type Actor struct {
	Email string
	Role  Role
}

// Policy is a pure role -> actions lookup plus the specialist -> stage
// restriction. It is plain data so collaborators can inject their own.
type Policy struct {
	Actions          map[Role][]Action
	SpecialistStages map[string][]storage.StageName
}

func DefaultPolicy() *Policy {
	return &Policy{
		Actions: map[Role][]Action{
			RoleAdmin: {
				ActionCreateProject, ActionEditProject, ActionDeleteProject,
				ActionCreateWorkOrder, ActionEditWorkOrder, ActionDeleteWorkOrder,
				ActionCreateTask, ActionEditTask, ActionDeleteTask,
				ActionView,
			},
			RoleManager: {
				ActionCreateWorkOrder, ActionEditWorkOrder,
				ActionCreateTask, ActionEditTask,
				ActionView,
			},
			RoleOperator: {
				ActionEditTask,
				ActionView,
			},
			RoleSpecialist: {
				ActionCreateTask, ActionEditTask, ActionDeleteTask,
				ActionView,
			},
			RoleViewer: {
				ActionView,
			},
		},
		SpecialistStages: constants.SpecialistStages,
	}
}

func (p *Policy) Can(a Actor, action Action) bool {
	for _, allowed := range p.Actions[a.Role] {
		if allowed == action {
			return true
		}
	}
	return false
}

// CanOnStage additionally applies the specialist stage restriction.
// Non-specialist roles fall through to the plain action check.
func (p *Policy) CanOnStage(a Actor, action Action, stage storage.StageName) bool {
	if !p.Can(a, action) {
		return false
	}
	if a.Role != RoleSpecialist {
		return true
	}
	for _, s := range p.SpecialistStages[a.Email] {
		if s == stage {
			return true
		}
	}
	return false
}
