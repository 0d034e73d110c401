package storage

import "time"

// Status values shared by tasks, stages, work orders and projects.
// LATE is derived only, it is never stored.
type Status string

const (
	StatusPlanned    Status = "PLANNED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusPaused     Status = "PAUSED"
	StatusDone       Status = "DONE"
	StatusLate       Status = "LATE"
)

// StageName is one of the six fixed manufacturing stages of a work order.
type StageName string

const (
	StageCut        StageName = "CUT"
	StageBend       StageName = "BEND"
	StagePaint      StageName = "PAINT"
	StageBoilerwork StageName = "BOILERWORK"
	StageAssembly   StageName = "ASSEMBLY"
	StageStartup    StageName = "STARTUP"
)

// EntryStatus marks whether a time entry is still running.
type EntryStatus string

const (
	EntryOpen     EntryStatus = "OPEN"
	EntryFinished EntryStatus = "FINISHED"
)

type Project struct {
	ID     int64  `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Client string `json:"client"`

	Status  Status  `json:"status"`
	Percent float64 `json:"percent"`

	// Fabrication phase window (cut/bend/paint/boilerwork).
	FabricationStart *time.Time `json:"fabrication_start"`
	FabricationEnd   *time.Time `json:"fabrication_end"`

	// Assembly phase window (assembly/startup).
	AssemblyStart *time.Time `json:"assembly_start"`
	AssemblyEnd   *time.Time `json:"assembly_end"`

	ActualEnd *time.Time `json:"actual_end"`

	Products   []ProjectProduct `json:"products"`
	WorkOrders []*WorkOrder     `json:"work_orders"`
}

type ProjectProduct struct {
	ProductID int64  `json:"product_id"`
	Product   string `json:"product"`
	Quantity  int    `json:"quantity"`
}

type WorkOrder struct {
	ID        int64  `json:"id"`
	Number    string `json:"number"`
	ProjectID int64  `json:"project_id"`

	Product  string `json:"product"`
	Quantity int    `json:"quantity"`

	IssueDate    *time.Time `json:"issue_date"`
	PlannedStart *time.Time `json:"planned_start"`
	PlannedEnd   *time.Time `json:"planned_end"`

	Percent float64 `json:"percent"`
	Status  Status  `json:"status"`

	Stages []*Stage `json:"stages"`
}

type Stage struct {
	ID          int64     `json:"id"`
	WorkOrderID int64     `json:"work_order_id"`
	Name        StageName `json:"name"`

	PlannedHours  float64 `json:"planned_hours"`
	ResponsibleID *int64  `json:"responsible_id"`

	ActualStart *time.Time `json:"actual_start"`
	ActualEnd   *time.Time `json:"actual_end"`

	Percent float64 `json:"percent"`
	Status  Status  `json:"status"`

	Tasks []*Task `json:"tasks"`
}

type Task struct {
	ID            int64  `json:"id"`
	StageID       int64  `json:"stage_id"`
	ResponsibleID *int64 `json:"responsible_id"`

	// Dotted sequence number, e.g. "OP-0042.3".
	Number      string `json:"number"`
	Title       string `json:"title"`
	Description string `json:"description"`

	PlannedHours float64 `json:"planned_hours"`
	ActualHours  float64 `json:"actual_hours"`

	PlannedStart *time.Time `json:"planned_start"`
	PlannedEnd   *time.Time `json:"planned_end"`
	ActualStart  *time.Time `json:"actual_start"`
	ActualEnd    *time.Time `json:"actual_end"`

	Status      Status `json:"status"`
	PauseReason string `json:"pause_reason"`
}

// TimeEntry is one operator work session booked against a stage.
type TimeEntry struct {
	ID          int64 `json:"id"`
	ProjectID   int64 `json:"project_id"`
	WorkOrderID int64 `json:"work_order_id"`
	StageID     int64 `json:"stage_id"`

	OperatorID int64  `json:"operator_id"`
	MachineID  *int64 `json:"machine_id"`

	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`

	GoodQty  int    `json:"good_qty"`
	ScrapQty int    `json:"scrap_qty"`
	Note     string `json:"note"`

	Status EntryStatus `json:"status"`
}

type Operator struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Badge  string `json:"badge"`
	Active bool   `json:"active"`
}

type Machine struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
	Active bool   `json:"active"`
}

// WorkOrderModel is a reusable stage/task template bound to a product type.
type WorkOrderModel struct {
	ID          int64        `json:"id"`
	Product     string       `json:"product"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Stages      []ModelStage `json:"stages"`
}

type ModelStage struct {
	Name         StageName   `json:"name"`
	PlannedHours float64     `json:"planned_hours"`
	Tasks        []ModelTask `json:"tasks"`
}

type ModelTask struct {
	Title        string  `json:"title"`
	PlannedHours float64 `json:"planned_hours"`
}
