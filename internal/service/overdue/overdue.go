package overdue

import (
	"time"

	"pcp-golang/internal/storage"
)

// Alert describes one overdue task for the notification collaborators.
// Delivery (Telegram, WhatsApp) is theirs; this package only finds the
// work.
type Alert struct {
	TaskID          int64             `json:"task_id"`
	TaskNumber      string            `json:"task_number"`
	Title           string            `json:"title"`
	WorkOrderNumber string            `json:"work_order_number"`
	StageName       storage.StageName `json:"stage_name"`
	Responsible     string            `json:"responsible"`
	PlannedHours    float64           `json:"planned_hours"`
	PlannedEnd      time.Time         `json:"planned_end"`
	DaysLate        int               `json:"days_late"`
}

// Scan walks the project trees and reports every task whose planned end
// has passed and that is not done. Operators resolve the responsible
// name; unassigned tasks come back with an empty one.
func Scan(projects []*storage.Project, operators []*storage.Operator, today time.Time) []Alert {
	names := map[int64]string{}
	for _, o := range operators {
		names[o.ID] = o.Name
	}

	var alerts []Alert
	for _, p := range projects {
		for _, wo := range p.WorkOrders {
			for _, st := range wo.Stages {
				for _, t := range st.Tasks {
					if t.Status == storage.StatusDone {
						continue
					}
					if t.PlannedEnd == nil || !dateBefore(*t.PlannedEnd, today) {
						continue
					}

					a := Alert{
						TaskID:          t.ID,
						TaskNumber:      t.Number,
						Title:           t.Title,
						WorkOrderNumber: wo.Number,
						StageName:       st.Name,
						PlannedHours:    t.PlannedHours,
						PlannedEnd:      *t.PlannedEnd,
						DaysLate:        daysBetween(*t.PlannedEnd, today),
					}
					if t.ResponsibleID != nil {
						a.Responsible = names[*t.ResponsibleID]
					}
					alerts = append(alerts, a)
				}
			}
		}
	}
	return alerts
}

func dateBefore(a, b time.Time) bool {
	return truncDay(a).Before(truncDay(b))
}

func daysBetween(from, to time.Time) int {
	return int(truncDay(to).Sub(truncDay(from)).Hours() / 24)
}

func truncDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
