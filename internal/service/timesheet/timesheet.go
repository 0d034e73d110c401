package timesheet

import (
	"math"

	"pcp-golang/internal/storage"
)

// EntryHours is the duration of one finished work session in hours,
// rounded to 2 decimals. Open entries count as zero.
func EntryHours(e *storage.TimeEntry) float64 {
	if e.Start == nil || e.End == nil {
		return 0
	}
	return round2(e.End.Sub(*e.Start).Hours())
}

// StageActualHours sums the finished entries booked against the stage.
// Entries still running are ignored, they only count once closed out.
func StageActualHours(entries []*storage.TimeEntry, stageID int64) float64 {
	var total float64
	for _, e := range entries {
		if e.StageID != stageID || e.Status != storage.EntryFinished {
			continue
		}
		if e.Start == nil || e.End == nil {
			continue
		}
		total += e.End.Sub(*e.Start).Hours()
	}
	return round2(total)
}

// StageQuantities totals the good and scrap piece counts booked against
// the stage, finished entries only.
func StageQuantities(entries []*storage.TimeEntry, stageID int64) (good, scrap int) {
	for _, e := range entries {
		if e.StageID != stageID || e.Status != storage.EntryFinished {
			continue
		}
		good += e.GoodQty
		scrap += e.ScrapQty
	}
	return good, scrap
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
