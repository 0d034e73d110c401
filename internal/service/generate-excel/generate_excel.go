package generate_excel

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"pcp-golang/internal/service/rollup"
	"pcp-golang/internal/storage"
)

// ProgressSource supplies the materialized project trees for the report.
type ProgressSource interface {
	Projects(ctx context.Context) ([]*storage.Project, error)
}

// ReportService exports the shop's progress picture as an xlsx workbook:
// one row per stage, grouped under its work order and project, with the
// percentages and statuses the rollup engine derives.
type ReportService struct {
	source ProgressSource
	engine *rollup.Engine
}

func NewReportService(source ProgressSource, engine *rollup.Engine) *ReportService {
	return &ReportService{source: source, engine: engine}
}

func (g *ReportService) ProgressReport(ctx context.Context, today time.Time) ([]byte, error) {
	const op = "generate_excel.ProgressReport"

	projects, err := g.source.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: fetch data: %w", op, err)
	}

	for _, p := range projects {
		g.engine.Recompute(p, today)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Progress"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})

	headers := []string{
		"Project", "Client", "Project %", "Project Status",
		"Work Order", "Product", "Qty", "WO %", "WO Status", "Planned End",
		"Stage", "Stage %", "Stage Status",
	}
	for i, name := range headers {
		f.SetCellValue(sheet, cellName(i+1, 1), name)
	}
	f.SetCellStyle(sheet, "A1", cellName(len(headers), 1), headerStyle)

	rowNum := 2
	for _, p := range projects {
		for _, wo := range p.WorkOrders {
			for _, st := range wo.Stages {
				f.SetCellValue(sheet, cellName(1, rowNum), p.Code)
				f.SetCellValue(sheet, cellName(2, rowNum), p.Client)
				f.SetCellValue(sheet, cellName(3, rowNum), p.Percent)
				f.SetCellValue(sheet, cellName(4, rowNum), string(p.Status))
				f.SetCellValue(sheet, cellName(5, rowNum), wo.Number)
				f.SetCellValue(sheet, cellName(6, rowNum), wo.Product)
				f.SetCellValue(sheet, cellName(7, rowNum), wo.Quantity)
				f.SetCellValue(sheet, cellName(8, rowNum), wo.Percent)
				f.SetCellValue(sheet, cellName(9, rowNum), string(wo.Status))
				if wo.PlannedEnd != nil {
					f.SetCellValue(sheet, cellName(10, rowNum), wo.PlannedEnd.Format("2006-01-02"))
				}
				f.SetCellValue(sheet, cellName(11, rowNum), string(st.Name))
				f.SetCellValue(sheet, cellName(12, rowNum), st.Percent)
				f.SetCellValue(sheet, cellName(13, rowNum), string(st.Status))
				rowNum++
			}
		}
	}

	f.SetColWidth(sheet, "A", "M", 15)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
