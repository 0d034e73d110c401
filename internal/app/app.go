// Package app assembles the services from configuration. Everything
// the config file names is mapped onto a concrete collaborator here:
// the rollup policy, the calculator's productivity constant and the
// overdue scan interval.
package app

import (
	"log/slog"

	"pcp-golang/internal/config"
	generate_excel "pcp-golang/internal/service/generate-excel"
	"pcp-golang/internal/service/overdue"
	"pcp-golang/internal/service/rollup"
	"pcp-golang/internal/service/schedule"
	"pcp-golang/internal/service/template"
)

// Deps are the external collaborators the services read through and
// notify through. The persistence and delivery implementations live
// outside the module.
type Deps struct {
	Source   overdue.Source
	Notifier overdue.Notifier
}

type App struct {
	Cfg        *config.Config
	Log        *slog.Logger
	Engine     *rollup.Engine
	Calculator *schedule.Calculator
	Replayer   *template.Replayer
	Watcher    *overdue.Watcher
	Reports    *generate_excel.ReportService
}

func Assemble(cfg *config.Config, log *slog.Logger, deps Deps) *App {
	engine := rollup.New(policyFromConfig(cfg.RollupPolicy), nil)
	calc := schedule.NewCalculator(cfg.HoursPerDay)

	return &App{
		Cfg:        cfg,
		Log:        log,
		Engine:     engine,
		Calculator: calc,
		Replayer:   template.NewReplayer(calc),
		Watcher:    overdue.NewWatcher(cfg.Overdue.Interval, deps.Source, deps.Notifier, log),
		Reports:    generate_excel.NewReportService(deps.Source, engine),
	}
}

// policyFromConfig maps the config string onto a rollup policy.
// Anything that is not "count" falls back to the primary hours-weighted
// policy.
func policyFromConfig(name string) rollup.Policy {
	if name == string(rollup.PolicyCountBased) {
		return rollup.PolicyCountBased
	}
	return rollup.PolicyHoursWeighted
}
