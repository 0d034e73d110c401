package overdue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"pcp-golang/internal/storage"
)

// Source supplies the materialized trees and the operator list. Backed
// by the persistence collaborator.
type Source interface {
	Projects(ctx context.Context) ([]*storage.Project, error)
	Operators(ctx context.Context) ([]*storage.Operator, error)
}

// Notifier receives alert batches. The Telegram/WhatsApp senders live
// behind this interface, outside the module.
type Notifier interface {
	NotifyOverdue(ctx context.Context, alerts []Alert) error
}

// Watcher periodically scans for overdue tasks and hands them to the
// notifier. It only reads, the rollup engine is never invoked from here.
type Watcher struct {
	interval time.Duration
	source   Source
	notifier Notifier
	log      *slog.Logger
}

func NewWatcher(interval time.Duration, source Source, notifier Notifier, log *slog.Logger) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{interval: interval, source: source, notifier: notifier, log: log}
}

// Run blocks until the context is cancelled. A scan failure is logged
// and retried on the next tick rather than stopping the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("overdue watcher started", slog.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.log.Info("overdue watcher stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := w.Check(ctx); err != nil {
				w.log.Error("overdue check failed", slog.String("error", err.Error()))
			}
		}
	}
}

// Check performs one scan pass: fetch projects and operators in
// parallel, scan against today, notify when anything is late.
func (w *Watcher) Check(ctx context.Context) error {
	const op = "overdue.Check"

	var (
		projects  []*storage.Project
		operators []*storage.Operator
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = w.source.Projects(gCtx)
		if err != nil {
			return fmt.Errorf("projects: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		operators, err = w.source.Operators(gCtx)
		if err != nil {
			return fmt.Errorf("operators: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	alerts := Scan(projects, operators, time.Now())
	if len(alerts) == 0 {
		return nil
	}

	w.log.Info("overdue tasks found", slog.Int("count", len(alerts)))

	if err := w.notifier.NotifyOverdue(ctx, alerts); err != nil {
		return fmt.Errorf("%s: notify: %w", op, err)
	}
	return nil
}
