package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nbafetch/pkg/config"
	"nbafetch/pkg/fetcher"
	"nbafetch/pkg/logger"
	"nbafetch/pkg/nba"
	"nbafetch/pkg/ratelimit"
	"nbafetch/pkg/storage"
)

// ErrInvalidRunMode is returned when mutually exclusive run modes are both
// requested. It is raised before any external call is made.
var ErrInvalidRunMode = errors.New("lineups-only and supplementary-only are mutually exclusive")

// ErrServiceUnreachable is returned by check-only runs when the stats
// service did not answer the health check.
var ErrServiceUnreachable = errors.New("stats service unreachable")

// Options selects what a run does.
type Options struct {
	// LineupsOnly restricts the run to the lineups section
	LineupsOnly bool
	// SupplementaryOnly skips the lineups section
	SupplementaryOnly bool
	// CheckOnly performs the health check and nothing else
	CheckOnly bool
}

// Fetchers is what the pipeline needs from the category fetchers.
type Fetchers interface {
	FetchLineups(ctx context.Context, season string) ([]fetcher.Dataset, error)
	FetchOnOff(ctx context.Context, season string) ([]fetcher.Dataset, error)
	FetchClutch(ctx context.Context, season string) ([]fetcher.Dataset, error)
	FetchPlayTypes(ctx context.Context, season string) ([]fetcher.Dataset, error)
	FetchHustle(ctx context.Context, season string) ([]fetcher.Dataset, error)
	FetchTracking(ctx context.Context, season string) ([]fetcher.Dataset, error)
	FetchDefenseTracking(ctx context.Context, season string) ([]fetcher.Dataset, error)
	FetchEstimatedMetrics(ctx context.Context, season string) ([]fetcher.Dataset, error)
}

// HealthChecker verifies the stats service is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context, season string) error
}

// Pipeline sequences the category fetchers and produces the run summary.
type Pipeline struct {
	season       string
	fetchers     Fetchers
	health       HealthChecker
	counter      *nba.Counter
	store        *storage.Manager
	sectionPacer ratelimit.Limiter
	logger       logger.Logger
}

// New assembles a pipeline from its collaborators.
func New(season string, f Fetchers, h HealthChecker, counter *nba.Counter, store *storage.Manager, sectionPacer ratelimit.Limiter, log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.GetLogger()
	}
	if sectionPacer == nil {
		sectionPacer = ratelimit.Nop{}
	}
	return &Pipeline{
		season:       season,
		fetchers:     f,
		health:       h,
		counter:      counter,
		store:        store,
		sectionPacer: sectionPacer,
		logger:       log,
	}
}

// Build wires a pipeline from configuration: real client, storage under the
// configured data directory, and paced fetchers.
func Build(cfg *config.Config, log logger.Logger) (*Pipeline, error) {
	if log == nil {
		log = logger.GetLogger()
	}

	store, err := storage.NewManager(cfg.Output.DataDir, log)
	if err != nil {
		return nil, err
	}

	counter := nba.NewCounter()
	client := nba.NewClient(nba.Options{
		Timeout:           cfg.API.Timeout,
		Retries:           cfg.API.Retries,
		BaseDelay:         cfg.API.BaseDelay,
		BackoffMultiplier: cfg.API.BackoffMultiplier,
		Counter:           counter,
		Logger:            log,
	})

	callPacer := ratelimit.NewPacer(cfg.API.CallDelay)
	comboPacer := ratelimit.NewPacer(cfg.API.SectionDelay)
	f := fetcher.New(client, store, callPacer, comboPacer, log)

	return New(cfg.Season, f, client, counter, store, ratelimit.NewPacer(cfg.API.SectionDelay), log), nil
}

// section is one sequenced unit of the run.
type section struct {
	name string
	run  func(ctx context.Context, season string) ([]fetcher.Dataset, error)
}

func (p *Pipeline) sections(opts Options) []section {
	var out []section
	if !opts.SupplementaryOnly {
		out = append(out, section{"Lineups", p.fetchers.FetchLineups})
	}
	if !opts.LineupsOnly {
		out = append(out,
			section{"On/Off", p.fetchers.FetchOnOff},
			section{"Clutch", p.fetchers.FetchClutch},
			section{"Play Types", p.fetchers.FetchPlayTypes},
			section{"Hustle", p.fetchers.FetchHustle},
			section{"Tracking", p.fetchers.FetchTracking},
			section{"Defense Tracking", p.fetchers.FetchDefenseTracking},
			section{"Estimated Metrics", p.fetchers.FetchEstimatedMetrics},
		)
	}
	return out
}

// Run executes the configured sections strictly in sequence. Every section
// is attempted regardless of earlier failures; the returned summary is the
// single source of truth for what succeeded. The only error conditions are
// an invalid run mode and a failed check-only health check.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.LineupsOnly && opts.SupplementaryOnly {
		return nil, ErrInvalidRunMode
	}

	p.logger.InfoWithFields("pipeline starting", map[string]interface{}{
		"season": p.season,
	})

	if p.health != nil {
		if err := p.health.HealthCheck(ctx, p.season); err != nil {
			if opts.CheckOnly {
				p.logger.WithError(err).Error("health check failed")
				return nil, fmt.Errorf("%w: %w", ErrServiceUnreachable, err)
			}
			p.logger.WithError(err).Warn("health check failed, continuing anyway")
		} else {
			p.logger.Info("health check passed")
		}
	}
	if opts.CheckOnly {
		p.logger.Info("check-only run complete, service is reachable")
		return &Summary{Season: p.season, TotalCalls: p.counter.Total()}, nil
	}

	start := time.Now()
	summary := &Summary{Season: p.season, StartedAt: start}

	for i, s := range p.sections(opts) {
		if i > 0 {
			if err := p.sectionPacer.Wait(ctx); err != nil {
				p.logger.WithError(err).Warn("section pacing interrupted")
			}
		}
		summary.Sections = append(summary.Sections, p.runSection(ctx, s))
	}

	summary.FinishedAt = time.Now()
	summary.WallTime = summary.FinishedAt.Sub(start)
	summary.TotalCalls = p.counter.Total()
	summary.Files = p.store.FilesWritten()
	for _, s := range summary.Sections {
		summary.TotalRows += s.Rows
	}

	p.renderSummary(summary)

	if path, err := writeReport(p.store, summary); err != nil {
		p.logger.WithError(err).Warn("could not persist run report")
	} else {
		p.logger.WithField("path", path).Info("run report written")
	}

	return summary, nil
}

// runSection invokes one fetcher, converting any failure or panic into a
// failed section result so the run continues.
func (p *Pipeline) runSection(ctx context.Context, s section) (result SectionResult) {
	p.logger.InfoWithFields("section starting", map[string]interface{}{
		"section": s.name,
	})
	start := time.Now()

	result = SectionResult{Name: s.name}
	defer func() {
		if r := recover(); r != nil {
			p.logger.ErrorWithFields("section panicked", map[string]interface{}{
				"section": s.name,
				"panic":   fmt.Sprint(r),
			})
			result = SectionResult{Name: s.name}
		}
		result.Duration = time.Since(start)
	}()

	datasets, err := s.run(ctx, p.season)
	if err != nil {
		p.logger.ErrorWithFields("section failed", map[string]interface{}{
			"section": s.name,
			"error":   err.Error(),
		})
		return result
	}

	rows := fetcher.Rows(datasets)
	if rows == 0 {
		p.logger.WarnWithFields("section produced no rows", map[string]interface{}{
			"section": s.name,
		})
		return result
	}

	result.Success = true
	result.Rows = rows
	p.logger.InfoWithFields("section completed", map[string]interface{}{
		"section":  s.name,
		"rows":     rows,
		"datasets": len(datasets),
	})
	return result
}
