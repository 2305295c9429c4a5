package fetcher

import (
	"context"
	"fmt"

	"nbafetch/pkg/logger"
	"nbafetch/pkg/nba"
	"nbafetch/pkg/ratelimit"
	"nbafetch/pkg/storage"
	"nbafetch/pkg/table"
)

// StatsClient is the subset of the stats service client the fetchers use.
type StatsClient interface {
	LeagueDashLineups(ctx context.Context, p nba.LineupsParams) ([]nba.ResultTable, error)
	TeamPlayerOnOffSummary(ctx context.Context, p nba.OnOffParams) ([]nba.ResultTable, error)
	LeagueDashTeamClutch(ctx context.Context, p nba.ClutchParams) ([]nba.ResultTable, error)
	SynergyPlayTypes(ctx context.Context, p nba.SynergyParams) ([]nba.ResultTable, error)
	LeagueHustleStatsPlayer(ctx context.Context, p nba.HustleParams) ([]nba.ResultTable, error)
	LeagueHustleStatsTeam(ctx context.Context, p nba.HustleParams) ([]nba.ResultTable, error)
	LeagueDashPtStats(ctx context.Context, p nba.TrackingParams) ([]nba.ResultTable, error)
	LeagueDashPtDefend(ctx context.Context, p nba.DefendParams) ([]nba.ResultTable, error)
	PlayerEstimatedMetrics(ctx context.Context, p nba.EstimatedMetricsParams) ([]nba.ResultTable, error)
}

// Dataset is one persisted output table.
type Dataset struct {
	Name  string
	Path  string
	Table *table.Table
}

// Rows sums the row counts of a slice of datasets.
func Rows(datasets []Dataset) int {
	total := 0
	for _, d := range datasets {
		total += d.Table.NumRows()
	}
	return total
}

// Fetcher drives the per-category parameter sweeps. Each Fetch method
// enumerates its category's full cartesian parameter space, skips and logs
// failed points, tags results with the parameters used, writes the
// accumulated dataset(s) to CSV, and returns them.
type Fetcher struct {
	client       StatsClient
	store        *storage.Manager
	callPacer    ratelimit.Limiter
	sectionPacer ratelimit.Limiter
	logger       logger.Logger
}

// New creates a Fetcher. callPacer spaces consecutive calls; sectionPacer
// spaces larger units (parameter combos, teams).
func New(client StatsClient, store *storage.Manager, callPacer, sectionPacer ratelimit.Limiter, log logger.Logger) *Fetcher {
	if log == nil {
		log = logger.GetLogger()
	}
	if callPacer == nil {
		callPacer = ratelimit.Nop{}
	}
	if sectionPacer == nil {
		sectionPacer = ratelimit.Nop{}
	}
	return &Fetcher{
		client:       client,
		store:        store,
		callPacer:    callPacer,
		sectionPacer: sectionPacer,
		logger:       log,
	}
}

// pace applies the fixed per-call delay between consecutive calls.
func (f *Fetcher) pace(ctx context.Context) {
	if err := f.callPacer.Wait(ctx); err != nil {
		f.logger.WithError(err).Warn("call pacing interrupted")
	}
}

// paceCombo applies the longer delay between parameter combinations.
func (f *Fetcher) paceCombo(ctx context.Context) {
	if err := f.sectionPacer.Wait(ctx); err != nil {
		f.logger.WithError(err).Warn("combo pacing interrupted")
	}
}

// tag appends a provenance column, warning instead of failing when the name
// collides with an API-supplied column (the API column is kept untouched).
func (f *Fetcher) tag(t *table.Table, column, value string) {
	if err := t.AddConstColumn(column, value); err != nil {
		f.logger.WarnWithFields("provenance column collides with API column", map[string]interface{}{
			"column": column,
		})
	}
}

// save persists a dataset, returning it with the written path filled in.
func (f *Fetcher) save(t *table.Table, name, filename string) (Dataset, error) {
	path, err := f.store.SaveCSV(t, filename)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to save %s: %w", name, err)
	}
	return Dataset{Name: name, Path: path, Table: t}, nil
}

// firstTable extracts the primary result table from a call's result sets,
// or nil when the call produced nothing usable.
func firstTable(tables []nba.ResultTable) *table.Table {
	t := nba.First(tables)
	if t == nil || t.IsEmpty() {
		return nil
	}
	return t
}

func seasonFile(category, season string) string {
	return fmt.Sprintf("%s_%s.csv", category, season)
}
