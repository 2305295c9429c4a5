package fetcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nbafetch/pkg/logger"
	"nbafetch/pkg/nba"
	"nbafetch/pkg/ratelimit"
	"nbafetch/pkg/storage"
	"nbafetch/pkg/table"
)

var errUnavailable = errors.New("service unavailable")

// fakeClient implements StatsClient with pluggable per-endpoint behavior.
// Endpoints without a handler fail, matching an unreachable service.
type fakeClient struct {
	lineups   func(p nba.LineupsParams) ([]nba.ResultTable, error)
	onOff     func(p nba.OnOffParams) ([]nba.ResultTable, error)
	clutch    func(p nba.ClutchParams) ([]nba.ResultTable, error)
	synergy   func(p nba.SynergyParams) ([]nba.ResultTable, error)
	hustleP   func(p nba.HustleParams) ([]nba.ResultTable, error)
	hustleT   func(p nba.HustleParams) ([]nba.ResultTable, error)
	tracking  func(p nba.TrackingParams) ([]nba.ResultTable, error)
	defend    func(p nba.DefendParams) ([]nba.ResultTable, error)
	estimated func(p nba.EstimatedMetricsParams) ([]nba.ResultTable, error)
}

func (c *fakeClient) LeagueDashLineups(_ context.Context, p nba.LineupsParams) ([]nba.ResultTable, error) {
	if c.lineups == nil {
		return nil, errUnavailable
	}
	return c.lineups(p)
}

func (c *fakeClient) TeamPlayerOnOffSummary(_ context.Context, p nba.OnOffParams) ([]nba.ResultTable, error) {
	if c.onOff == nil {
		return nil, errUnavailable
	}
	return c.onOff(p)
}

func (c *fakeClient) LeagueDashTeamClutch(_ context.Context, p nba.ClutchParams) ([]nba.ResultTable, error) {
	if c.clutch == nil {
		return nil, errUnavailable
	}
	return c.clutch(p)
}

func (c *fakeClient) SynergyPlayTypes(_ context.Context, p nba.SynergyParams) ([]nba.ResultTable, error) {
	if c.synergy == nil {
		return nil, errUnavailable
	}
	return c.synergy(p)
}

func (c *fakeClient) LeagueHustleStatsPlayer(_ context.Context, p nba.HustleParams) ([]nba.ResultTable, error) {
	if c.hustleP == nil {
		return nil, errUnavailable
	}
	return c.hustleP(p)
}

func (c *fakeClient) LeagueHustleStatsTeam(_ context.Context, p nba.HustleParams) ([]nba.ResultTable, error) {
	if c.hustleT == nil {
		return nil, errUnavailable
	}
	return c.hustleT(p)
}

func (c *fakeClient) LeagueDashPtStats(_ context.Context, p nba.TrackingParams) ([]nba.ResultTable, error) {
	if c.tracking == nil {
		return nil, errUnavailable
	}
	return c.tracking(p)
}

func (c *fakeClient) LeagueDashPtDefend(_ context.Context, p nba.DefendParams) ([]nba.ResultTable, error) {
	if c.defend == nil {
		return nil, errUnavailable
	}
	return c.defend(p)
}

func (c *fakeClient) PlayerEstimatedMetrics(_ context.Context, p nba.EstimatedMetricsParams) ([]nba.ResultTable, error) {
	if c.estimated == nil {
		return nil, errUnavailable
	}
	return c.estimated(p)
}

func newTestFetcher(t *testing.T, client StatsClient) (*Fetcher, *logger.TestLogger) {
	t.Helper()
	log := logger.NewTestLogger()
	store, err := storage.NewManager(t.TempDir(), log)
	require.NoError(t, err)
	return New(client, store, ratelimit.Nop{}, ratelimit.Nop{}, log), log
}

// result builds a single-result-set response.
func result(name string, columns []string, rows ...[]string) []nba.ResultTable {
	t := table.New(columns...)
	for _, r := range rows {
		if err := t.AppendRow(r); err != nil {
			panic(err)
		}
	}
	return []nba.ResultTable{{Name: name, Table: t}}
}

func TestFetchClutchTagsSeasonType(t *testing.T) {
	client := &fakeClient{
		clutch: func(p nba.ClutchParams) ([]nba.ResultTable, error) {
			return result("LeagueDashTeamClutch",
				[]string{"TEAM_ID", "PTS"},
				[]string{"1610612738", "42"},
			), nil
		},
	}
	f, _ := newTestFetcher(t, client)

	datasets, err := f.FetchClutch(context.Background(), "2024-25")
	require.NoError(t, err)
	require.Len(t, datasets, 1)

	tbl := datasets[0].Table
	// One row per season type, each tagged with its provenance.
	require.Equal(t, 2, tbl.NumRows())
	assert.ElementsMatch(t, []string{"Regular Season", "Playoffs"}, tbl.Column("SEASON_TYPE"))
	assert.Contains(t, datasets[0].Path, "clutch_2024-25.csv")
}

func TestPartialFailureSkipsPointAndContinues(t *testing.T) {
	client := &fakeClient{
		estimated: func(p nba.EstimatedMetricsParams) ([]nba.ResultTable, error) {
			if p.SeasonType == "Regular Season" {
				return nil, errUnavailable
			}
			return result("PlayerEstimatedMetrics",
				[]string{"PLAYER_ID", "E_NET_RATING"},
				[]string{"1", "5.5"},
			), nil
		},
	}
	f, log := newTestFetcher(t, client)

	datasets, err := f.FetchEstimatedMetrics(context.Background(), "2024-25")
	require.NoError(t, err)
	require.Len(t, datasets, 1)

	tbl := datasets[0].Table
	require.Equal(t, 1, tbl.NumRows())
	assert.Equal(t, "Playoffs", tbl.Cell(0, "SEASON_TYPE"))
	assert.Len(t, log.MessagesAtLevel("ERROR"), 1, "exactly one skipped point is logged")
}

func TestDefenseTrackingMiddlePointFails(t *testing.T) {
	client := &fakeClient{
		defend: func(p nba.DefendParams) ([]nba.ResultTable, error) {
			if p.DefenseCategory == "2 Pointers" {
				return nil, errUnavailable
			}
			return result("LeagueDashPtDefend",
				[]string{"CLOSE_DEF_PERSON_ID", "D_FG_PCT"},
				[]string{"7", "0.44"},
			), nil
		},
	}
	f, log := newTestFetcher(t, client)

	datasets, err := f.FetchDefenseTracking(context.Background(), "2024-25")
	require.NoError(t, err)
	require.Len(t, datasets, 1)

	tbl := datasets[0].Table
	// 6 categories x 2 season types, minus the failing category twice.
	assert.Equal(t, 10, tbl.NumRows())
	assert.NotContains(t, tbl.Column("DEFENSE_CATEGORY"), "2 Pointers")
	assert.Len(t, log.MessagesAtLevel("ERROR"), 2)
}

func TestCategoryEmptinessIsAbsentNotError(t *testing.T) {
	f, log := newTestFetcher(t, &fakeClient{})

	datasets, err := f.FetchClutch(context.Background(), "2024-25")
	require.NoError(t, err)
	assert.Nil(t, datasets)
	assert.True(t, log.HasMessage("no data collected for category"))
}

func TestFetchOnOffSplitsCourtStatus(t *testing.T) {
	onOffResponse := func(p nba.OnOffParams) ([]nba.ResultTable, error) {
		// Only one team answers; everything else is down.
		if p.TeamID != 1610612738 || p.SeasonType != "Regular Season" {
			return nil, errUnavailable
		}
		overall := table.New("GROUP_SET")
		on := table.New("VS_PLAYER_ID", "PLUS_MINUS")
		_ = on.AppendRow([]string{"10", "4"})
		off := table.New("VS_PLAYER_ID", "PLUS_MINUS")
		_ = off.AppendRow([]string{"10", "-2"})
		return []nba.ResultTable{
			{Name: "OverallTeamPlayerOnOffSummary", Table: overall},
			{Name: "PlayersOnCourtTeamPlayerOnOffSummary", Table: on},
			{Name: "PlayersOffCourtTeamPlayerOnOffSummary", Table: off},
		}, nil
	}
	f, _ := newTestFetcher(t, &fakeClient{onOff: onOffResponse})

	datasets, err := f.FetchOnOff(context.Background(), "2024-25")
	require.NoError(t, err)
	require.Len(t, datasets, 1)

	tbl := datasets[0].Table
	require.Equal(t, 2, tbl.NumRows())
	assert.ElementsMatch(t, []string{"On", "Off"}, tbl.Column("COURT_STATUS"))
	assert.Equal(t, []string{"Boston Celtics", "Boston Celtics"}, tbl.Column("team"))
	assert.Equal(t, "Regular Season", tbl.Cell(0, "SEASON_TYPE"))
}

func TestFetchHustleProducesTwoDatasets(t *testing.T) {
	hustle := func(name string) func(nba.HustleParams) ([]nba.ResultTable, error) {
		return func(p nba.HustleParams) ([]nba.ResultTable, error) {
			return result(name,
				[]string{"ID", "DEFLECTIONS"},
				[]string{"1", "12"},
			), nil
		}
	}
	client := &fakeClient{
		hustleP: hustle("HustleStatsPlayer"),
		hustleT: hustle("HustleStatsTeam"),
	}
	f, _ := newTestFetcher(t, client)

	datasets, err := f.FetchHustle(context.Background(), "2024-25")
	require.NoError(t, err)
	require.Len(t, datasets, 2)
	assert.Equal(t, "hustle_players", datasets[0].Name)
	assert.Equal(t, "hustle_teams", datasets[1].Name)
	assert.Equal(t, 4, Rows(datasets))
}

func TestFetchTrackingTagsAxes(t *testing.T) {
	client := &fakeClient{
		tracking: func(p nba.TrackingParams) ([]nba.ResultTable, error) {
			if p.PtMeasureType != "Drives" || p.SeasonType != "Regular Season" {
				return nil, errUnavailable
			}
			return result("LeagueDashPtStats",
				[]string{"PLAYER_ID", "DRIVES"},
				[]string{"2544", "11"},
			), nil
		},
	}
	f, _ := newTestFetcher(t, client)

	datasets, err := f.FetchTracking(context.Background(), "2024-25")
	require.NoError(t, err)
	require.Len(t, datasets, 1)

	tbl := datasets[0].Table
	require.Equal(t, 2, tbl.NumRows()) // Player and Team level
	assert.Equal(t, "Drives", tbl.Cell(0, "PT_MEASURE_TYPE"))
	assert.ElementsMatch(t, []string{"Player", "Team"}, tbl.Column("PLAYER_OR_TEAM"))
}

func TestFetchPlayTypesTagsAxes(t *testing.T) {
	client := &fakeClient{
		synergy: func(p nba.SynergyParams) ([]nba.ResultTable, error) {
			if p.PlayType != "Isolation" || p.TypeGrouping != "Offensive" ||
				p.PlayerOrTeam != "T" || p.SeasonType != "Playoffs" {
				return nil, errUnavailable
			}
			return result("SynergyPlayType",
				[]string{"TEAM_ID", "PPP"},
				[]string{"1610612747", "1.02"},
			), nil
		},
	}
	f, _ := newTestFetcher(t, client)

	datasets, err := f.FetchPlayTypes(context.Background(), "2024-25")
	require.NoError(t, err)
	require.Len(t, datasets, 1)

	tbl := datasets[0].Table
	require.Equal(t, 1, tbl.NumRows())
	assert.Equal(t, "Isolation", tbl.Cell(0, "PLAY_TYPE"))
	assert.Equal(t, "Offensive", tbl.Cell(0, "TYPE_GROUPING"))
	assert.Equal(t, "Team", tbl.Cell(0, "PLAYER_OR_TEAM"))
	assert.Equal(t, "Playoffs", tbl.Cell(0, "SEASON_TYPE"))
}

func TestRows(t *testing.T) {
	a := table.New("X")
	_ = a.AppendRow([]string{"1"})
	_ = a.AppendRow([]string{"2"})
	b := table.New("Y")
	_ = b.AppendRow([]string{"3"})

	assert.Equal(t, 3, Rows([]Dataset{{Table: a}, {Table: b}}))
	assert.Equal(t, 0, Rows(nil))
}
