package nba

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// Endpoint paths under BaseURL.
const (
	endpointLeagueDashLineups      = "leaguedashlineups"
	endpointTeamPlayerOnOffSummary = "teamplayeronoffsummary"
	endpointLeagueDashTeamClutch   = "leaguedashteamclutch"
	endpointSynergyPlayTypes       = "synergyplaytypes"
	endpointHustleStatsPlayer      = "leaguehustlestatsplayer"
	endpointHustleStatsTeam        = "leaguehustlestatsteam"
	endpointLeagueDashPtStats      = "leaguedashptstats"
	endpointLeagueDashPtDefend     = "leaguedashptdefend"
	endpointPlayerEstimatedMetrics = "playerestimatedmetrics"
)

const leagueID = "00"

// Each endpoint takes a closed params struct enumerating every recognized
// parameter; the fixed filter parameters the service requires but the
// pipeline never varies are filled in here.

// LineupsParams selects one lineup request.
type LineupsParams struct {
	Season        string
	SeasonType    string
	MeasureType   string
	PerMode       string
	GroupQuantity int
}

func (p LineupsParams) values() url.Values {
	v := baseFilterValues()
	v.Set("Season", p.Season)
	v.Set("SeasonType", p.SeasonType)
	v.Set("MeasureType", p.MeasureType)
	v.Set("PerMode", p.PerMode)
	v.Set("GroupQuantity", strconv.Itoa(p.GroupQuantity))
	return v
}

// LeagueDashLineups returns league-wide lineup stats for one parameter
// combination; a single call covers every team.
func (c *Client) LeagueDashLineups(ctx context.Context, p LineupsParams) ([]ResultTable, error) {
	return c.get(ctx, endpointLeagueDashLineups, p.values())
}

// OnOffParams selects one team's on/off summary.
type OnOffParams struct {
	TeamID     int
	Season     string
	SeasonType string
}

// TeamPlayerOnOffSummary returns the per-player on-court and off-court
// summaries for one team. Result sets: OverallTeamPlayerOnOffSummary,
// PlayersOnCourtTeamPlayerOnOffSummary, PlayersOffCourtTeamPlayerOnOffSummary.
func (c *Client) TeamPlayerOnOffSummary(ctx context.Context, p OnOffParams) ([]ResultTable, error) {
	v := baseFilterValues()
	v.Set("TeamID", strconv.Itoa(p.TeamID))
	v.Set("Season", p.Season)
	v.Set("SeasonType", p.SeasonType)
	v.Set("MeasureType", "Base")
	v.Set("PerMode", "Totals")
	return c.get(ctx, endpointTeamPlayerOnOffSummary, v)
}

// ClutchParams selects one clutch request (last 5 minutes, within 5 points).
type ClutchParams struct {
	Season     string
	SeasonType string
}

// LeagueDashTeamClutch returns league-wide team clutch stats.
func (c *Client) LeagueDashTeamClutch(ctx context.Context, p ClutchParams) ([]ResultTable, error) {
	v := baseFilterValues()
	v.Set("Season", p.Season)
	v.Set("SeasonType", p.SeasonType)
	v.Set("MeasureType", "Base")
	v.Set("PerMode", "Totals")
	v.Set("AheadBehind", "Ahead or Behind")
	v.Set("ClutchTime", "Last 5 Minutes")
	v.Set("PointDiff", "5")
	return c.get(ctx, endpointLeagueDashTeamClutch, v)
}

// SynergyParams selects one play-type request.
type SynergyParams struct {
	Season       string
	SeasonType   string
	PlayType     string
	TypeGrouping string // "Offensive" or "Defensive"
	PlayerOrTeam string // "P" or "T"
}

// SynergyPlayTypes returns play-type stats for one play type and grouping.
func (c *Client) SynergyPlayTypes(ctx context.Context, p SynergyParams) ([]ResultTable, error) {
	v := url.Values{}
	v.Set("LeagueID", leagueID)
	v.Set("SeasonYear", p.Season)
	v.Set("SeasonType", p.SeasonType)
	v.Set("PlayType", p.PlayType)
	v.Set("TypeGrouping", p.TypeGrouping)
	v.Set("PlayerOrTeam", p.PlayerOrTeam)
	v.Set("PerMode", "Totals")
	return c.get(ctx, endpointSynergyPlayTypes, v)
}

// HustleParams selects one hustle-stats request.
type HustleParams struct {
	Season     string
	SeasonType string
}

func (p HustleParams) values() url.Values {
	v := url.Values{}
	v.Set("Season", p.Season)
	v.Set("SeasonType", p.SeasonType)
	v.Set("PerMode", "Totals")
	return v
}

// LeagueHustleStatsPlayer returns league-wide player hustle stats.
func (c *Client) LeagueHustleStatsPlayer(ctx context.Context, p HustleParams) ([]ResultTable, error) {
	return c.get(ctx, endpointHustleStatsPlayer, p.values())
}

// LeagueHustleStatsTeam returns league-wide team hustle stats.
func (c *Client) LeagueHustleStatsTeam(ctx context.Context, p HustleParams) ([]ResultTable, error) {
	return c.get(ctx, endpointHustleStatsTeam, p.values())
}

// TrackingParams selects one player-tracking request.
type TrackingParams struct {
	Season        string
	SeasonType    string
	PtMeasureType string
	PlayerOrTeam  string // "Player" or "Team"
}

// LeagueDashPtStats returns player-tracking stats for one measure type.
func (c *Client) LeagueDashPtStats(ctx context.Context, p TrackingParams) ([]ResultTable, error) {
	v := url.Values{}
	v.Set("LeagueID", leagueID)
	v.Set("Season", p.Season)
	v.Set("SeasonType", p.SeasonType)
	v.Set("PtMeasureType", p.PtMeasureType)
	v.Set("PlayerOrTeam", p.PlayerOrTeam)
	v.Set("PerMode", "Totals")
	v.Set("LastNGames", "0")
	v.Set("Month", "0")
	v.Set("OpponentTeamID", "0")
	return c.get(ctx, endpointLeagueDashPtStats, v)
}

// DefendParams selects one defense-tracking request.
type DefendParams struct {
	Season          string
	SeasonType      string
	DefenseCategory string
}

// LeagueDashPtDefend returns defense-tracking stats for one shot category.
func (c *Client) LeagueDashPtDefend(ctx context.Context, p DefendParams) ([]ResultTable, error) {
	v := url.Values{}
	v.Set("LeagueID", leagueID)
	v.Set("Season", p.Season)
	v.Set("SeasonType", p.SeasonType)
	v.Set("DefenseCategory", p.DefenseCategory)
	v.Set("PerMode", "Totals")
	return c.get(ctx, endpointLeagueDashPtDefend, v)
}

// EstimatedMetricsParams selects one estimated-metrics request.
type EstimatedMetricsParams struct {
	Season     string
	SeasonType string
}

// PlayerEstimatedMetrics returns estimated advanced metrics for all players.
// This endpoint answers with a singular resultSet envelope.
func (c *Client) PlayerEstimatedMetrics(ctx context.Context, p EstimatedMetricsParams) ([]ResultTable, error) {
	v := url.Values{}
	v.Set("LeagueID", leagueID)
	v.Set("Season", p.Season)
	v.Set("SeasonType", p.SeasonType)
	return c.get(ctx, endpointPlayerEstimatedMetrics, v)
}

// HealthCheck performs one lightweight lineups call to verify the service is
// reachable. It uses a short retry budget so an outage is reported quickly.
func (c *Client) HealthCheck(ctx context.Context, season string) error {
	p := LineupsParams{
		Season:        season,
		SeasonType:    "Regular Season",
		MeasureType:   "Base",
		PerMode:       "Totals",
		GroupQuantity: 5,
	}
	_, err := c.getWithRetries(ctx, endpointLeagueDashLineups, p.values(), 3, 2*time.Second)
	return err
}

// baseFilterValues returns the fixed filter parameters shared by the dash
// endpoints. The service requires them even when unused.
func baseFilterValues() url.Values {
	v := url.Values{}
	v.Set("LeagueID", leagueID)
	v.Set("LastNGames", "0")
	v.Set("Month", "0")
	v.Set("OpponentTeamID", "0")
	v.Set("PaceAdjust", "N")
	v.Set("Period", "0")
	v.Set("PlusMinus", "N")
	v.Set("Rank", "N")
	return v
}
