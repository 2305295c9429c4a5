package fetcher

import (
	"context"
	"fmt"

	"nbafetch/pkg/config"
	"nbafetch/pkg/nba"
	"nbafetch/pkg/table"
)

// Result-set positions in the on/off response.
const (
	onCourtSetIndex  = 1
	offCourtSetIndex = 2
)

// FetchOnOff fetches on/off court player stats for every team and season
// type. Each response's on-court and off-court sub-tables are tagged with
// COURT_STATUS and concatenated.
func (f *Fetcher) FetchOnOff(ctx context.Context, season string) ([]Dataset, error) {
	var frames []*table.Table
	teamIDs := nba.AllTeamIDs()

	for idx, teamID := range teamIDs {
		teamName := nba.TeamName(teamID)
		f.logger.InfoWithFields("on/off team", map[string]interface{}{
			"progress": fmt.Sprintf("%d/%d", idx+1, len(teamIDs)),
			"team":     teamName,
		})

		for _, seasonType := range config.SeasonTypes {
			tables, err := f.client.TeamPlayerOnOffSummary(ctx, nba.OnOffParams{
				TeamID:     teamID,
				Season:     season,
				SeasonType: seasonType,
			})
			if err != nil {
				f.logger.ErrorWithFields("on/off point failed", map[string]interface{}{
					"team":        teamName,
					"season_type": seasonType,
					"error":       err.Error(),
				})
				f.pace(ctx)
				continue
			}

			if len(tables) > offCourtSetIndex {
				onCourt := tables[onCourtSetIndex].Table
				offCourt := tables[offCourtSetIndex].Table
				f.tag(onCourt, "COURT_STATUS", "On")
				f.tag(offCourt, "COURT_STATUS", "Off")

				combined := table.Concat(onCourt, offCourt)
				if !combined.IsEmpty() {
					f.tag(combined, "team", teamName)
					f.tag(combined, "SEASON_TYPE", seasonType)
					frames = append(frames, combined)
				}
			}

			f.pace(ctx)
		}

		f.paceCombo(ctx)
	}

	return f.finishCategory(frames, "on_off", season)
}

// FetchClutch fetches league-wide team clutch stats (last 5 minutes, within
// 5 points) per season type.
func (f *Fetcher) FetchClutch(ctx context.Context, season string) ([]Dataset, error) {
	var frames []*table.Table

	for _, seasonType := range config.SeasonTypes {
		tables, err := f.client.LeagueDashTeamClutch(ctx, nba.ClutchParams{
			Season:     season,
			SeasonType: seasonType,
		})
		if err != nil {
			f.logger.ErrorWithFields("clutch point failed", map[string]interface{}{
				"season_type": seasonType,
				"error":       err.Error(),
			})
		} else if t := firstTable(tables); t != nil {
			f.tag(t, "SEASON_TYPE", seasonType)
			frames = append(frames, t)
		}
		f.pace(ctx)
	}

	return f.finishCategory(frames, "clutch", season)
}

// FetchPlayTypes fetches play-type data for every play type, offense and
// defense, teams and players, per season type.
func (f *Fetcher) FetchPlayTypes(ctx context.Context, season string) ([]Dataset, error) {
	var frames []*table.Table

	typeGroupings := []string{"Offensive", "Defensive"}
	playerOrTeam := []struct{ abbr, label string }{
		{"T", "Team"},
		{"P", "Player"},
	}

	total := len(config.SynergyPlayTypes) * len(typeGroupings) * len(playerOrTeam) * len(config.SeasonTypes)
	callIdx := 0

	for _, seasonType := range config.SeasonTypes {
		for _, playType := range config.SynergyPlayTypes {
			for _, grouping := range typeGroupings {
				for _, pot := range playerOrTeam {
					callIdx++
					f.logger.InfoWithFields("play-type point", map[string]interface{}{
						"progress":    fmt.Sprintf("%d/%d", callIdx, total),
						"season_type": seasonType,
						"play_type":   playType,
						"grouping":    grouping,
						"entity":      pot.label,
					})

					tables, err := f.client.SynergyPlayTypes(ctx, nba.SynergyParams{
						Season:       season,
						SeasonType:   seasonType,
						PlayType:     playType,
						TypeGrouping: grouping,
						PlayerOrTeam: pot.abbr,
					})
					if err != nil {
						f.logger.ErrorWithFields("play-type point failed", map[string]interface{}{
							"play_type":   playType,
							"grouping":    grouping,
							"entity":      pot.label,
							"season_type": seasonType,
							"error":       err.Error(),
						})
					} else if t := firstTable(tables); t != nil {
						f.tag(t, "PLAY_TYPE", playType)
						f.tag(t, "TYPE_GROUPING", grouping)
						f.tag(t, "PLAYER_OR_TEAM", pot.label)
						f.tag(t, "SEASON_TYPE", seasonType)
						frames = append(frames, t)
					}
					f.pace(ctx)
				}
			}
		}
	}

	return f.finishCategory(frames, "play_types", season)
}

// FetchHustle fetches league hustle stats for players and teams, producing
// up to two datasets.
func (f *Fetcher) FetchHustle(ctx context.Context, season string) ([]Dataset, error) {
	var playerFrames, teamFrames []*table.Table

	for _, seasonType := range config.SeasonTypes {
		params := nba.HustleParams{Season: season, SeasonType: seasonType}

		tables, err := f.client.LeagueHustleStatsPlayer(ctx, params)
		if err != nil {
			f.logger.ErrorWithFields("hustle players point failed", map[string]interface{}{
				"season_type": seasonType,
				"error":       err.Error(),
			})
		} else if t := firstTable(tables); t != nil {
			f.tag(t, "SEASON_TYPE", seasonType)
			playerFrames = append(playerFrames, t)
		}
		f.pace(ctx)

		tables, err = f.client.LeagueHustleStatsTeam(ctx, params)
		if err != nil {
			f.logger.ErrorWithFields("hustle teams point failed", map[string]interface{}{
				"season_type": seasonType,
				"error":       err.Error(),
			})
		} else if t := firstTable(tables); t != nil {
			f.tag(t, "SEASON_TYPE", seasonType)
			teamFrames = append(teamFrames, t)
		}
		f.pace(ctx)
	}

	var datasets []Dataset
	if len(playerFrames) > 0 {
		ds, err := f.save(table.Concat(playerFrames...), "hustle_players", seasonFile("hustle_players", season))
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, ds)
	}
	if len(teamFrames) > 0 {
		ds, err := f.save(table.Concat(teamFrames...), "hustle_teams", seasonFile("hustle_teams", season))
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, ds)
	}
	if len(datasets) == 0 {
		f.logger.Warn("no hustle data collected")
	}
	return datasets, nil
}

// FetchTracking fetches player-tracking stats for every tracking measure
// type, at player and team level, per season type.
func (f *Fetcher) FetchTracking(ctx context.Context, season string) ([]Dataset, error) {
	var frames []*table.Table

	levels := []string{"Player", "Team"}
	total := len(config.PTMeasureTypes) * len(levels) * len(config.SeasonTypes)
	callIdx := 0

	for _, seasonType := range config.SeasonTypes {
		for _, ptMeasure := range config.PTMeasureTypes {
			for _, level := range levels {
				callIdx++
				f.logger.InfoWithFields("tracking point", map[string]interface{}{
					"progress":    fmt.Sprintf("%d/%d", callIdx, total),
					"measure":     ptMeasure,
					"entity":      level,
					"season_type": seasonType,
				})

				tables, err := f.client.LeagueDashPtStats(ctx, nba.TrackingParams{
					Season:        season,
					SeasonType:    seasonType,
					PtMeasureType: ptMeasure,
					PlayerOrTeam:  level,
				})
				if err != nil {
					f.logger.ErrorWithFields("tracking point failed", map[string]interface{}{
						"measure":     ptMeasure,
						"entity":      level,
						"season_type": seasonType,
						"error":       err.Error(),
					})
				} else if t := firstTable(tables); t != nil {
					f.tag(t, "PT_MEASURE_TYPE", ptMeasure)
					f.tag(t, "PLAYER_OR_TEAM", level)
					f.tag(t, "SEASON_TYPE", seasonType)
					frames = append(frames, t)
				}
				f.pace(ctx)
			}
		}
	}

	return f.finishCategory(frames, "tracking", season)
}

// FetchDefenseTracking fetches defense-tracking data for every defense
// category, per season type.
func (f *Fetcher) FetchDefenseTracking(ctx context.Context, season string) ([]Dataset, error) {
	var frames []*table.Table

	total := len(config.DefenseCategories) * len(config.SeasonTypes)
	callIdx := 0

	for _, seasonType := range config.SeasonTypes {
		for _, category := range config.DefenseCategories {
			callIdx++
			f.logger.InfoWithFields("defense tracking point", map[string]interface{}{
				"progress":    fmt.Sprintf("%d/%d", callIdx, total),
				"category":    category,
				"season_type": seasonType,
			})

			tables, err := f.client.LeagueDashPtDefend(ctx, nba.DefendParams{
				Season:          season,
				SeasonType:      seasonType,
				DefenseCategory: category,
			})
			if err != nil {
				f.logger.ErrorWithFields("defense tracking point failed", map[string]interface{}{
					"category":    category,
					"season_type": seasonType,
					"error":       err.Error(),
				})
			} else if t := firstTable(tables); t != nil {
				f.tag(t, "DEFENSE_CATEGORY", category)
				f.tag(t, "SEASON_TYPE", seasonType)
				frames = append(frames, t)
			}
			f.pace(ctx)
		}
	}

	return f.finishCategory(frames, "defense_tracking", season)
}

// FetchEstimatedMetrics fetches player estimated advanced metrics per season
// type.
func (f *Fetcher) FetchEstimatedMetrics(ctx context.Context, season string) ([]Dataset, error) {
	var frames []*table.Table

	for _, seasonType := range config.SeasonTypes {
		tables, err := f.client.PlayerEstimatedMetrics(ctx, nba.EstimatedMetricsParams{
			Season:     season,
			SeasonType: seasonType,
		})
		if err != nil {
			f.logger.ErrorWithFields("estimated metrics point failed", map[string]interface{}{
				"season_type": seasonType,
				"error":       err.Error(),
			})
		} else if t := firstTable(tables); t != nil {
			f.tag(t, "SEASON_TYPE", seasonType)
			frames = append(frames, t)
		}
		f.pace(ctx)
	}

	return f.finishCategory(frames, "estimated_metrics", season)
}

// finishCategory concatenates a category's accumulated frames and saves the
// result. No frames at all is an absent result, not a failure: the category
// is logged as empty and no dataset is produced.
func (f *Fetcher) finishCategory(frames []*table.Table, category, season string) ([]Dataset, error) {
	if len(frames) == 0 {
		f.logger.WarnWithFields("no data collected for category", map[string]interface{}{
			"category": category,
		})
		return nil, nil
	}

	combined := table.Concat(frames...)
	ds, err := f.save(combined, category, seasonFile(category, season))
	if err != nil {
		return nil, err
	}
	return []Dataset{ds}, nil
}
