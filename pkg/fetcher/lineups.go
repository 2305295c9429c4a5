package fetcher

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"nbafetch/pkg/config"
	"nbafetch/pkg/nba"
	"nbafetch/pkg/table"
)

// lineupMergeKey identifies one lineup across measure-type tables.
const lineupMergeKey = "GROUP_ID"

// FetchLineups fetches, merges and saves lineup data for every configured
// (season type, group quantity, per-mode) combination. For each combination
// all measure types are fetched and merged on GROUP_ID with inner-join
// semantics: only lineups present in every successfully fetched measure type
// survive. Returns one dataset per group quantity; an empty slice means the
// whole sweep produced nothing.
func (f *Fetcher) FetchLineups(ctx context.Context, season string) ([]Dataset, error) {
	accumulators := make(map[int][]*table.Table, len(config.GroupQuantities))

	totalCombos := len(config.SeasonTypes) * len(config.GroupQuantities) * len(config.PerModes)
	comboIdx := 0

	for _, seasonType := range config.SeasonTypes {
		for _, groupQuantity := range config.GroupQuantities {
			for _, perMode := range config.PerModes {
				comboIdx++
				f.logger.InfoWithFields("lineup combo", map[string]interface{}{
					"combo":       fmt.Sprintf("%d/%d", comboIdx, totalCombos),
					"season_type": seasonType,
					"group_size":  groupQuantity,
					"per_mode":    perMode,
				})

				merged := f.fetchLineupCombo(ctx, season, seasonType, groupQuantity, perMode)
				if merged != nil {
					accumulators[groupQuantity] = append(accumulators[groupQuantity], merged)
				}

				f.paceCombo(ctx)
			}
		}
	}

	var datasets []Dataset
	for _, gq := range config.GroupQuantities {
		frames := accumulators[gq]
		if len(frames) == 0 {
			f.logger.WarnWithFields("no lineup data collected", map[string]interface{}{
				"group_size": gq,
			})
			continue
		}

		combined := table.Concat(frames...)
		combined.SortBy(
			table.SortKey{Column: "team"},
			table.SortKey{Column: "SEASON_TYPE"},
			table.SortKey{Column: "PER_MODE"},
			table.SortKey{Column: "MIN", Descending: true},
		)

		name := fmt.Sprintf("lineups_%dman", gq)
		ds, err := f.save(combined, name, seasonFile(name, season))
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, ds)
	}

	if len(datasets) == 0 {
		f.logger.Warn("lineup sweep produced no data at all")
	}
	return datasets, nil
}

// fetchLineupCombo fetches all measure types for one combination and merges
// them. Returns nil when nothing was fetched or the merge came up empty.
func (f *Fetcher) fetchLineupCombo(ctx context.Context, season, seasonType string, groupQuantity int, perMode string) *table.Table {
	var sources []table.Keyed

	for _, measureType := range config.MeasureTypes {
		t := f.fetchLineupPoint(ctx, nba.LineupsParams{
			Season:        season,
			SeasonType:    seasonType,
			MeasureType:   measureType,
			PerMode:       perMode,
			GroupQuantity: groupQuantity,
		})
		if t != nil {
			sources = append(sources, table.Keyed{Label: measureType, Table: t})
		}
		f.pace(ctx)
	}

	if len(sources) == 0 {
		f.logger.WarnWithFields("no data for combo", map[string]interface{}{
			"season_type": seasonType,
			"group_size":  groupQuantity,
			"per_mode":    perMode,
		})
		return nil
	}

	// Inner join: keep only lineups that appear in every fetched measure type.
	merged := table.MergeOn(sources, lineupMergeKey, table.JoinInner, f.logger)
	if merged.IsEmpty() {
		return nil
	}

	f.tag(merged, "SEASON_TYPE", seasonType)
	f.tag(merged, "GROUP_QUANTITY", strconv.Itoa(groupQuantity))
	f.tag(merged, "PER_MODE", perMode)

	if merged.HasColumn("TEAM_ID") {
		if err := merged.AddDerivedColumn("team", func(row int) string {
			id, err := strconv.Atoi(merged.Cell(row, "TEAM_ID"))
			if err != nil {
				return "Unknown"
			}
			return nba.TeamName(id)
		}); err != nil {
			f.logger.WithError(err).Warn("could not derive team column")
		}
	}

	if merged.HasColumn("GROUP_NAME") {
		if err := merged.AddDerivedColumn("players_list", func(row int) string {
			return renderPlayersList(merged.Cell(row, "GROUP_NAME"))
		}); err != nil {
			f.logger.WithError(err).Warn("could not derive players_list column")
		}
	}

	return merged
}

// fetchLineupPoint performs one lineups call; a failure or empty response is
// logged and reported as nil so the sweep moves on.
func (f *Fetcher) fetchLineupPoint(ctx context.Context, p nba.LineupsParams) *table.Table {
	tables, err := f.client.LeagueDashLineups(ctx, p)
	if err != nil {
		f.logger.ErrorWithFields("lineup point failed", map[string]interface{}{
			"season_type":  p.SeasonType,
			"group_size":   p.GroupQuantity,
			"per_mode":     p.PerMode,
			"measure_type": p.MeasureType,
			"error":        err.Error(),
		})
		return nil
	}

	t := firstTable(tables)
	if t == nil {
		f.logger.WarnWithFields("lineup point returned no rows", map[string]interface{}{
			"season_type":  p.SeasonType,
			"group_size":   p.GroupQuantity,
			"per_mode":     p.PerMode,
			"measure_type": p.MeasureType,
		})
		return nil
	}

	f.logger.DebugWithFields("lineup point fetched", map[string]interface{}{
		"measure_type": p.MeasureType,
		"rows":         t.NumRows(),
	})
	return t
}

// renderPlayersList turns the composite "A. One - B. Two - ..." group name
// into the bracketed list the downstream viewer parses.
func renderPlayersList(groupName string) string {
	if groupName == "" {
		return "[]"
	}
	names := strings.Split(groupName, " - ")
	for i, n := range names {
		names[i] = strings.TrimSpace(n)
	}
	return "[" + strings.Join(names, ", ") + "]"
}
