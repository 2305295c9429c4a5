package table

import (
	"nbafetch/pkg/logger"
)

// JoinMode selects how rows without a match across sources are handled.
type JoinMode int

const (
	// JoinOuter preserves unmatched rows from every source, filling missing
	// cells with "".
	JoinOuter JoinMode = iota
	// JoinInner keeps only keys present in every merged source.
	JoinInner
)

// Keyed pairs a source label (e.g. a measure type) with its table. Merge
// iterates sources in slice order; that order is the declaration order of
// the category catalog and determines which source wins column collisions.
type Keyed struct {
	Label string
	Table *Table
}

// MergeOn joins the sources on the named key column. For any column name
// appearing in more than one source, only the first-seen source's version is
// retained. Sources that are nil or empty, or that lack the key column, are
// skipped and logged. An empty source list, or one where nothing contributes,
// yields an empty table. Keys are assumed unique within each source; on
// duplicates the first row wins.
func MergeOn(sources []Keyed, key string, mode JoinMode, log logger.Logger) *Table {
	if log == nil {
		log = logger.GetLogger()
	}

	claimed := map[string]bool{key: true}
	var frames []*Table

	for _, src := range sources {
		if src.Table == nil || src.Table.IsEmpty() {
			log.WarnWithFields("skipping empty table in merge", map[string]interface{}{
				"label": src.Label,
			})
			continue
		}
		if !src.Table.HasColumn(key) {
			log.WarnWithFields("skipping table without merge key", map[string]interface{}{
				"label": src.Label,
				"key":   key,
			})
			continue
		}

		cols := []string{key}
		for _, c := range src.Table.columns {
			if !claimed[c] {
				cols = append(cols, c)
				claimed[c] = true
			}
		}
		frame, err := src.Table.Select(cols)
		if err != nil {
			// Unreachable: cols were taken from the table itself.
			continue
		}
		frames = append(frames, frame)
	}

	if len(frames) == 0 {
		return New()
	}

	merged := frames[0]
	for _, next := range frames[1:] {
		merged = join(merged, next, key, mode)
	}

	log.InfoWithFields("merged source tables", map[string]interface{}{
		"sources": len(frames),
		"rows":    merged.NumRows(),
		"cols":    merged.NumCols(),
	})
	return merged
}

// join merges two tables on key. Row order: left rows first (in order), then,
// for outer joins, unmatched right rows in their original order.
func join(left, right *Table, key string, mode JoinMode) *Table {
	keyIdxL := left.index[key]
	keyIdxR := right.index[key]

	// Columns contributed by the right side, key excluded (already claimed).
	var rightCols []string
	var rightIdx []int
	for i, c := range right.columns {
		if c == key {
			continue
		}
		rightCols = append(rightCols, c)
		rightIdx = append(rightIdx, i)
	}

	out := New(append(left.Columns(), rightCols...)...)

	rightByKey := make(map[string]int, len(right.rows))
	for i, row := range right.rows {
		k := row[keyIdxR]
		if _, seen := rightByKey[k]; !seen {
			rightByKey[k] = i
		}
	}

	matchedRight := make(map[int]bool, len(right.rows))
	for _, lrow := range left.rows {
		ri, ok := rightByKey[lrow[keyIdxL]]
		if !ok && mode == JoinInner {
			continue
		}
		cells := make([]string, 0, len(out.columns))
		cells = append(cells, lrow...)
		if ok {
			matchedRight[ri] = true
			for _, idx := range rightIdx {
				cells = append(cells, right.rows[ri][idx])
			}
		} else {
			for range rightIdx {
				cells = append(cells, "")
			}
		}
		out.rows = append(out.rows, cells)
	}

	if mode == JoinOuter {
		for i, rrow := range right.rows {
			if matchedRight[i] {
				continue
			}
			if _, first := rightByKey[rrow[keyIdxR]]; first && rightByKey[rrow[keyIdxR]] != i {
				// Duplicate key within right; first row already considered.
				continue
			}
			cells := make([]string, len(out.columns))
			cells[keyIdxL] = rrow[keyIdxR]
			for j, idx := range rightIdx {
				cells[len(left.columns)+j] = rrow[idx]
			}
			out.rows = append(out.rows, cells)
		}
	}

	return out
}
