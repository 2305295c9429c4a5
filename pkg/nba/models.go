package nba

import (
	"encoding/json"
	"fmt"

	"nbafetch/pkg/table"
)

// envelope is the stats service's response shape: a list of named result
// sets, each a header row plus a row set of heterogeneous values. A few
// endpoints return a single "resultSet" instead of the plural form.
type envelope struct {
	Resource   string      `json:"resource"`
	ResultSets []resultSet `json:"resultSets"`
	ResultSet  *resultSet  `json:"resultSet"`
}

type resultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

// ResultTable is one named result set decoded into a table.
type ResultTable struct {
	Name  string
	Table *table.Table
}

// First returns the first table in rs, or nil.
func First(rs []ResultTable) *table.Table {
	if len(rs) == 0 {
		return nil
	}
	return rs[0].Table
}

// ByName returns the table with the given result-set name, or nil.
func ByName(rs []ResultTable, name string) *table.Table {
	for _, r := range rs {
		if r.Name == name {
			return r.Table
		}
	}
	return nil
}

func (e *envelope) sets() []resultSet {
	if len(e.ResultSets) > 0 {
		return e.ResultSets
	}
	if e.ResultSet != nil {
		return []resultSet{*e.ResultSet}
	}
	return nil
}

func (rs *resultSet) toTable() (*table.Table, error) {
	t := table.New(rs.Headers...)
	for i, row := range rs.RowSet {
		if len(row) != len(rs.Headers) {
			return nil, fmt.Errorf("result set %q row %d has %d values for %d headers",
				rs.Name, i, len(row), len(rs.Headers))
		}
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellString(v)
		}
		if err := t.AppendRow(cells); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// cellString renders a decoded JSON value. The decoder runs with UseNumber,
// so numeric literals pass through verbatim.
func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(x)
	}
}
