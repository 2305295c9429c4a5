package pipeline

import (
	"fmt"
	"time"
)

// SectionResult records one section's outcome. Success means the section
// produced at least one row.
type SectionResult struct {
	Name     string        `json:"name"`
	Success  bool          `json:"success"`
	Rows     int           `json:"rows"`
	Duration time.Duration `json:"duration_ns"`
}

// Summary is the run's single source of truth: what succeeded, what failed,
// how many rows and files resulted, and how many external calls it took.
type Summary struct {
	Season     string          `json:"season"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	WallTime   time.Duration   `json:"wall_time_ns"`
	TotalCalls int64           `json:"total_calls"`
	TotalRows  int             `json:"total_rows"`
	Sections   []SectionResult `json:"sections"`
	Files      []string        `json:"files"`
}

// Succeeded returns the names of sections that produced rows.
func (s *Summary) Succeeded() []string {
	var out []string
	for _, sec := range s.Sections {
		if sec.Success {
			out = append(out, sec.Name)
		}
	}
	return out
}

// Failed returns the names of sections that produced nothing.
func (s *Summary) Failed() []string {
	var out []string
	for _, sec := range s.Sections {
		if !sec.Success {
			out = append(out, sec.Name)
		}
	}
	return out
}

func (p *Pipeline) renderSummary(s *Summary) {
	p.logger.Info("==================== PIPELINE SUMMARY ====================")
	p.logger.InfoWithFields("totals", map[string]interface{}{
		"wall_time":   s.WallTime.Round(time.Second).String(),
		"total_calls": s.TotalCalls,
		"total_rows":  s.TotalRows,
		"files":       len(s.Files),
	})
	for _, sec := range s.Sections {
		fields := map[string]interface{}{
			"section":  sec.Name,
			"rows":     sec.Rows,
			"duration": sec.Duration.Round(time.Second).String(),
		}
		if sec.Success {
			p.logger.InfoWithFields("section succeeded", fields)
		} else {
			p.logger.WarnWithFields("section failed", fields)
		}
	}
	p.logger.Info(fmt.Sprintf("succeeded: %d, failed: %d", len(s.Succeeded()), len(s.Failed())))
}
