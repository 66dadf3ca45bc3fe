package report

import (
	"encoding/json"
	"fmt"
	"io"

	clog "github.com/xrsl/wfx/pkg/log"
	"github.com/xrsl/wfx/pkg/score"
	"github.com/xrsl/wfx/pkg/utils"
)

// Report is the serialized form of an analysis.
type Report struct {
	Brief           string           `json:"brief"`
	Profile         string           `json:"profile,omitempty"`
	CatalogVersion  string           `json:"catalog_version,omitempty"`
	CatalogDigest   string           `json:"catalog_digest,omitempty"`
	Requirements    map[string]any   `json:"requirements"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Recommendation is one ranked workflow in a Report.
type Recommendation struct {
	Workflow        string                     `json:"workflow"`
	Score           float64                    `json:"score"`
	MatchPercentage float64                    `json:"match_percentage"`
	Recommended     bool                       `json:"recommended"`
	Reasons         []string                   `json:"reasons"`
	Detail          map[score.Category]float64 `json:"detailed_scores,omitempty"`
	Strengths       []string                   `json:"strengths,omitempty"`
	Considerations  []string                   `json:"considerations,omitempty"`
}

// JSON builds the report payload. Without full, requirements carry only the
// boolean signals and recommendations omit the breakdown.
func JSON(a *score.Analysis, full bool) *Report {
	req := map[string]any{}
	for name, v := range a.Requirements.Flags() {
		req[name] = v
	}

	r := &Report{
		Brief:           a.Brief,
		Requirements:    req,
		Recommendations: make([]Recommendation, 0, len(a.Scores)),
	}

	if full {
		r.Profile = a.Profile
		if a.Catalog != nil {
			r.CatalogVersion = a.Catalog.Version()
			r.CatalogDigest = a.Catalog.Digest()
		}
		req["project_type"] = a.Requirements.ProjectType
		req["project_scale"] = a.Requirements.ProjectScale
		req["keywords"] = nonNil(a.Requirements.Keywords)
		priorities := map[string]string{}
		for k, v := range a.Requirements.Priorities {
			priorities[k] = v
		}
		req["priority_requirements"] = priorities
	}

	for _, s := range a.Scores {
		rec := Recommendation{
			Workflow:        s.Workflow,
			Score:           s.Total,
			MatchPercentage: s.MatchPercentage,
			Recommended:     s.Recommended,
			Reasons:         nonNil(s.Reasons),
		}
		if full {
			rec.Detail = s.Detail
			rec.Strengths = s.Strengths
			rec.Considerations = s.Considerations
		}
		r.Recommendations = append(r.Recommendations, rec)
	}
	return r
}

// Encode writes r as indented JSON.
func Encode(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteJSON writes r to path, creating parent directories.
func WriteJSON(path string, r *Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := utils.WriteFile(path, string(data)+"\n"); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	clog.Info("report_saved", "path", path, "recommendations", len(r.Recommendations))
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
