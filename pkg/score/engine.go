// Package score rates catalog workflows against extracted requirements.
package score

import (
	"fmt"
	"strings"

	"github.com/xrsl/wfx/pkg/brief"
	"github.com/xrsl/wfx/pkg/catalog"
	clog "github.com/xrsl/wfx/pkg/log"
)

const (
	maxStrengths      = 3
	maxConsiderations = 2
)

// Tiers checked by the complexity fit.
const (
	tierMedium = "medium"
	tierHigh   = "high"
	tierQuick  = "quick"
	tierLarge  = "large"
)

// WorkflowScore is the result of scoring one workflow. Treat it as read-only.
type WorkflowScore struct {
	Workflow        string               `json:"workflow"`
	Total           float64              `json:"score"`
	MatchPercentage float64              `json:"match_percentage"`
	Detail          map[Category]float64 `json:"detail"`
	Reasons         []string             `json:"reasons"`
	Strengths       []string             `json:"strengths"`
	Considerations  []string             `json:"considerations"`
	Recommended     bool                 `json:"recommended"`
}

// Engine scores requirements against a catalog under a policy.
// It holds no per-run state and may be shared.
type Engine struct {
	catalog *catalog.Catalog
	policy  Policy
}

// NewEngine returns an Engine.
func NewEngine(c *catalog.Catalog, p Policy) *Engine {
	return &Engine{catalog: c, policy: p}
}

// Catalog returns the engine's catalog.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Policy returns the engine's policy.
func (e *Engine) Policy() Policy { return e.policy }

// Score rates a single workflow.
func (e *Engine) Score(wf catalog.Workflow, req *brief.Requirements) WorkflowScore {
	var reasons []string
	detail := make(map[Category]float64, len(Categories))

	var core float64
	for _, f := range wf.Features {
		if !req.Has(f.Signal) {
			continue
		}
		core += f.Weight
		reasons = append(reasons, fmt.Sprintf("Requires %s - %s provides %s support",
			strings.ToLower(brief.Label(f.Signal)), wf.Name, f.Strength))
	}
	detail[CoreFeatures] = core

	var tech float64
	for _, t := range wf.Tech {
		if t.Present && req.Has(t.Signal) {
			tech += t.Weight
		}
	}
	detail[TechStack] = tech

	var typeFit float64
	if fit, ok := wf.TypeFitFor(req.ProjectType); ok {
		typeFit = fit.Bonus
		if fit.Reason != "" {
			reasons = append(reasons, fit.Reason)
		}
	}
	detail[ProjectType] = typeFit

	var complexity float64
	switch req.ProjectScale {
	case brief.Solo:
		if e.policy.SoloBonus > 0 && (wf.Complexity == tierMedium || wf.SetupTime == tierQuick) {
			complexity = e.policy.SoloBonus
			reasons = append(reasons, "Suitable complexity for solo developer")
		}
	case brief.Enterprise:
		if e.policy.EnterpriseBonus > 0 && (wf.Complexity == tierHigh || wf.TeamSize == tierLarge) {
			complexity = e.policy.EnterpriseBonus
			reasons = append(reasons, "Suitable for enterprise-scale projects")
		}
	}
	detail[Complexity] = complexity

	total := core*e.policy.CoreWeight +
		tech*e.policy.TechWeight +
		typeFit*e.policy.TypeWeight +
		complexity*e.policy.ComplexityWeight
	pct := e.policy.Percentage(total)

	return WorkflowScore{
		Workflow:        wf.Name,
		Total:           total,
		MatchPercentage: pct,
		Detail:          detail,
		Reasons:         reasons,
		Strengths:       head(wf.BestFor, maxStrengths),
		Considerations:  head(wf.NotFor, maxConsiderations),
		Recommended:     e.policy.Recommended(pct),
	}
}

// ScoreAll scores every workflow and returns them ranked.
func (e *Engine) ScoreAll(req *brief.Requirements) []WorkflowScore {
	scores := make([]WorkflowScore, 0, e.catalog.Len())
	for _, wf := range e.catalog.Workflows() {
		scores = append(scores, e.Score(wf, req))
	}
	ranked := Rank(scores)
	if len(ranked) > 0 {
		clog.Debug("workflows_ranked",
			"count", len(ranked),
			"top", ranked[0].Workflow,
			"top_score", ranked[0].Total,
		)
	}
	return ranked
}

func head(s []string, n int) []string {
	if len(s) > n {
		s = s[:n]
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
