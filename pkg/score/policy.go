package score

// Category names a sub-score.
type Category string

const (
	CoreFeatures Category = "core_features"
	TechStack    Category = "tech_stack"
	ProjectType  Category = "project_type"
	Complexity   Category = "complexity"
)

// Categories lists sub-scores in display order.
var Categories = []Category{CoreFeatures, TechStack, ProjectType, Complexity}

// Policy holds the scoring constants. They apply to every workflow alike;
// per-workflow numbers live in the catalog.
type Policy struct {
	CoreWeight       float64
	TechWeight       float64
	TypeWeight       float64
	ComplexityWeight float64

	// SoloBonus applies to medium-complexity or quick-setup workflows when
	// the brief is a solo project.
	SoloBonus float64
	// EnterpriseBonus applies to high-complexity or large-team workflows
	// when the brief is enterprise scale.
	EnterpriseBonus float64

	// MaxScore is the total treated as a 100% match.
	MaxScore float64
	// Threshold is the match percentage at which a workflow is recommended.
	Threshold float64
}

// DefaultPolicy is the multi-category weighting.
func DefaultPolicy() Policy {
	return Policy{
		CoreWeight:       3.0,
		TechWeight:       2.0,
		TypeWeight:       1.5,
		ComplexityWeight: 1.0,
		SoloBonus:        5.0,
		EnterpriseBonus:  5.0,
		MaxScore:         100.0,
		Threshold:        60.0,
	}
}

// CoarsePolicy sums catalog weights unscaled out of ten, with no
// technology or team-scale contribution.
func CoarsePolicy() Policy {
	return Policy{
		CoreWeight:       1.0,
		TechWeight:       0,
		TypeWeight:       1.0,
		ComplexityWeight: 0,
		MaxScore:         10.0,
		Threshold:        60.0,
	}
}

// Percentage converts a total into a match percentage clamped to [0, 100].
func (p Policy) Percentage(total float64) float64 {
	if p.MaxScore <= 0 {
		return 0
	}
	pct := total * 100 / p.MaxScore
	switch {
	case pct > 100:
		return 100
	case pct < 0:
		return 0
	}
	return pct
}

// Recommended reports whether a match percentage clears the threshold.
func (p Policy) Recommended(pct float64) bool {
	return pct >= p.Threshold
}
