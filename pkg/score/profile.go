package score

import (
	"fmt"

	"github.com/xrsl/wfx/pkg/brief"
	"github.com/xrsl/wfx/pkg/catalog"
)

// Profile names.
const (
	ProfileWeighted = "weighted"
	ProfileCoarse   = "coarse"
)

// Profiles lists the valid profile names.
var Profiles = []string{ProfileWeighted, ProfileCoarse}

// Profile pairs an extractor with a scoring engine.
type Profile struct {
	Name      string
	Extractor *brief.Extractor
	Engine    *Engine
}

// Analysis is everything produced for one brief.
type Analysis struct {
	Brief        string
	Profile      string
	Requirements *brief.Requirements
	Scores       []WorkflowScore // ranked
	Catalog      *catalog.Catalog
	Policy       Policy
}

// Top returns the first-ranked score, if any.
func (a *Analysis) Top() (WorkflowScore, bool) {
	if len(a.Scores) == 0 {
		return WorkflowScore{}, false
	}
	return a.Scores[0], true
}

// LoadProfile builds a named profile. A non-empty catalogPath replaces the
// profile's built-in catalog.
func LoadProfile(name, catalogPath string) (*Profile, error) {
	var (
		policy Policy
		opts   brief.Options
	)
	switch name {
	case "", ProfileWeighted:
		name = ProfileWeighted
		policy = DefaultPolicy()
	case ProfileCoarse:
		policy = CoarsePolicy()
		opts.KnowledgeImpliesDocumentation = true
	default:
		return nil, fmt.Errorf("unknown profile %q (valid: %v)", name, Profiles)
	}

	var (
		c   *catalog.Catalog
		err error
	)
	if catalogPath != "" {
		c, err = catalog.Load(catalogPath)
	} else {
		c, err = catalog.Builtin(name)
	}
	if err != nil {
		return nil, err
	}

	return NewProfile(name, c, policy, opts), nil
}

// NewProfile assembles a profile from parts.
func NewProfile(name string, c *catalog.Catalog, p Policy, opts brief.Options) *Profile {
	return &Profile{
		Name:      name,
		Extractor: brief.NewExtractor(opts),
		Engine:    NewEngine(c, p),
	}
}

// Analyze runs extraction, scoring and ranking for one brief.
func (p *Profile) Analyze(text string) (*Analysis, error) {
	req, err := p.Extractor.Extract(text)
	if err != nil {
		return nil, err
	}
	return &Analysis{
		Brief:        text,
		Profile:      p.Name,
		Requirements: req,
		Scores:       p.Engine.ScoreAll(req),
		Catalog:      p.Engine.Catalog(),
		Policy:       p.Engine.Policy(),
	}, nil
}
