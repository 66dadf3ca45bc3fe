package catalog

import (
	"errors"
	"fmt"

	"github.com/xrsl/wfx/pkg/brief"
)

// Closed vocabularies for the descriptive tiers.
var (
	Strengths    = []string{"excellent", "very_good", "good", "moderate"}
	Complexities = []string{"low", "medium", "high"}
	SetupTimes   = []string{"quick", "moderate", "lengthy"}
	TeamSizes    = []string{"solo_to_small", "small_to_medium", "small_to_large", "large"}
	ProjectTypes = []brief.ProjectType{
		brief.NewProject, brief.ExistingProject, brief.FeatureAddition, brief.Refactor, brief.Research,
	}
)

func oneOf[T comparable](v T, allowed []T) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}

func validate(doc document) error {
	if len(doc.Workflows) == 0 {
		return fmt.Errorf("%w: no workflows", ErrInvalidCatalog)
	}

	var errs []error
	fail := func(wf, format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: workflow %q: %s", ErrInvalidCatalog, wf, fmt.Sprintf(format, args...)))
	}

	names := map[string]bool{}
	for i, w := range doc.Workflows {
		if w.Name == "" {
			fail(fmt.Sprintf("#%d", i+1), "missing name")
			continue
		}
		if names[w.Name] {
			fail(w.Name, "duplicate workflow")
		}
		names[w.Name] = true

		seen := map[string]bool{}
		for _, f := range w.Features {
			s, ok := brief.Lookup(f.Signal)
			switch {
			case !ok || s.Kind != brief.KindCore:
				fail(w.Name, "feature %q is not a core signal", f.Signal)
			case seen[f.Signal]:
				fail(w.Name, "feature %q listed twice", f.Signal)
			}
			seen[f.Signal] = true
			if f.Weight <= 0 {
				fail(w.Name, "feature %q: weight must be positive", f.Signal)
			}
			if !oneOf(f.Strength, Strengths) {
				fail(w.Name, "feature %q: strength %q not in %v", f.Signal, f.Strength, Strengths)
			}
		}

		for _, t := range w.Tech {
			s, ok := brief.Lookup(t.Signal)
			switch {
			case !ok || s.Kind != brief.KindTech:
				fail(w.Name, "tech %q is not a technology signal", t.Signal)
			case seen[t.Signal]:
				fail(w.Name, "tech %q listed twice", t.Signal)
			}
			seen[t.Signal] = true
			if t.Weight <= 0 {
				fail(w.Name, "tech %q: weight must be positive", t.Signal)
			}
		}

		fits := map[brief.ProjectType]bool{}
		for _, f := range w.ProjectTypeFit {
			if !oneOf(f.Type, ProjectTypes) {
				fail(w.Name, "project type %q not in %v", f.Type, ProjectTypes)
			}
			if fits[f.Type] {
				fail(w.Name, "project type %q listed twice", f.Type)
			}
			fits[f.Type] = true
			if f.Bonus <= 0 {
				fail(w.Name, "project type %q: bonus must be positive", f.Type)
			}
		}

		if !oneOf(w.Complexity, Complexities) {
			fail(w.Name, "complexity %q not in %v", w.Complexity, Complexities)
		}
		if !oneOf(w.SetupTime, SetupTimes) {
			fail(w.Name, "setup_time %q not in %v", w.SetupTime, SetupTimes)
		}
		if !oneOf(w.TeamSize, TeamSizes) {
			fail(w.Name, "team_size %q not in %v", w.TeamSize, TeamSizes)
		}
	}

	return errors.Join(errs...)
}
