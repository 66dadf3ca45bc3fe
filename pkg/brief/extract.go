// Package brief turns a free-text project description into Requirements.
//
// Detection is plain substring containment on the lower-cased brief, so a
// short pattern such as "ts" also fires inside longer words. That is the
// documented behavior, not a bug to be fixed here.
package brief

import (
	"errors"
	"strings"

	clog "github.com/xrsl/wfx/pkg/log"
)

// ErrEmptyBrief is returned when there is no brief text to analyze.
var ErrEmptyBrief = errors.New("no project brief provided")

// MaxKeywords caps the extracted keyword list.
const MaxKeywords = 20

// minKeywordLen is the shortest token kept as a keyword, in runes.
const minKeywordLen = 4

type typeRule struct {
	typ      ProjectType
	keywords []string
}

// Checked in order; the first matching rule wins.
var typeRules = []typeRule{
	{NewProject, []string{"new", "start", "begin", "create", "build from scratch", "greenfield"}},
	{ExistingProject, []string{"existing", "current", "legacy", "already"}},
	{FeatureAddition, []string{"add", "feature", "enhance", "extend"}},
	{Refactor, []string{"refactor", "restructure", "reorganize"}},
	{Research, []string{"research", "explore", "prototype", "poc"}},
}

var (
	soloKeywords       = []string{"solo", "personal", "individual", "alone"}
	teamKeywords       = []string{"team", "group", "collaboration", "multiple"}
	enterpriseKeywords = []string{"large", "enterprise", "organization", "company"}
	urgencyKeywords    = []string{"critical", "essential", "must", "required", "priority", "important"}
)

var stopWords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "from": {}, "have": {},
	"will": {}, "need": {}, "want": {}, "build": {}, "create": {},
}

// IsStopWord reports whether w is dropped from extracted keywords.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// Options tune the extractor.
type Options struct {
	// KnowledgeImpliesDocumentation makes a knowledge-management hit also
	// set the documentation signal.
	KnowledgeImpliesDocumentation bool
}

// Extractor converts briefs into Requirements. The zero value is ready to use.
type Extractor struct {
	Options Options
}

// NewExtractor returns an Extractor with the given options.
func NewExtractor(opts Options) *Extractor {
	return &Extractor{Options: opts}
}

// MatchAny reports whether any pattern occurs in text. Both sides are
// expected to be lower-case already.
func MatchAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// Extract analyzes a brief. It fails only when the brief is blank.
func (e *Extractor) Extract(text string) (*Requirements, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyBrief
	}

	lower := strings.ToLower(text)
	req := &Requirements{
		Keywords:   Keywords(lower),
		Priorities: map[string]string{},
	}

	for _, s := range signals {
		if MatchAny(lower, s.Keywords) {
			*s.Field(req) = true
		}
	}
	if e.Options.KnowledgeImpliesDocumentation && req.KnowledgeManagement {
		req.Documentation = true
	}

	req.ProjectType = classifyType(lower)
	req.ProjectScale = classifyScale(lower)

	if MatchAny(lower, urgencyKeywords) {
		for _, s := range signals {
			if s.Get(req) {
				req.Priorities[s.Name] = PriorityHigh
			}
		}
	}

	clog.Debug("brief_analyzed",
		"signals", len(req.Detected()),
		"project_type", req.ProjectType,
		"project_scale", req.ProjectScale,
		"keywords", len(req.Keywords),
	)
	return req, nil
}

func classifyType(lower string) ProjectType {
	for _, r := range typeRules {
		if MatchAny(lower, r.keywords) {
			return r.typ
		}
	}
	return ""
}

func classifyScale(lower string) ProjectScale {
	switch {
	case MatchAny(lower, soloKeywords):
		return Solo
	case MatchAny(lower, teamKeywords):
		if MatchAny(lower, enterpriseKeywords) {
			return Enterprise
		}
		return SmallTeam
	}
	return ""
}
