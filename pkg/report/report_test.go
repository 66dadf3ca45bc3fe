package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrsl/wfx/pkg/brief"
	"github.com/xrsl/wfx/pkg/catalog"
	"github.com/xrsl/wfx/pkg/score"
	"github.com/xrsl/wfx/pkg/style"
)

func TestMain(m *testing.M) {
	style.NoColor = true
	os.Exit(m.Run())
}

func analyze(t *testing.T, text string) *score.Analysis {
	t.Helper()
	p, err := score.LoadProfile(score.ProfileWeighted, "")
	require.NoError(t, err)
	a, err := p.Analyze(text)
	require.NoError(t, err)
	return a
}

func render(t *testing.T, a *score.Analysis, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, a, opts))
	return buf.String()
}

func TestTextRecommended(t *testing.T) {
	out := render(t, analyze(t, "Build a knowledge management system for documentation with RAG search"), Options{})

	assert.Contains(t, out, "WORKFLOW SELECTION ANALYSIS")
	assert.Contains(t, out, "✓ Knowledge Management [medium priority]")
	assert.Contains(t, out, "✓ RAG Search [medium priority]")
	assert.Contains(t, out, "1. Archon-main ★ RECOMMENDED")
	assert.Contains(t, out, "Match Score: 81.0% [████████████████░░░░]")
	assert.Contains(t, out, "Total Score: 81.0/100")
	assert.Contains(t, out, "• Core Features: 27.0")
	assert.NotContains(t, out, "• Tech Stack:")
	assert.Contains(t, out, "Requires knowledge management - Archon-main provides excellent support")
	assert.Contains(t, out, "TOP RECOMMENDATION: Archon-main")
	assert.Contains(t, out, "1. Review documentation for Archon-main")
	assert.NotContains(t, out, "Alternative:")
	assert.Contains(t, out, "Keywords: knowledge, management, system, documentation, search")
}

func TestTextNothingMatched(t *testing.T) {
	out := render(t, analyze(t, "hello there"), Options{})

	assert.Contains(t, out, "No strong requirements detected")
	assert.Contains(t, out, "No workflow scored above zero")
	assert.Contains(t, out, "No workflow reached the 60% recommendation threshold")
	assert.NotContains(t, out, "TOP RECOMMENDATION")
}

func TestTextSkipsZeroScores(t *testing.T) {
	out := render(t, analyze(t, "agent"), Options{})

	assert.Contains(t, out, "1. ottomator-agents-main")
	assert.Contains(t, out, "2. context-engineering-intro-main")
	assert.NotContains(t, out, "3. ")
	assert.NotContains(t, out, "RECOMMENDED")
	assert.Contains(t, out, "No workflow reached the 60% recommendation threshold")
}

func TestTextTopLimit(t *testing.T) {
	out := render(t, analyze(t, "agent"), Options{Top: 1})
	assert.Contains(t, out, "1. ottomator-agents-main")
	assert.NotContains(t, out, "2. ")
}

func TestTextHighPriority(t *testing.T) {
	out := render(t, analyze(t, "Critical knowledge base"), Options{})
	assert.Contains(t, out, "Knowledge Management [high priority]")
}

func TestTextAlternative(t *testing.T) {
	doc := `workflows:
  - name: first
    features: [{signal: documentation, weight: 25, strength: excellent}]
    best_for: [Manuals, Guides, Wikis]
    complexity: low
    setup_time: quick
    team_size: large
  - name: second
    features: [{signal: documentation, weight: 20, strength: good}]
    best_for: [Readmes, Changelogs, Specs]
    complexity: low
    setup_time: quick
    team_size: large
`
	c, err := catalog.Parse([]byte(doc), catalog.YAML)
	require.NoError(t, err)
	a, err := score.NewProfile("custom", c, score.DefaultPolicy(), brief.Options{}).Analyze("readme")
	require.NoError(t, err)

	out := render(t, a, Options{})
	assert.Contains(t, out, "TOP RECOMMENDATION: first")
	assert.Contains(t, out, "Alternative: second (60.0% match)")
	assert.Contains(t, out, "Consider this if you need: Readmes, Changelogs")
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("short", 300))

	long := strings.Repeat("a", 350)
	got := Excerpt(long, 300)
	assert.Equal(t, strings.Repeat("a", 300)+"...", got)

	assert.Equal(t, "héé...", Excerpt("héééé", 3))
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Core Features", Title("core_features"))
	assert.Equal(t, "Complexity", Title("complexity"))
}

func TestJSONDefaultProjection(t *testing.T) {
	a := analyze(t, "Critical new knowledge base with python")
	r := JSON(a, false)

	assert.Equal(t, a.Brief, r.Brief)
	assert.Len(t, r.Requirements, len(brief.Signals()))
	for name, v := range r.Requirements {
		assert.IsType(t, true, v, name)
	}
	assert.Equal(t, true, r.Requirements[brief.KnowledgeManagement])
	assert.Equal(t, true, r.Requirements[brief.Python])
	require.Len(t, r.Recommendations, 5)
	assert.Equal(t, "Archon-main", r.Recommendations[0].Workflow)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	s := string(data)
	for _, key := range []string{"project_type", "keywords", "priority_requirements", "catalog_digest", "detailed_scores", "strengths"} {
		assert.NotContains(t, s, `"`+key+`"`)
	}
}

func TestJSONFullProjection(t *testing.T) {
	a := analyze(t, "Critical new knowledge base with python")
	r := JSON(a, true)

	assert.Equal(t, score.ProfileWeighted, r.Profile)
	assert.Equal(t, a.Catalog.Digest(), r.CatalogDigest)
	assert.Equal(t, a.Catalog.Version(), r.CatalogVersion)
	assert.Equal(t, brief.NewProject, r.Requirements["project_type"])
	assert.Equal(t, map[string]string{
		brief.KnowledgeManagement: brief.PriorityHigh,
		brief.Python:              brief.PriorityHigh,
	}, r.Requirements["priority_requirements"])
	assert.NotEmpty(t, r.Recommendations[0].Detail)
	assert.Len(t, r.Recommendations[0].Strengths, 3)
}

func TestWriteJSON(t *testing.T) {
	a := analyze(t, "knowledge")
	path := filepath.Join(t.TempDir(), "out", "analysis.json")
	require.NoError(t, WriteJSON(path, JSON(a, false)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "knowledge", got["brief"])
	assert.Len(t, got["recommendations"], 5)
}

func TestWriteJSONFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	err := WriteJSON(filepath.Join(blocker, "out.json"), JSON(analyze(t, "knowledge"), false))
	assert.Error(t, err)
}
