package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrsl/wfx/pkg/brief"
)

const sampleYAML = `version: "test"
workflows:
  - name: docs-flow
    features:
      - {signal: documentation, weight: 4, strength: good}
    tech:
      - {signal: python, weight: 2, present: true}
    project_type_fit:
      - {type: new_project, bonus: 3, reason: Fresh start}
    best_for: [Docs]
    not_for: [Scripts]
    complexity: low
    setup_time: quick
    team_size: solo_to_small
`

const sampleTOML = `version = "test"

[[workflows]]
name = "docs-flow"
best_for = ["Docs"]
not_for = ["Scripts"]
complexity = "low"
setup_time = "quick"
team_size = "solo_to_small"

  [[workflows.features]]
  signal = "documentation"
  weight = 4.0
  strength = "good"

  [[workflows.tech]]
  signal = "python"
  weight = 2.0
  present = true

  [[workflows.project_type_fit]]
  type = "new_project"
  bonus = 3.0
  reason = "Fresh start"
`

func TestBuiltinCatalogs(t *testing.T) {
	for _, name := range []string{"weighted", "coarse"} {
		t.Run(name, func(t *testing.T) {
			c, err := Builtin(name)
			require.NoError(t, err)
			assert.Equal(t, []string{
				"Archon-main",
				"context-engineering-intro-main",
				"mcp-crawl4ai-rag-main",
				"ottomator-agents-main",
				"SuperTemplate-master",
			}, c.Names())
			assert.Len(t, c.Digest(), 64)
			assert.NotEmpty(t, c.Version())
		})
	}

	_, err := Builtin("missing")
	assert.Error(t, err)
}

func TestWeightedCatalogContents(t *testing.T) {
	c, err := Builtin("weighted")
	require.NoError(t, err)

	archon, ok := c.Get("Archon-main")
	require.True(t, ok)
	assert.Len(t, archon.Features, 7)
	assert.Equal(t, Feature{Signal: brief.KnowledgeManagement, Weight: 10, Strength: "excellent"}, archon.Features[0])

	fit, ok := archon.TypeFitFor(brief.ExistingProject)
	require.True(t, ok)
	assert.Equal(t, 7.0, fit.Bonus)
	_, ok = archon.TypeFitFor(brief.NewProject)
	assert.False(t, ok)

	ce, _ := c.Get("context-engineering-intro-main")
	fit, ok = ce.TypeFitFor(brief.NewProject)
	require.True(t, ok)
	assert.Equal(t, 8.0, fit.Bonus)
	assert.Equal(t, Tech{Signal: brief.TypeScript, Weight: 3, Present: false}, ce.Tech[1])
}

func TestDigestTracksContent(t *testing.T) {
	a, err := Parse([]byte(sampleYAML), YAML)
	require.NoError(t, err)
	b, err := Parse([]byte(sampleYAML), YAML)
	require.NoError(t, err)
	assert.Equal(t, a.Digest(), b.Digest())

	c, err := Parse([]byte(sampleYAML+"\n# tweak\n"), YAML)
	require.NoError(t, err)
	assert.NotEqual(t, a.Digest(), c.Digest())
}

func TestTOMLMatchesYAML(t *testing.T) {
	y, err := Parse([]byte(sampleYAML), YAML)
	require.NoError(t, err)
	tm, err := Parse([]byte(sampleTOML), TOML)
	require.NoError(t, err)

	assert.Equal(t, y.Version(), tm.Version())
	assert.Equal(t, y.Workflows(), tm.Workflows())
}

func TestLoadByExtension(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "catalog.yml")
	tomlPath := filepath.Join(dir, "catalog.toml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(sampleYAML), 0o644))
	require.NoError(t, os.WriteFile(tomlPath, []byte(sampleTOML), 0o644))

	c, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	c, err = Load(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = Load(filepath.Join(dir, "catalog.json"))
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty", `version: "x"`},
		{"unknown signal", `workflows:
  - name: a
    features: [{signal: telepathy, weight: 1, strength: good}]
    complexity: low
    setup_time: quick
    team_size: large`},
		{"tech as feature", `workflows:
  - name: a
    features: [{signal: python, weight: 1, strength: good}]
    complexity: low
    setup_time: quick
    team_size: large`},
		{"zero weight", `workflows:
  - name: a
    features: [{signal: documentation, weight: 0, strength: good}]
    complexity: low
    setup_time: quick
    team_size: large`},
		{"bad strength", `workflows:
  - name: a
    features: [{signal: documentation, weight: 1, strength: superb}]
    complexity: low
    setup_time: quick
    team_size: large`},
		{"bad tier", `workflows:
  - name: a
    complexity: extreme
    setup_time: quick
    team_size: large`},
		{"bad project type", `workflows:
  - name: a
    project_type_fit: [{type: production, bonus: 1}]
    complexity: low
    setup_time: quick
    team_size: large`},
		{"duplicate workflow", `workflows:
  - {name: a, complexity: low, setup_time: quick, team_size: large}
  - {name: a, complexity: low, setup_time: quick, team_size: large}`},
		{"unknown field", `workflows:
  - {name: a, colour: red, complexity: low, setup_time: quick, team_size: large}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), YAML)
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestFind(t *testing.T) {
	c, err := Builtin("weighted")
	require.NoError(t, err)

	tests := []struct {
		query string
		want  string
	}{
		{"Archon-main", "Archon-main"},
		{"supertemplate-master", "SuperTemplate-master"},
		{"crawl", "mcp-crawl4ai-rag-main"},
	}
	for _, tt := range tests {
		w, err := c.Find(tt.query)
		require.NoError(t, err, tt.query)
		assert.Equal(t, tt.want, w.Name, tt.query)
	}

	_, err = c.Find("zzzz")
	assert.ErrorIs(t, err, ErrWorkflowNotFound)
}

func TestWorkflowsReturnsCopy(t *testing.T) {
	c, err := Builtin("weighted")
	require.NoError(t, err)

	orig, ok := c.Get("Archon-main")
	require.True(t, ok)

	ws := c.Workflows()
	ws[0].Name = "changed"
	ws[0].BestFor[0] = "changed"
	ws[0].Features[0].Weight = 999
	ws[0].Tech = append(ws[0].Tech[:0], Tech{Signal: "go", Weight: 1, Present: true})
	assert.Equal(t, "Archon-main", c.Names()[0])

	got, ok := c.Get("Archon-main")
	require.True(t, ok)
	assert.Equal(t, orig, got)

	got.NotFor[0] = "changed"
	got.ProjectTypeFit = nil
	found, err := c.Find("archon-main")
	require.NoError(t, err)
	assert.Equal(t, orig, found)
}
