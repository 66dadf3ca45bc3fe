package brief

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractKnowledgeBrief(t *testing.T) {
	req, err := (&Extractor{}).Extract("Build a knowledge management system for documentation with RAG search")
	require.NoError(t, err)

	want := map[string]bool{
		KnowledgeManagement: true,
		Documentation:       true,
		RAGSearch:           true,
	}
	for name, got := range req.Flags() {
		assert.Equal(t, want[name], got, "signal %s", name)
	}

	assert.Empty(t, req.ProjectType)
	assert.Empty(t, req.ProjectScale)
	assert.Empty(t, req.Priorities)
	assert.Equal(t, []string{"knowledge", "management", "system", "documentation", "search"}, req.Keywords)
}

func TestExtractSingleWord(t *testing.T) {
	req, err := (&Extractor{}).Extract("agent")
	require.NoError(t, err)

	detected := req.Detected()
	require.Len(t, detected, 1)
	assert.Equal(t, AgentDevelopment, detected[0].Name)
	assert.Equal(t, []string{"agent"}, req.Keywords)
}

func TestExtractEmptyBrief(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t "} {
		req, err := (&Extractor{}).Extract(in)
		assert.ErrorIs(t, err, ErrEmptyBrief)
		assert.Nil(t, req)
	}
}

func TestProjectTypeFirstMatchWins(t *testing.T) {
	tests := []struct {
		name  string
		brief string
		want  ProjectType
	}{
		{"new beats refactor", "Refactor the legacy service into a new design", NewProject},
		{"existing", "Improve the existing billing code", ExistingProject},
		{"feature addition", "Add export to the billing page", FeatureAddition},
		{"refactor", "Refactor and restructure the billing module", Refactor},
		{"research", "Explore options for a proof of concept", Research},
		{"unclassified", "billing", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := (&Extractor{}).Extract(tt.brief)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.ProjectType)
		})
	}
}

func TestProjectScale(t *testing.T) {
	tests := []struct {
		name  string
		brief string
		want  ProjectScale
	}{
		{"solo wins over team", "A solo side project for my team", Solo},
		{"enterprise needs team", "A team of engineers at a large company", Enterprise},
		{"small team", "Our team builds tools", SmallTeam},
		{"enterprise alone is unclassified", "An enterprise billing platform", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := (&Extractor{}).Extract(tt.brief)
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.ProjectScale)
		})
	}
}

func TestPrioritiesAllOrNothing(t *testing.T) {
	req, err := (&Extractor{}).Extract("This is critical: we need task tracking with python")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		TaskTracking: PriorityHigh,
		Python:       PriorityHigh,
	}, req.Priorities)
	assert.Equal(t, PriorityHigh, req.Priority(TaskTracking))
	assert.Equal(t, PriorityMedium, req.Priority(RAGSearch))

	req, err = (&Extractor{}).Extract("we need task tracking with python")
	require.NoError(t, err)
	assert.Empty(t, req.Priorities)
	assert.Equal(t, PriorityMedium, req.Priority(TaskTracking))
}

func TestKnowledgeImpliesDocumentation(t *testing.T) {
	const text = "knowledge base for the team"

	req, err := NewExtractor(Options{}).Extract(text)
	require.NoError(t, err)
	assert.True(t, req.KnowledgeManagement)
	assert.False(t, req.Documentation)

	req, err = NewExtractor(Options{KnowledgeImpliesDocumentation: true}).Extract(text)
	require.NoError(t, err)
	assert.True(t, req.Documentation)
}

func TestSubstringMatching(t *testing.T) {
	// "storage" contains "rag"
	req, err := (&Extractor{}).Extract("storage layer")
	require.NoError(t, err)
	assert.True(t, req.RAGSearch)
}

func TestExtractDeterministic(t *testing.T) {
	const text = "Critical: new multi-agent platform with python, neo4j and a react UI for our team"
	e := &Extractor{}

	a, err := e.Extract(text)
	require.NoError(t, err)
	b, err := e.Extract(text)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestKeywordsCapAndStopWords(t *testing.T) {
	var words []string
	for i := 0; i < 30; i++ {
		words = append(words, fmt.Sprintf("keyword%02d", i))
	}
	words = append(words, "this", "that", "with", "from", "have", "will", "need", "want", "build", "create")
	text := strings.Join(append(words, words...), " ")

	kws := Keywords(text)
	assert.Len(t, kws, MaxKeywords)
	for _, kw := range kws {
		assert.False(t, IsStopWord(kw), "stop word %q returned", kw)
	}
	assert.Equal(t, "keyword00", kws[0])

	assert.Equal(t, []string{"hello", "world"}, Keywords("Hello, hello WORLD! a an the"))
	assert.Empty(t, Keywords("go is fun"))
}

func TestSignalTable(t *testing.T) {
	all := Signals()
	assert.Len(t, all, 17)

	seen := map[string]bool{}
	var r Requirements
	for _, s := range all {
		assert.False(t, seen[s.Name], "duplicate signal %s", s.Name)
		seen[s.Name] = true
		assert.NotEmpty(t, s.Keywords, s.Name)

		*s.Field(&r) = true
		assert.True(t, r.Has(s.Name))
	}
	assert.Len(t, r.Detected(), 17)

	_, ok := Lookup("nope")
	assert.False(t, ok)
	assert.False(t, r.Has("nope"))
	assert.Equal(t, "RAG Search", Label(RAGSearch))
	assert.Equal(t, "nope", Label("nope"))
}
