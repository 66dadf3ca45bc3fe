package brief

// ProjectType is the coarse kind of work a brief describes.
// The zero value means the brief did not match any category.
type ProjectType string

const (
	NewProject      ProjectType = "new_project"
	ExistingProject ProjectType = "existing_project"
	FeatureAddition ProjectType = "feature_addition"
	Refactor        ProjectType = "refactor"
	Research        ProjectType = "research"
)

// ProjectScale is the team size a brief implies.
// The zero value means the brief did not mention one.
type ProjectScale string

const (
	Solo       ProjectScale = "solo"
	SmallTeam  ProjectScale = "small_team"
	Enterprise ProjectScale = "enterprise"
)

// Priority tiers.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
)

// Requirements is the structured form of a brief.
type Requirements struct {
	KnowledgeManagement bool
	TaskTracking        bool
	WebCrawling         bool
	RAGSearch           bool
	AgentDevelopment    bool
	ProtocolBased       bool
	MultiService        bool
	MCPServer           bool
	KnowledgeGraph      bool
	Documentation       bool
	Integration         bool

	Python     bool
	TypeScript bool
	React      bool
	FastAPI    bool
	Supabase   bool
	Neo4j      bool

	ProjectType  ProjectType
	ProjectScale ProjectScale

	Keywords   []string
	Priorities map[string]string
}

// Has reports whether the named signal is set. Unknown names are false.
func (r *Requirements) Has(name string) bool {
	s, ok := Lookup(name)
	if !ok {
		return false
	}
	return s.Get(r)
}

// Detected returns the signals that are true, in table order.
func (r *Requirements) Detected() []Signal {
	var out []Signal
	for _, s := range signals {
		if s.Get(r) {
			out = append(out, s)
		}
	}
	return out
}

// Priority returns the tier for a signal; anything not marked high is medium.
func (r *Requirements) Priority(name string) string {
	if p, ok := r.Priorities[name]; ok {
		return p
	}
	return PriorityMedium
}

// Flags returns every boolean signal keyed by name.
func (r *Requirements) Flags() map[string]bool {
	out := make(map[string]bool, len(signals))
	for _, s := range signals {
		out[s.Name] = s.Get(r)
	}
	return out
}
