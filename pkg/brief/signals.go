package brief

// Kind separates the core requirement signals from technology affinities.
type Kind string

const (
	KindCore Kind = "core"
	KindTech Kind = "tech"
)

// Signal names. These are the keys used by the capability catalog and the
// JSON report, so they must stay stable.
const (
	KnowledgeManagement = "knowledge_management"
	TaskTracking        = "task_tracking"
	WebCrawling         = "web_crawling"
	RAGSearch           = "rag_search"
	AgentDevelopment    = "agent_development"
	ProtocolBased       = "protocol_based"
	MultiService        = "multi_service"
	MCPServer           = "mcp_server"
	KnowledgeGraph      = "knowledge_graph"
	Documentation       = "documentation"
	Integration         = "integration"

	Python     = "python"
	TypeScript = "typescript"
	React      = "react"
	FastAPI    = "fastapi"
	Supabase   = "supabase"
	Neo4j      = "neo4j"
)

// Signal describes one boolean requirement flag: how it is detected and
// where it lives on Requirements.
type Signal struct {
	Name     string
	Label    string
	Kind     Kind
	Keywords []string
	Field    func(*Requirements) *bool
}

// Get reports the signal's value on r.
func (s Signal) Get(r *Requirements) bool {
	return *s.Field(r)
}

var signals = []Signal{
	{
		Name:  KnowledgeManagement,
		Label: "Knowledge Management",
		Kind:  KindCore,
		Keywords: []string{
			"knowledge", "documentation", "docs", "knowledge base",
			"document management", "content management", "knowledge system",
		},
		Field: func(r *Requirements) *bool { return &r.KnowledgeManagement },
	},
	{
		Name:  TaskTracking,
		Label: "Task Tracking",
		Kind:  KindCore,
		Keywords: []string{
			"task", "project management", "tracking", "todo",
			"workflow management", "kanban", "board", "task management",
		},
		Field: func(r *Requirements) *bool { return &r.TaskTracking },
	},
	{
		Name:  WebCrawling,
		Label: "Web Crawling",
		Kind:  KindCore,
		Keywords: []string{
			"crawl", "scrape", "web scraping", "web crawling",
			"website", "documentation site", "crawler",
		},
		Field: func(r *Requirements) *bool { return &r.WebCrawling },
	},
	{
		Name:  RAGSearch,
		Label: "RAG Search",
		Kind:  KindCore,
		Keywords: []string{
			"rag", "retrieval", "semantic search", "search",
			"embedding", "vector", "similarity search", "rag search",
		},
		Field: func(r *Requirements) *bool { return &r.RAGSearch },
	},
	{
		Name:  AgentDevelopment,
		Label: "Agent Development",
		Kind:  KindCore,
		Keywords: []string{
			"agent", "ai agent", "pydantic ai", "automation",
			"intelligent agent", "assistant agent", "agent system",
		},
		Field: func(r *Requirements) *bool { return &r.AgentDevelopment },
	},
	{
		Name:  ProtocolBased,
		Label: "Protocol Based",
		Kind:  KindCore,
		Keywords: []string{
			"protocol", "template", "workflow", "process",
			"structured", "validation", "quality gate", "governance",
		},
		Field: func(r *Requirements) *bool { return &r.ProtocolBased },
	},
	{
		Name:  MultiService,
		Label: "Multi Service",
		Kind:  KindCore,
		Keywords: []string{
			"multi", "microservice", "service", "distributed",
			"multiple services", "architecture", "microservices",
		},
		Field: func(r *Requirements) *bool { return &r.MultiService },
	},
	{
		Name:     MCPServer,
		Label:    "MCP Server",
		Kind:     KindCore,
		Keywords: []string{"mcp", "model context protocol", "context protocol"},
		Field:    func(r *Requirements) *bool { return &r.MCPServer },
	},
	{
		Name:  KnowledgeGraph,
		Label: "Knowledge Graph",
		Kind:  KindCore,
		Keywords: []string{
			"knowledge graph", "neo4j", "graph database",
			"graph", "relationship", "node", "graph db",
		},
		Field: func(r *Requirements) *bool { return &r.KnowledgeGraph },
	},
	{
		Name:     Documentation,
		Label:    "Documentation",
		Kind:     KindCore,
		Keywords: []string{"documentation", "docs", "document", "readme"},
		Field:    func(r *Requirements) *bool { return &r.Documentation },
	},
	{
		Name:  Integration,
		Label: "Integration",
		Kind:  KindCore,
		Keywords: []string{
			"integrate", "integration", "airtable", "github",
			"slack", "api integration", "third party", "external service",
		},
		Field: func(r *Requirements) *bool { return &r.Integration },
	},

	{
		Name:     Python,
		Label:    "Python",
		Kind:     KindTech,
		Keywords: []string{"python", "python3", "py"},
		Field:    func(r *Requirements) *bool { return &r.Python },
	},
	{
		Name:     TypeScript,
		Label:    "TypeScript",
		Kind:     KindTech,
		Keywords: []string{"typescript", "ts", "tsx"},
		Field:    func(r *Requirements) *bool { return &r.TypeScript },
	},
	{
		Name:     React,
		Label:    "React",
		Kind:     KindTech,
		Keywords: []string{"react", "reactjs", "react.js"},
		Field:    func(r *Requirements) *bool { return &r.React },
	},
	{
		Name:     FastAPI,
		Label:    "FastAPI",
		Kind:     KindTech,
		Keywords: []string{"fastapi", "fast api"},
		Field:    func(r *Requirements) *bool { return &r.FastAPI },
	},
	{
		Name:     Supabase,
		Label:    "Supabase",
		Kind:     KindTech,
		Keywords: []string{"supabase"},
		Field:    func(r *Requirements) *bool { return &r.Supabase },
	},
	{
		Name:     Neo4j,
		Label:    "Neo4j",
		Kind:     KindTech,
		Keywords: []string{"neo4j", "neo 4j"},
		Field:    func(r *Requirements) *bool { return &r.Neo4j },
	},
}

var signalIndex = func() map[string]Signal {
	m := make(map[string]Signal, len(signals))
	for _, s := range signals {
		m[s.Name] = s
	}
	return m
}()

// Signals returns every known signal, core signals first, in declaration order.
func Signals() []Signal {
	out := make([]Signal, len(signals))
	copy(out, signals)
	return out
}

// Lookup finds a signal by name.
func Lookup(name string) (Signal, bool) {
	s, ok := signalIndex[name]
	return s, ok
}

// Label returns the display label for a signal name, or the name itself.
func Label(name string) string {
	if s, ok := signalIndex[name]; ok {
		return s.Label
	}
	return name
}
