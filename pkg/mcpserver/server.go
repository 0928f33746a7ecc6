// Package mcpserver exposes the orchestrator and validators to agents over
// the Model Context Protocol. Tool calls always complete successfully;
// semantic failure travels inside the decision payload, mirroring the
// advisory-only convention of the rest of the system.
package mcpserver

import (
	"context"
	"log"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/specflow-ai/specflow/pkg/telemetry"
	"github.com/specflow-ai/specflow/pkg/validate"
	"github.com/specflow-ai/specflow/pkg/workflow"
)

// Options configures the server paths.
type Options struct {
	RulesPath   string
	ContextPath string
	// Watch enables hot reload of the rules and context files while serving.
	Watch bool
}

// Server serves the workflow_decision and validate_project tools.
type Server struct {
	opts Options

	mu    sync.RWMutex
	rules workflow.Rules
	ctx   workflow.Context

	watcher *workflow.Watcher
}

// New builds a server. Paths default to the well-known project locations.
func New(opts Options) *Server {
	if opts.RulesPath == "" {
		opts.RulesPath = workflow.DefaultRulesPath
	}
	if opts.ContextPath == "" {
		opts.ContextPath = workflow.DefaultContextPath
	}
	return &Server{opts: opts}
}

// DecisionInput is the workflow_decision tool request.
type DecisionInput struct {
	Workflow string `json:"workflow" jsonschema:"the workflow step to evaluate"`
}

// DecisionOutput wraps the decision document.
type DecisionOutput struct {
	Decision workflow.Decision `json:"decision"`
}

// ValidateInput is the validate_project tool request.
type ValidateInput struct {
	Path   string   `json:"path,omitempty" jsonschema:"project root to validate, defaults to the working directory"`
	Checks []string `json:"checks,omitempty" jsonschema:"subset of checks to run, defaults to all"`
}

// ValidateOutput lists the advisory findings.
type ValidateOutput struct {
	Results []validate.Result `json:"results"`
}

// Run starts watching (when enabled) and serves MCP over the transport until
// the context is cancelled.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	if err := s.load(); err != nil {
		return err
	}
	defer s.closeWatcher()

	impl := &mcp.Implementation{Name: "specflow", Version: "2.0.0"}
	server := mcp.NewServer(impl, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "workflow_decision",
		Description: "Evaluate whether a workflow step may run and what should run next. Advisory: the result never blocks.",
	}, s.handleDecision)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_project",
		Description: "Run the advisory structure, naming and frontmatter checks against a project.",
	}, s.handleValidate)

	log.Printf("mcpserver: serving (rules=%s context=%s)", s.opts.RulesPath, s.opts.ContextPath)
	return server.Run(ctx, transport)
}

// load performs the initial read, optionally via the hot reloader.
func (s *Server) load() error {
	if !s.opts.Watch {
		s.setState(workflow.LoadOrBootstrap(s.opts.RulesPath), workflow.LoadContext(s.opts.ContextPath))
		return nil
	}

	w, err := workflow.NewWatcher(s.opts.RulesPath, s.opts.ContextPath,
		workflow.OnChange(func(rules workflow.Rules, ctx workflow.Context) {
			s.setState(rules, ctx)
		}),
		workflow.OnError(func(err error) {
			log.Printf("mcpserver: watch: %v", err)
		}),
	)
	if err != nil {
		return err
	}
	s.watcher = w
	if _, _, err := w.Start(); err != nil {
		return err
	}
	return nil
}

func (s *Server) closeWatcher() {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			log.Printf("mcpserver: close watcher: %v", err)
		}
		s.watcher = nil
	}
}

func (s *Server) setState(rules workflow.Rules, ctx workflow.Context) {
	s.mu.Lock()
	s.rules = rules
	s.ctx = ctx
	s.mu.Unlock()
}

func (s *Server) snapshot() (workflow.Rules, workflow.Context) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules, s.ctx
}

func (s *Server) handleDecision(ctx context.Context, _ *mcp.CallToolRequest, in DecisionInput) (*mcp.CallToolResult, DecisionOutput, error) {
	_, span := telemetry.Tracer().Start(ctx, "workflow.decide")
	defer span.End()
	span.SetAttributes(attribute.String("workflow.name", in.Workflow))

	rules, wctx := s.snapshot()
	decision := workflow.Decide(in.Workflow, rules, wctx)
	span.SetAttributes(attribute.Bool("workflow.can_proceed", decision.CanProceed))

	return nil, DecisionOutput{Decision: decision}, nil
}

func (s *Server) handleValidate(ctx context.Context, _ *mcp.CallToolRequest, in ValidateInput) (*mcp.CallToolResult, ValidateOutput, error) {
	_, span := telemetry.Tracer().Start(ctx, "validate.run")
	defer span.End()

	target := in.Path
	if target == "" {
		target = "."
	}

	var results []validate.Result
	if len(in.Checks) == 0 {
		results = validate.RunAll(target)
	} else {
		for _, check := range in.Checks {
			results = append(results, validate.Run(check, target))
		}
	}
	return nil, ValidateOutput{Results: results}, nil
}
