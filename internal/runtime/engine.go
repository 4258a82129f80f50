// Package runtime implements the derivation engine: the per-run
// context, condition evaluation, the validation walk and the row
// generation walk. Every top-level operation is a single synchronous
// depth-first traversal; concurrent operations each get their own
// DerivationContext, while the element tree and the sandbox's compiled
// program cache are shared read-only.
package runtime

import (
	"context"
	"log/slog"

	"github.com/formweave/formweave/internal/logging"
	"github.com/formweave/formweave/internal/metrics"
	"github.com/formweave/formweave/internal/script"
	"github.com/formweave/formweave/pkg/domain"
)

// DefaultTemplateSetCount is the number of replicating-container
// instances expanded in a template render when the definition sets
// neither minimum nor maximum.
const DefaultTemplateSetCount = 5

// Engine evaluates element trees. It is safe for concurrent use; all
// per-run state lives in the DerivationContext created per call.
type Engine struct {
	sandbox          *script.Sandbox
	logger           *slog.Logger
	metrics          *metrics.Collector
	templateSetCount int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *metrics.Collector) EngineOption {
	return func(e *Engine) { e.metrics = m }
}

// WithSandbox injects a pre-configured script sandbox.
func WithSandbox(s *script.Sandbox) EngineOption {
	return func(e *Engine) {
		if s != nil {
			e.sandbox = s
		}
	}
}

// WithTemplateSetCount overrides the fallback instance count for
// template renders.
func WithTemplateSetCount(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.templateSetCount = n
		}
	}
}

// NewEngine creates an Engine with defaults: discard logger, no
// metrics, a fresh sandbox.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger:           logging.NewNop(),
		templateSetCount: DefaultTemplateSetCount,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sandbox == nil {
		e.sandbox = script.New(script.WithLogger(e.logger), script.WithMetrics(e.metrics))
	}
	return e
}

// Validate walks the tree depth-first, left-to-right against the given
// input values. It returns the first failure, or nil when the
// submission is valid. A non-nil error means the traversal itself
// failed (broken patch/compute script, malformed operator usage) and
// must be treated as an internal error, not a user-facing one.
func (e *Engine) Validate(ctx context.Context, root *domain.Element, input map[string]any) (*domain.ValidationFailure, error) {
	e.metrics.ValidationRun()
	r := e.newRun(root, input, false)
	failure, err := r.validateElement(ctx, root, "")
	if err != nil {
		return nil, err
	}
	if failure != nil {
		e.metrics.ValidationFailure()
		r.logger.Info("validation failed", "element_id", failure.ElementID, "message", failure.Message)
	}
	return failure, nil
}

// Rows flattens the tree into the printable row sequence against the
// given input values (data mode).
func (e *Engine) Rows(ctx context.Context, root *domain.Element, input map[string]any) ([]domain.Row, error) {
	e.metrics.RowGeneration()
	r := e.newRun(root, input, false)
	return r.rowsFor(ctx, root, "")
}

// TemplateRows renders a blank template: no live input values, disabled
// inputs excluded, replication expanded by the configured heuristic.
func (e *Engine) TemplateRows(ctx context.Context, root *domain.Element) ([]domain.Row, error) {
	e.metrics.RowGeneration()
	r := e.newRun(root, nil, true)
	return r.rowsFor(ctx, root, "")
}

// run bundles the per-traversal state.
type run struct {
	engine   *Engine
	root     *domain.Element
	dctx     *DerivationContext
	template bool
	logger   *slog.Logger
}

func (e *Engine) newRun(root *domain.Element, input map[string]any, template bool) *run {
	dctx := NewDerivationContext(input)
	return &run{
		engine:   e,
		root:     root,
		dctx:     dctx,
		template: template,
		logger:   e.logger.With("run_id", dctx.RunID),
	}
}
