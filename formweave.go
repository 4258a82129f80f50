package formweave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/formweave/formweave/internal/compiler"
	"github.com/formweave/formweave/internal/logging"
	"github.com/formweave/formweave/internal/metrics"
	"github.com/formweave/formweave/internal/runtime"
	"github.com/formweave/formweave/internal/script"
	"github.com/formweave/formweave/internal/validator"
	"github.com/formweave/formweave/pkg/domain"
	"github.com/formweave/formweave/pkg/nocode"
	"github.com/formweave/formweave/pkg/ports"
)

// Engine is the high-level entry point for the formweave library. It
// wraps the internal runtime and exposes a simplified API: parse or
// load a definition, check it, then validate submissions and generate
// rows against it. An Engine is safe for concurrent use.
type Engine struct {
	runtime     *runtime.Engine
	loader      ports.DefinitionLoader
	logger      *slog.Logger
	collector   *metrics.Collector
	scriptOpts  []script.Option
	runtimeOpts []runtime.EngineOption
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLoader injects a definition loader used by LoadDefinition and
// ListDefinitions. Without one, definitions must be supplied as raw
// documents via ParseDefinition.
func WithLoader(l ports.DefinitionLoader) Option {
	return func(e *Engine) { e.loader = l }
}

// WithMetricsRegistry registers the engine's counters with the given
// Prometheus registerer.
func WithMetricsRegistry(reg prometheus.Registerer) Option {
	return func(e *Engine) { e.collector = metrics.New(reg) }
}

// WithScriptTimeout bounds the wall-clock budget of a single script
// evaluation.
func WithScriptTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.scriptOpts = append(e.scriptOpts, script.WithTimeout(d))
	}
}

// WithScriptCacheSize sizes the compiled-snippet cache.
func WithScriptCacheSize(n int) Option {
	return func(e *Engine) {
		e.scriptOpts = append(e.scriptOpts, script.WithCacheSize(n))
	}
}

// WithTemplateSetCount overrides the fallback instance count used when
// a template render expands a replicating container that sets neither
// minimum nor maximum.
func WithTemplateSetCount(n int) Option {
	return func(e *Engine) {
		e.runtimeOpts = append(e.runtimeOpts, runtime.WithTemplateSetCount(n))
	}
}

// New initializes an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}

	sandbox := script.New(append([]script.Option{
		script.WithLogger(e.logger),
		script.WithMetrics(e.collector),
	}, e.scriptOpts...)...)

	runtimeOpts := append([]runtime.EngineOption{
		runtime.WithLogger(e.logger),
		runtime.WithMetrics(e.collector),
		runtime.WithSandbox(sandbox),
	}, e.runtimeOpts...)

	e.runtime = runtime.NewEngine(runtimeOpts...)
	return e
}

// ParseDefinition parses a JSON or YAML definition document. The
// structural invariants are checked as part of parsing.
func (e *Engine) ParseDefinition(data []byte) (*domain.Element, error) {
	return compiler.Parse(data)
}

// LoadDefinition fetches a definition by name through the configured
// loader and parses it.
func (e *Engine) LoadDefinition(ctx context.Context, name string) (*domain.Element, error) {
	if e.loader == nil {
		return nil, fmt.Errorf("no definition loader configured")
	}
	data, err := e.loader.GetDefinition(ctx, name)
	if err != nil {
		return nil, err
	}
	return e.ParseDefinition(data)
}

// ListDefinitions returns the names known to the configured loader.
func (e *Engine) ListDefinitions(ctx context.Context) ([]string, error) {
	if e.loader == nil {
		return nil, fmt.Errorf("no definition loader configured")
	}
	return e.loader.ListDefinitions(ctx)
}

// CheckDefinition runs every authoring-time check against a parsed
// definition and reports errors and warnings.
func (e *Engine) CheckDefinition(root *domain.Element) *validator.Report {
	return validator.ValidateDefinition(root)
}

// Validate checks a submission against the definition. It returns the
// first failure in document order, or nil when the submission is valid.
// A non-nil error indicates a broken definition (failing patch or
// compute script, malformed operator usage), not a user mistake.
func (e *Engine) Validate(ctx context.Context, root *domain.Element, values map[string]any) (*domain.ValidationFailure, error) {
	return e.runtime.Validate(ctx, root, values)
}

// Rows flattens the definition and a submission into the printable row
// sequence.
func (e *Engine) Rows(ctx context.Context, root *domain.Element, values map[string]any) ([]domain.Row, error) {
	return e.runtime.Rows(ctx, root, values)
}

// TemplateRows renders a blank template of the definition: no values,
// disabled inputs excluded, replicating containers expanded to a
// representative instance count.
func (e *Engine) TemplateRows(ctx context.Context, root *domain.Element) ([]domain.Row, error) {
	return e.runtime.TemplateRows(ctx, root)
}

// Operators returns the catalog of registered no-code operators, sorted
// by package and id.
func (e *Engine) Operators() []*nocode.Operator {
	return nocode.Catalog()
}
