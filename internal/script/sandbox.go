// Package script evaluates author-supplied snippets in isolation.
//
// The snippet language is expression-only: there is no IO, no thread or
// process creation, no host class lookup and no mutable global state.
// Host data is exposed as plain deep-converted values under a fixed set
// of names (inputValues, computedValues, visibilities, errors,
// overrides, element, combinedValues). A snippet's outcome is coerced
// to the JSON value model; anything non-representable becomes null.
package script

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/formweave/formweave/internal/logging"
	"github.com/formweave/formweave/internal/metrics"
)

// DefaultTimeout bounds a single snippet evaluation. Snippets are
// authored by non-engineers and must not be able to hang a worker.
const DefaultTimeout = 250 * time.Millisecond

// DefaultCacheSize is the number of compiled programs kept per sandbox.
const DefaultCacheSize = 512

// Host names exposed to every snippet.
const (
	HostInputValues    = "inputValues"
	HostComputedValues = "computedValues"
	HostVisibilities   = "visibilities"
	HostErrors         = "errors"
	HostOverrides      = "overrides"
	HostElement        = "element"

	// HostValues must not shadow an expr builtin ("values" is one); the
	// compiler would bind the builtin and every read of the combined
	// answer set would fail.
	HostValues = "combinedValues"
)

// HostObjects is the data graph a snippet may read. Everything is
// deep-converted before injection; no host method is reachable.
type HostObjects struct {
	InputValues    map[string]any
	ComputedValues map[string]any
	Visibilities   map[string]bool
	Errors         map[string]string
	Overrides      map[string]any
	Element        map[string]any

	// Values is the combined effective answer set (computed overlaid
	// by input). Explicit references ($id) read from it.
	Values map[string]any
}

// Sandbox compiles and runs snippets. The compiled-program cache is
// safe to share: programs are immutable and each Evaluate call runs
// with its own VM state. A Sandbox itself holds no per-run state.
type Sandbox struct {
	cache   *lru.Cache[string, *vm.Program]
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.Collector
}

// Option configures a Sandbox.
type Option func(*Sandbox)

// WithTimeout sets the wall-clock budget per evaluation.
func WithTimeout(d time.Duration) Option {
	return func(s *Sandbox) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithCacheSize sets the compiled-program cache capacity.
func WithCacheSize(n int) Option {
	return func(s *Sandbox) {
		if n > 0 {
			cache, err := lru.New[string, *vm.Program](n)
			if err == nil {
				s.cache = cache
			}
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sandbox) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the metrics collector (nil is a no-op collector).
func WithMetrics(m *metrics.Collector) Option {
	return func(s *Sandbox) { s.metrics = m }
}

// New creates a Sandbox.
func New(opts ...Option) *Sandbox {
	cache, _ := lru.New[string, *vm.Program](DefaultCacheSize)
	s := &Sandbox{
		cache:   cache,
		timeout: DefaultTimeout,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// referenceMarker is the distinguished prefix that lets a snippet name
// a resolved id it reads, e.g. `$applicant_name == "Doe"`. Static
// analysis uses the same marker to know when re-evaluation is needed.
var referenceMarker = regexp.MustCompile(`\$([A-Za-z][A-Za-z0-9_]*)`)

// References returns the resolved ids a snippet declares via the $
// marker, in order of first appearance.
func References(snippet string) []string {
	var refs []string
	seen := map[string]bool{}
	for _, m := range referenceMarker.FindAllStringSubmatch(snippet, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			refs = append(refs, m[1])
		}
	}
	return refs
}

// rewrite expands the $id marker syntax into lookups on the combined
// value map, so `$income > 1000` reads combinedValues["income"].
func rewrite(snippet string) string {
	return referenceMarker.ReplaceAllString(snippet, HostValues+`["$1"]`)
}

// Evaluate runs one snippet against the given host objects and returns
// its value coerced to the JSON model (nil, bool, string, float64,
// []any, map[string]any). A syntax or runtime error fails only this
// evaluation; the caller decides how to degrade.
func (s *Sandbox) Evaluate(ctx context.Context, snippet string, host HostObjects) (any, error) {
	s.metrics.ScriptEvaluation()

	program, err := s.compile(snippet)
	if err != nil {
		s.metrics.ScriptFailure()
		return nil, fmt.Errorf("compile: %w", err)
	}

	env := map[string]any{
		HostInputValues:    Convert(host.InputValues),
		HostComputedValues: Convert(host.ComputedValues),
		HostVisibilities:   convertBoolMap(host.Visibilities),
		HostErrors:         convertStringMap(host.Errors),
		HostOverrides:      Convert(host.Overrides),
		HostElement:        Convert(host.Element),
		HostValues:         Convert(host.Values),
	}

	out, err := s.run(ctx, program, env)
	if err != nil {
		s.metrics.ScriptFailure()
		s.logger.Debug("script evaluation failed", "err", err)
		return nil, err
	}
	return normalize(out), nil
}

func (s *Sandbox) compile(snippet string) (*vm.Program, error) {
	src := rewrite(snippet)
	if program, ok := s.cache.Get(src); ok {
		return program, nil
	}
	program, err := expr.Compile(src,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, err
	}
	s.cache.Add(src, program)
	return program, nil
}

// run executes the program with a wall-clock budget and cooperative
// request cancellation. The VM cannot be killed mid-flight, but the
// expression language has no unbounded loops, so an abandoned run
// terminates on its own shortly after.
func (s *Sandbox) run(ctx context.Context, program *vm.Program, env map[string]any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type outcome struct {
		value any
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		value, err := expr.Run(program, env)
		done <- outcome{value: value, err: err}
	}()

	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case o := <-done:
		return o.value, o.err
	case <-timer.C:
		return nil, fmt.Errorf("script exceeded %s budget", s.timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Convert deep-converts an arbitrary value graph into plain JSON-model
// data (maps, slices, primitives). Structs and other host types go
// through a JSON round-trip; anything that cannot be represented
// becomes nil.
func Convert(v any) any {
	return normalize(v)
}

func normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case bool, string, float64:
		return x
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil
		}
		return f
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = normalize(e)
		}
		return out
	case []string:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = normalize(e)
		}
		return out
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		var plain any
		if err := json.Unmarshal(b, &plain); err != nil {
			return nil
		}
		return plain
	}
}

func convertBoolMap(m map[string]bool) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func convertStringMap(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
