package validate

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/stratum-model/stratum/internal/catalog"
	"github.com/stratum-model/stratum/internal/model"
	"github.com/stratum-model/stratum/internal/refs"
)

// State tracks pipeline progress through its phases.
type State int

const (
	StateIdle State = iota
	StateSchemaPhase
	StateCrossReferencePhase
	StateSemanticPhase
	StateMerged
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSchemaPhase:
		return "schema"
	case StateCrossReferencePhase:
		return "cross-reference"
	case StateSemanticPhase:
		return "semantic"
	case StateMerged:
		return "merged"
	default:
		return "unknown"
	}
}

// SchemaValidator is the external schema-phase hook. Structural validation of
// element attribute trees happens outside this engine; when a hook is
// installed its findings are merged into the report ahead of the
// cross-reference phase.
type SchemaValidator interface {
	ValidateLayer(layer model.Layer, elements []*model.Element) *Result
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithStrict enables strict mode: missing inverse references become errors
// and the semantic phase runs.
func WithStrict(strict bool) Option {
	return func(p *Pipeline) { p.strict = strict }
}

// WithSchemaValidator installs the external schema-phase hook.
func WithSchemaValidator(sv SchemaValidator) Option {
	return func(p *Pipeline) { p.schema = sv }
}

// WithLogger sets the pipeline logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithLayers restricts validation to the given layers. The whole model is
// still indexed, so references from a selected layer into an unselected one
// resolve normally; only the validated element set shrinks.
func WithLayers(layers ...model.Layer) Option {
	return func(p *Pipeline) {
		p.layers = make(map[model.Layer]bool, len(layers))
		for _, layer := range layers {
			p.layers[layer] = true
		}
	}
}

// Pipeline orchestrates the ordered validators over the whole model and
// merges their per-layer results into one report. One malformed element
// never aborts the run: its failure is downgraded to a warning naming the
// element and processing continues.
type Pipeline struct {
	cat    *catalog.Catalog
	index  *refs.Index
	lookup model.Lookup
	strict bool
	schema SchemaValidator
	logger *zap.Logger
	layers map[model.Layer]bool

	state      State
	validators []Validator
	semantic   []Validator
}

// NewPipeline creates a pipeline over a loaded catalog, an index, and the
// element snapshot to validate.
func NewPipeline(cat *catalog.Catalog, index *refs.Index, lookup model.Lookup, opts ...Option) *Pipeline {
	p := &Pipeline{
		cat:    cat,
		index:  index,
		lookup: lookup,
		logger: zap.NewNop(),
		state:  StateIdle,
		validators: []Validator{
			NewTraceabilityValidator(),
			NewPredicateValidator(),
			NewIntegrityValidator(),
		},
		semantic: []Validator{
			NewSemanticValidator(),
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the pipeline's current phase.
func (p *Pipeline) State() State { return p.state }

// includes reports whether a layer is part of the validated set.
func (p *Pipeline) includes(layer model.Layer) bool {
	return p.layers == nil || p.layers[layer]
}

// Run validates the whole model and returns the merged report. The index is
// refreshed from the snapshot first, so the graph reflects current element
// data.
func (p *Pipeline) Run() *Result {
	total := NewResult()
	ctx := &Context{
		Catalog: p.cat,
		Index:   p.index,
		Lookup:  p.lookup,
		Strict:  p.strict,
		Logger:  p.logger,
	}

	p.registerAll(total)

	p.state = StateSchemaPhase
	if p.schema != nil {
		for _, layer := range model.Layers {
			if !p.lookup.HasLayer(layer) || !p.includes(layer) {
				continue
			}
			total.Merge(p.schema.ValidateLayer(layer, p.lookup.List(layer)), string(layer))
		}
	}

	p.state = StateCrossReferencePhase
	p.runPhase(ctx, p.validators, total)

	if p.strict {
		p.state = StateSemanticPhase
		p.runPhase(ctx, p.semantic, total)
		p.reportCycles(ctx, total)
	}

	p.state = StateMerged
	p.logger.Info("validation complete",
		zap.Bool("valid", total.IsValid()),
		zap.Int("errors", total.ErrorCount()),
		zap.Int("warnings", total.WarningCount()))
	return total
}

// registerAll re-extracts every element into the index. Extraction failures
// are isolated per element.
func (p *Pipeline) registerAll(total *Result) {
	for _, layer := range model.Layers {
		if !p.lookup.HasLayer(layer) {
			continue
		}
		for _, e := range p.lookup.List(layer) {
			func() {
				defer p.recoverElement(e, "extraction", total)
				p.index.Register(e)
			}()
		}
	}
}

func (p *Pipeline) runPhase(ctx *Context, validators []Validator, total *Result) {
	for _, layer := range model.Layers {
		if !p.lookup.HasLayer(layer) || !p.includes(layer) {
			continue
		}
		layerResult := NewResult()
		for _, e := range p.lookup.List(layer) {
			for _, v := range validators {
				func() {
					defer p.recoverElement(e, v.Name(), layerResult)
					layerResult.AddAll(v.ValidateElement(ctx, e))
				}()
			}
		}
		total.Merge(layerResult, string(layer))
	}
}

// recoverElement converts a per-element panic into a warning naming the
// offending element so the rest of the model still gets validated.
func (p *Pipeline) recoverElement(e *model.Element, phase string, result *Result) {
	r := recover()
	if r == nil {
		return
	}
	p.logger.Warn("element validation failure",
		zap.String("element", e.ID()),
		zap.String("phase", phase),
		zap.Any("panic", r))
	result.Add(Issue{
		Code:      CodeElementFailure,
		Layer:     e.Layer,
		ElementID: e.ID(),
		Message:   fmt.Sprintf("%s failed for element %s: %v", phase, e.ID(), r),
		Severity:  SeverityWarning,
		Location:  e.Origin.String(),
	})
}

// reportCycles surfaces reference cycles as warnings. A cycle is a finding,
// not automatically an error: peer references inside one layer are often
// legitimate, so the policy stays with the report's consumer.
func (p *Pipeline) reportCycles(ctx *Context, total *Result) {
	for _, cycle := range ctx.Index.Graph().Cycles() {
		total.Add(Issue{
			Code:     CodeCycle,
			Message:  fmt.Sprintf("reference cycle: %s", strings.Join(cycle, " -> ")),
			Severity: SeverityWarning,
		})
	}
}
