package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/stratum-model/stratum/internal/model"
)

//go:embed defaults.yaml
var defaultCatalog []byte

// document is the on-disk shape of a definition set.
type document struct {
	Version      int            `yaml:"version"`
	Links        []linkRecord   `yaml:"links"`
	Traceability []traceRecord  `yaml:"traceability"`
}

type linkRecord struct {
	ID           string   `yaml:"id"`
	Predicate    string   `yaml:"predicate"`
	Inverse      string   `yaml:"inverse"`
	Category     string   `yaml:"category"`
	SourceLayers []string `yaml:"source_layers"`
	TargetLayer  string   `yaml:"target_layer"`
	TargetTypes  []string `yaml:"target_types"`
	FieldPaths   []string `yaml:"field_paths"`
	Cardinality  string   `yaml:"cardinality"`
	Multiplicity string   `yaml:"multiplicity"`
	ValueFormat  string   `yaml:"value_format"`
	Pattern      string   `yaml:"pattern"`
	Description  string   `yaml:"description"`
	Examples     []string `yaml:"examples"`
}

type traceRecord struct {
	Element     string   `yaml:"element"`
	Strength    string   `yaml:"strength"`
	Predicates  []string `yaml:"predicates"`
	TargetLayer string   `yaml:"target_layer"`
	TargetTypes []string `yaml:"target_types"`
	Field       string   `yaml:"field"`
}

// LoadDefault loads the embedded definition set.
func LoadDefault(logger *zap.Logger) (*Catalog, error) {
	return Load(defaultCatalog, logger)
}

// LoadFile loads a definition set from a YAML file.
func LoadFile(path string, logger *zap.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Load(data, logger)
}

// Load parses a definition set. A document that cannot be parsed, or that
// yields no usable link types, is a fatal error: no validation can run
// without the catalog. Individual malformed records are skipped with a
// warning so one bad entry does not take down an otherwise valid set.
func Load(data []byte, logger *zap.Logger) (*Catalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(doc.Links) == 0 {
		return nil, fmt.Errorf("catalog defines no link types")
	}

	c := newCatalog(doc.Version)
	for i, rec := range doc.Links {
		lt, err := buildLinkType(rec)
		if err != nil {
			msg := fmt.Sprintf("skipping link record %d (%s): %v", i, rec.ID, err)
			c.warnings = append(c.warnings, msg)
			logger.Warn("malformed link record", zap.Int("index", i), zap.String("id", rec.ID), zap.Error(err))
			continue
		}
		if err := c.add(lt); err != nil {
			msg := fmt.Sprintf("skipping link record %d (%s): %v", i, rec.ID, err)
			c.warnings = append(c.warnings, msg)
			logger.Warn("conflicting link record", zap.Int("index", i), zap.String("id", rec.ID), zap.Error(err))
		}
	}
	if len(c.types) == 0 {
		return nil, fmt.Errorf("catalog defines no usable link types (%d malformed)", len(doc.Links))
	}

	for i, rec := range doc.Traceability {
		rule, err := buildTraceRule(rec)
		if err != nil {
			msg := fmt.Sprintf("skipping traceability record %d (%s): %v", i, rec.Element, err)
			c.warnings = append(c.warnings, msg)
			logger.Warn("malformed traceability record", zap.Int("index", i), zap.String("element", rec.Element), zap.Error(err))
			continue
		}
		c.rules[rule.ElementType] = append(c.rules[rule.ElementType], rule)
	}

	logger.Info("catalog loaded",
		zap.Int("version", c.version),
		zap.Int("link_types", len(c.types)),
		zap.Int("traceability_rules", len(doc.Traceability)),
		zap.Int("warnings", len(c.warnings)))
	return c, nil
}

func buildLinkType(rec linkRecord) (*LinkType, error) {
	if rec.ID == "" {
		return nil, fmt.Errorf("missing id")
	}
	if rec.Predicate == "" {
		return nil, fmt.Errorf("missing predicate")
	}
	if len(rec.FieldPaths) == 0 {
		return nil, fmt.Errorf("missing field_paths")
	}

	var cardinality Cardinality
	switch Cardinality(rec.Cardinality) {
	case CardinalitySingle, CardinalityArray:
		cardinality = Cardinality(rec.Cardinality)
	default:
		return nil, fmt.Errorf("invalid cardinality %q", rec.Cardinality)
	}

	multiplicity := Multiplicity(rec.Multiplicity)
	switch multiplicity {
	case OneToOne, OneToMany, ManyToMany:
	case "":
		multiplicity = ManyToMany
	default:
		return nil, fmt.Errorf("invalid multiplicity %q", rec.Multiplicity)
	}

	if len(rec.SourceLayers) == 0 {
		return nil, fmt.Errorf("missing source_layers")
	}
	sourceLayers := make([]model.Layer, 0, len(rec.SourceLayers))
	for _, raw := range rec.SourceLayers {
		layer, err := model.NormalizeLayer(raw)
		if err != nil {
			return nil, fmt.Errorf("source layer: %w", err)
		}
		sourceLayers = append(sourceLayers, layer)
	}
	targetLayer, err := model.NormalizeLayer(rec.TargetLayer)
	if err != nil {
		return nil, fmt.Errorf("target layer: %w", err)
	}

	var pattern *regexp.Regexp
	if rec.Pattern != "" {
		pattern, err = regexp.Compile(rec.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
	}

	format := rec.ValueFormat
	if format == "" {
		format = "string"
	}

	return &LinkType{
		ID:           rec.ID,
		Predicate:    rec.Predicate,
		Inverse:      rec.Inverse,
		Category:     rec.Category,
		SourceLayers: sourceLayers,
		TargetLayer:  targetLayer,
		TargetTypes:  rec.TargetTypes,
		FieldPaths:   rec.FieldPaths,
		Cardinality:  cardinality,
		Multiplicity: multiplicity,
		ValueFormat:  format,
		Pattern:      pattern,
		Description:  rec.Description,
		Examples:     rec.Examples,
	}, nil
}

func buildTraceRule(rec traceRecord) (TraceabilityRule, error) {
	if rec.Element == "" {
		return TraceabilityRule{}, fmt.Errorf("missing element type")
	}
	if len(rec.Predicates) == 0 {
		return TraceabilityRule{}, fmt.Errorf("missing predicates")
	}

	var strength Strength
	switch Strength(rec.Strength) {
	case Must, Should:
		strength = Strength(rec.Strength)
	default:
		return TraceabilityRule{}, fmt.Errorf("invalid strength %q", rec.Strength)
	}

	var targetLayer model.Layer
	if rec.TargetLayer != "" {
		layer, err := model.NormalizeLayer(rec.TargetLayer)
		if err != nil {
			return TraceabilityRule{}, fmt.Errorf("target layer: %w", err)
		}
		targetLayer = layer
	}

	field := rec.Field
	if field == "" {
		field = rec.Predicates[0]
	}

	return TraceabilityRule{
		ElementType: rec.Element,
		Strength:    strength,
		Predicates:  rec.Predicates,
		TargetLayer: targetLayer,
		TargetTypes: rec.TargetTypes,
		Field:       field,
	}, nil
}
