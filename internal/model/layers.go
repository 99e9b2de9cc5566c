package model

import (
	"fmt"
	"strings"
)

// Layer is the canonical (bare) name of an architectural tier.
type Layer string

// The model's ordered tiers, motivation first. Relationship definitions refer
// to these by canonical name; external input may also use the numeric code or
// the "NN-name" composite.
const (
	LayerMotivation  Layer = "motivation"
	LayerBusiness    Layer = "business"
	LayerApplication Layer = "application"
	LayerTechnology  Layer = "technology"
	LayerSchema      Layer = "schema"
	LayerAPI         Layer = "api"
)

// Layers lists all tiers in model order.
var Layers = []Layer{
	LayerMotivation,
	LayerBusiness,
	LayerApplication,
	LayerTechnology,
	LayerSchema,
	LayerAPI,
}

var layerByCode = map[string]Layer{
	"01": LayerMotivation,
	"02": LayerBusiness,
	"03": LayerApplication,
	"04": LayerTechnology,
	"05": LayerSchema,
	"06": LayerAPI,
}

var codeByLayer = func() map[Layer]string {
	m := make(map[Layer]string, len(layerByCode))
	for code, layer := range layerByCode {
		m[layer] = code
	}
	return m
}()

// NormalizeLayer canonicalizes a layer identifier. It accepts the bare name
// ("api"), the numeric code ("06"), or the composite directory form
// ("06-api"), case-insensitively.
func NormalizeLayer(raw string) (Layer, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return "", fmt.Errorf("empty layer identifier")
	}
	if layer, ok := layerByCode[s]; ok {
		return layer, nil
	}
	if code, name, found := strings.Cut(s, "-"); found {
		if layer, ok := layerByCode[code]; ok && string(layer) == name {
			return layer, nil
		}
	}
	for _, layer := range Layers {
		if string(layer) == s {
			return layer, nil
		}
	}
	return "", fmt.Errorf("unknown layer %q", raw)
}

// LayerCode returns the two-digit numeric code for a layer.
func (l Layer) Code() string { return codeByLayer[l] }

// Dir returns the "NN-name" composite used for on-disk layer directories.
func (l Layer) Dir() string { return l.Code() + "-" + string(l) }

// Index returns the layer's position in model order, motivation = 0.
// Unknown layers return -1.
func (l Layer) Index() int {
	for i, layer := range Layers {
		if layer == l {
			return i
		}
	}
	return -1
}

// Known reports whether the layer is one of the model's tiers.
func (l Layer) Known() bool { return l.Index() >= 0 }
