package validate

import (
	"go.uber.org/zap"

	"github.com/stratum-model/stratum/internal/catalog"
	"github.com/stratum-model/stratum/internal/model"
	"github.com/stratum-model/stratum/internal/refs"
)

// Context carries the shared, read-only collaborators of a validation run.
type Context struct {
	Catalog *catalog.Catalog
	Index   *refs.Index
	Lookup  model.Lookup
	Strict  bool
	Logger  *zap.Logger
}

// Validator checks one element against the catalog, index, and graph.
// Implementations must not mutate the index.
type Validator interface {
	Name() string
	ValidateElement(ctx *Context, e *model.Element) []Issue
}
