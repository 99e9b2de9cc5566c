package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratum-model/stratum/internal/catalog"
	"github.com/stratum-model/stratum/internal/model"
	"github.com/stratum-model/stratum/internal/refs"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func modelDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "02-business"), "service.billing.yaml",
		"description: billing service\nrealized-by: application.service.billing-api\n")
	writeFile(t, filepath.Join(dir, "03-application"), "service.billing-api.yaml",
		"realizes: business.service.billing\n")
	return dir
}

func openStore(t *testing.T, dir string) (*Store, *refs.Index) {
	t.Helper()
	cat, err := catalog.LoadDefault(nil)
	require.NoError(t, err)
	index := refs.NewIndex(refs.NewExtractor(cat))
	s, err := Open(dir, index, nil)
	require.NoError(t, err)
	return s, index
}

func TestOpenLoadsAndIndexes(t *testing.T) {
	s, index := openStore(t, modelDir(t))
	assert.Equal(t, 2, s.Len())

	e, ok := s.Get("business.service.billing")
	require.True(t, ok)
	assert.Equal(t, model.LayerBusiness, e.Layer)
	v, ok := e.Data.Get("description")
	require.True(t, ok)
	assert.Equal(t, "billing service", v.Str())

	assert.True(t, s.HasLayer(model.LayerBusiness))
	assert.False(t, s.HasLayer(model.LayerTechnology))
	assert.Len(t, s.List(model.LayerApplication), 1)

	// Loading registered the references.
	assert.Len(t, index.ByTarget("business.service.billing"), 1)
}

func TestOpenSkipsMalformedFiles(t *testing.T) {
	dir := modelDir(t)
	writeFile(t, filepath.Join(dir, "02-business"), "noseparator.yaml", "x: 1\n")
	writeFile(t, filepath.Join(dir, "02-business"), "service.broken.yaml", "::: not yaml {{{\n")

	s, _ := openStore(t, dir)
	assert.Equal(t, 2, s.Len())
}

func TestOpenMissingDirectoryFails(t *testing.T) {
	cat, err := catalog.LoadDefault(nil)
	require.NoError(t, err)
	index := refs.NewIndex(refs.NewExtractor(cat))

	_, err = Open(filepath.Join(t.TempDir(), "nope"), index, nil)
	assert.Error(t, err)
}

func TestPutWritesAndRegisters(t *testing.T) {
	dir := modelDir(t)
	s, index := openStore(t, dir)

	e := model.NewElement(model.LayerMotivation, "goal", "grow")
	require.NoError(t, e.Update("description", model.String("grow the base")))
	require.NoError(t, e.Update("supported-by", model.List(model.String("business.service.billing"))))
	require.NoError(t, s.Put(e))

	assert.FileExists(t, filepath.Join(dir, "01-motivation", "goal.grow.yaml"))
	assert.True(t, s.HasLayer(model.LayerMotivation))
	assert.Len(t, index.BySource("motivation.goal.grow"), 1)

	// Re-open sees the same element.
	s2, _ := openStore(t, dir)
	_, ok := s2.Get("motivation.goal.grow")
	assert.True(t, ok)
}

func TestDeleteRejectedWithoutCascade(t *testing.T) {
	s, index := openStore(t, modelDir(t))

	err := s.Delete("business.service.billing", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "application.service.billing-api")

	// Atomic rejection: neither the store nor the index changed.
	_, ok := s.Get("business.service.billing")
	assert.True(t, ok)
	assert.Len(t, index.ByTarget("business.service.billing"), 1)
}

func TestDeleteWithCascade(t *testing.T) {
	dir := modelDir(t)
	s, index := openStore(t, dir)

	require.NoError(t, s.Delete("business.service.billing", true))

	_, ok := s.Get("business.service.billing")
	assert.False(t, ok)
	assert.NoFileExists(t, filepath.Join(dir, "02-business", "service.billing.yaml"))
	assert.Empty(t, index.ByTarget("business.service.billing"))

	// The referencing element lost its reference value on disk too.
	api, ok := s.Get("application.service.billing-api")
	require.True(t, ok)
	_, ok = api.Data.Get("realizes")
	assert.False(t, ok)
}

func TestDeleteUnreferencedElement(t *testing.T) {
	s, _ := openStore(t, modelDir(t))

	// The application service has no incoming references.
	require.NoError(t, s.Delete("application.service.billing-api", false))
	_, ok := s.Get("application.service.billing-api")
	assert.False(t, ok)
	assert.Empty(t, s.List(model.LayerApplication))
}

func TestDeleteMissingElement(t *testing.T) {
	s, _ := openStore(t, modelDir(t))
	assert.Error(t, s.Delete("schema.entity.ghost", false))
}
