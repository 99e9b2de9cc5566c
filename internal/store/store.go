// Package store is the file-backed element store: one YAML document per
// element, grouped into layer directories named "NN-layer". The store owns
// element lifecycle; the validation engine only sees it through the
// model.Lookup capability.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/stratum-model/stratum/internal/model"
	"github.com/stratum-model/stratum/internal/refs"
)

// Store loads a model directory into memory and keeps the reference index in
// step with element mutations. Not safe for concurrent mutation.
type Store struct {
	dir    string
	index  *refs.Index
	logger *zap.Logger

	elements map[string]*model.Element
	byLayer  map[model.Layer][]*model.Element
}

// Open loads every element under dir and registers each one into the index.
// Files that fail to parse are skipped with a warning; a missing directory is
// an error.
func Open(dir string, index *refs.Index, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		dir:      dir,
		index:    index,
		logger:   logger,
		elements: make(map[string]*model.Element),
		byLayer:  make(map[model.Layer][]*model.Element),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("open model directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		layer, err := model.NormalizeLayer(entry.Name())
		if err != nil {
			logger.Warn("skipping non-layer directory", zap.String("dir", entry.Name()))
			continue
		}
		if err := s.loadLayer(layer, filepath.Join(dir, entry.Name())); err != nil {
			return nil, err
		}
	}

	logger.Info("model loaded", zap.String("dir", dir), zap.Int("elements", len(s.elements)))
	return s, nil
}

func (s *Store) loadLayer(layer model.Layer, layerDir string) error {
	entries, err := os.ReadDir(layerDir)
	if err != nil {
		return fmt.Errorf("read layer %s: %w", layer, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		path := filepath.Join(layerDir, name)
		e, err := s.loadElement(layer, path)
		if err != nil {
			s.logger.Warn("skipping malformed element file", zap.String("file", path), zap.Error(err))
			continue
		}
		s.insert(e)
	}
	return nil
}

// loadElement parses one "<type>.<name>.yaml" file into an element.
func (s *Store) loadElement(layer model.Layer, path string) (*model.Element, error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
	typ, name, found := strings.Cut(base, ".")
	if !found || typ == "" || name == "" {
		return nil, fmt.Errorf("file name %q: want <type>.<name>.yaml", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	e := model.NewElement(layer, typ, name)
	e.Data = model.TreeFromAny(raw)
	e.Origin = model.Origin{File: path}
	return e, nil
}

func (s *Store) insert(e *model.Element) {
	id := e.ID()
	if _, exists := s.elements[id]; !exists {
		s.byLayer[e.Layer] = append(s.byLayer[e.Layer], e)
	} else {
		for i, existing := range s.byLayer[e.Layer] {
			if existing.ID() == id {
				s.byLayer[e.Layer][i] = e
				break
			}
		}
	}
	s.elements[id] = e
	s.index.Register(e)
}

// Get implements model.Lookup.
func (s *Store) Get(id string) (*model.Element, bool) {
	e, ok := s.elements[id]
	return e, ok
}

// List implements model.Lookup. Elements are returned in id order.
func (s *Store) List(layer model.Layer) []*model.Element {
	out := append([]*model.Element(nil), s.byLayer[layer]...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// HasLayer implements model.Lookup.
func (s *Store) HasLayer(layer model.Layer) bool {
	return len(s.byLayer[layer]) > 0
}

// Len returns the number of loaded elements.
func (s *Store) Len() int { return len(s.elements) }

// Put writes an element to disk and re-registers its references.
func (s *Store) Put(e *model.Element) error {
	layerDir := filepath.Join(s.dir, e.Layer.Dir())
	if err := os.MkdirAll(layerDir, 0o755); err != nil {
		return fmt.Errorf("create layer directory: %w", err)
	}
	path := filepath.Join(layerDir, e.Type+"."+e.Name+".yaml")

	body, err := yaml.Marshal(e.Data.ToAny())
	if err != nil {
		return fmt.Errorf("encode element %s: %w", e.ID(), err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("write element %s: %w", e.ID(), err)
	}

	e.Origin = model.Origin{File: path}
	s.insert(e)
	return nil
}

// Delete removes an element. Without cascade, deletion is rejected while
// other elements still reference the target, and neither the store nor the
// index is mutated. With cascade, every incoming reference value is removed
// from its owning element first and the change is written back to disk.
func (s *Store) Delete(id string, cascade bool) error {
	e, ok := s.elements[id]
	if !ok {
		return fmt.Errorf("element %s does not exist", id)
	}

	incoming := s.index.ByTarget(id)
	// Self-references never block deletion.
	filtered := incoming[:0]
	for _, r := range incoming {
		if r.SourceID != id {
			filtered = append(filtered, r)
		}
	}
	incoming = filtered
	if len(incoming) > 0 && !cascade {
		sources := make([]string, 0, len(incoming))
		seen := make(map[string]bool)
		for _, r := range incoming {
			if !seen[r.SourceID] {
				seen[r.SourceID] = true
				sources = append(sources, r.SourceID)
			}
		}
		return fmt.Errorf("cannot delete %s: still referenced by %s (use cascade to remove the references)",
			id, strings.Join(sources, ", "))
	}

	for _, r := range incoming {
		source, ok := s.elements[r.SourceID]
		if !ok {
			continue
		}
		s.dropReferenceValue(source, r)
		if err := s.Put(source); err != nil {
			return fmt.Errorf("cascade from %s: %w", r.SourceID, err)
		}
	}

	if err := os.Remove(e.Origin.File); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete element %s: %w", id, err)
	}

	delete(s.elements, id)
	kept := s.byLayer[e.Layer][:0]
	for _, existing := range s.byLayer[e.Layer] {
		if existing.ID() != id {
			kept = append(kept, existing)
		}
	}
	s.byLayer[e.Layer] = kept
	s.index.Remove(id)
	return nil
}

// dropReferenceValue removes one reference value from an element's data: a
// scalar field is deleted, a matching array entry is filtered out.
func (s *Store) dropReferenceValue(e *model.Element, r refs.Reference) {
	value, ok := e.Data.Get(r.FieldPath)
	if !ok {
		return
	}
	switch value.Kind() {
	case model.KindString:
		if value.Str() == r.TargetID {
			e.Data.Delete(r.FieldPath)
		}
	case model.KindList:
		var kept []model.Value
		for _, item := range value.Items() {
			if item.Kind() == model.KindString && item.Str() == r.TargetID {
				continue
			}
			kept = append(kept, item)
		}
		if len(kept) == 0 {
			e.Data.Delete(r.FieldPath)
			return
		}
		// The path just resolved through Get, so Set cannot fail on it.
		_ = e.Data.Set(r.FieldPath, model.List(kept...))
	}
}
