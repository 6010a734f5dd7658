package pipeline

import (
	"sync"

	"github.com/matzehuels/pixelforge/pkg/asset"
	"github.com/matzehuels/pixelforge/pkg/errors"
	"github.com/matzehuels/pixelforge/pkg/render"
)

// Store is the write-once table of rendered assets. Each asset is published
// at most once; reads are safe from any goroutine.
type Store struct {
	mu     sync.RWMutex
	images map[asset.ID]*render.Image
	meta   map[asset.ID]render.Metadata
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		images: make(map[asset.ID]*render.Image),
		meta:   make(map[asset.ID]render.Metadata),
	}
}

// Publish records the rendered image of id, with metadata for composites.
// Publishing the same asset twice fails.
func (s *Store) Publish(id asset.ID, img *render.Image, meta *render.Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.images[id]; ok {
		return errors.New(errors.ErrCodeInternal, "%s published twice", id)
	}
	s.images[id] = img
	if meta != nil {
		s.meta[id] = *meta
	}
	return nil
}

// Get returns the rendered image of id.
func (s *Store) Get(id asset.ID) (*render.Image, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[id]
	return img, ok
}

// Metadata returns the placement metadata of a composite.
func (s *Store) Metadata(id asset.ID) (render.Metadata, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.meta[id]
	return m, ok
}

// Len returns the number of published assets.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.images)
}

// Lookup resolves composite legend references the way the registry does:
// a shape first, then a prefab of the same name.
func (s *Store) Lookup(reg *asset.Registry) render.Lookup {
	return func(name string) (*render.Image, bool) {
		id, ok := reg.ResolvePiece(name)
		if !ok {
			return nil, false
		}
		return s.Get(id)
	}
}
