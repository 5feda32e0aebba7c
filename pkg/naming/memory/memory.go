// Package memory implements an in-memory naming service. Bindings are lost
// on restart; it is the default backend and the one used in tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/marmos91/resourced/pkg/naming"
)

// MemoryNamingService keeps bindings in a mutex-guarded map.
type MemoryNamingService struct {
	mu       sync.RWMutex
	bindings map[string]naming.Entry
}

// New creates an empty in-memory naming service.
func New() *MemoryNamingService {
	return &MemoryNamingService{bindings: make(map[string]naming.Entry)}
}

// Publish implements naming.Service.
func (s *MemoryNamingService) Publish(ctx context.Context, info naming.ResourceInfo, payload any, rebind bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := naming.EncodePayload(payload)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := info.Key()
	if _, bound := s.bindings[key]; bound && !rebind {
		return naming.ErrAlreadyBound
	}
	s.bindings[key] = naming.Entry{
		ResourceInfo: info,
		Payload:      data,
		PublishedAt:  time.Now().UTC(),
	}
	return nil
}

// Unpublish implements naming.Service.
func (s *MemoryNamingService) Unpublish(ctx context.Context, info naming.ResourceInfo) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := info.Key()
	if _, bound := s.bindings[key]; !bound {
		return naming.ErrNotBound
	}
	delete(s.bindings, key)
	return nil
}

// Lookup implements naming.Service.
func (s *MemoryNamingService) Lookup(ctx context.Context, info naming.ResourceInfo) (*naming.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, bound := s.bindings[info.Key()]
	if !bound {
		return nil, naming.ErrNotBound
	}
	out := entry
	return &out, nil
}

// List implements naming.Service.
func (s *MemoryNamingService) List(ctx context.Context) ([]naming.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]naming.Entry, 0, len(s.bindings))
	for _, entry := range s.bindings {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ApplicationName != out[j].ApplicationName {
			return out[i].ApplicationName < out[j].ApplicationName
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Close implements naming.Service. No resources to release.
func (s *MemoryNamingService) Close() error {
	return nil
}
