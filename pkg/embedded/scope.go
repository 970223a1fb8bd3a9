package embedded

import (
	"fmt"
	"io"
	"sync"
)

// Scope is the per-surface service scope. Services registered here live
// exactly as long as the surface; disposing the surface closes the scope and
// every io.Closer it holds.
type Scope struct {
	mu       sync.Mutex
	services map[string]any
	closed   bool
}

// NewScope creates an empty service scope.
func NewScope() *Scope {
	return &Scope{services: make(map[string]any)}
}

// Register adds a named service. Registering on a closed scope is an error.
func (s *Scope) Register(name string, service any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("register %q on closed scope", name)
	}
	s.services[name] = service
	return nil
}

// Resolve looks up a named service.
func (s *Scope) Resolve(name string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false
	}
	service, ok := s.services[name]
	return service, ok
}

// Closed reports whether the scope has been released.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the scope, closing any registered io.Closer. Idempotent.
func (s *Scope) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	services := s.services
	s.services = nil
	s.mu.Unlock()

	var firstErr error
	for name, service := range services {
		if closer, ok := service.(io.Closer); ok {
			if err := closer.Close(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("closing %q: %w", name, err)
			}
		}
	}
	return firstErr
}
