package database

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// Registry holds named database connections.
//
// Cross-connection sync jobs name their target connection in configuration;
// the registry resolves that name to a live *gorm.DB so store calls can be
// routed to a location other than the default.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*gorm.DB
}

// NewRegistry creates an empty connection registry.
func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*gorm.DB)}
}

// Register adds a connection under the given name, replacing any previous
// connection with that name.
func (r *Registry) Register(name string, db *gorm.DB) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[name] = db
}

// Get returns the connection registered under name.
func (r *Registry) Get(name string) (*gorm.DB, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	db, ok := r.conns[name]
	if !ok {
		return nil, fmt.Errorf("unknown connection %q", name)
	}
	return db, nil
}

// Names returns the registered connection names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.conns))
	for name := range r.conns {
		names = append(names, name)
	}
	return names
}
