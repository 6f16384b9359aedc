package storefront

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mejacafe/storefront/cart"
)

// Module is a long-lived component with a managed lifecycle.
type Module interface {
	Name() string
	Start(ctx context.Context) error
	Stop() error
}

// CartStore is a cart store the App can start and stop.
type CartStore interface {
	cart.Store
	Module
}

// Registry starts modules in registration order and stops them in reverse.
// A module that fails to start is logged and skipped so the rest of the
// site keeps working without it.
type Registry struct {
	log logrus.FieldLogger

	mu      sync.Mutex
	modules []Module
	started []Module
	failed  map[string]error
}

// NewRegistry returns an empty registry.
func NewRegistry(log logrus.FieldLogger) *Registry {
	return &Registry{log: log, failed: make(map[string]error)}
}

// Register appends m to the start order.
func (r *Registry) Register(m Module) {
	r.mu.Lock()
	r.modules = append(r.modules, m)
	r.mu.Unlock()
}

// StartAll starts every registered module that is neither running nor
// failed, and returns how many are running afterwards.
func (r *Registry) StartAll(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.modules {
		if _, failed := r.failed[m.Name()]; failed || r.isStarted(m) {
			continue
		}
		log := r.log.WithField("module", m.Name())
		if err := m.Start(ctx); err != nil {
			r.failed[m.Name()] = err
			log.WithError(err).Error("module failed to start")
			continue
		}
		r.started = append(r.started, m)
		log.Info("module started")
	}
	return len(r.started)
}

// StopAll stops started modules in reverse start order.
func (r *Registry) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.started) - 1; i >= 0; i-- {
		m := r.started[i]
		if err := m.Stop(); err != nil {
			r.log.WithField("module", m.Name()).WithError(err).Warn("module stop failed")
		}
	}
	r.started = nil
}

// Running reports whether the named module started successfully.
func (r *Registry) Running(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.started {
		if m.Name() == name {
			return true
		}
	}
	return false
}

// Failed returns the start error of the named module, if any.
func (r *Registry) Failed(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed[name]
}

func (r *Registry) isStarted(m Module) bool {
	for _, s := range r.started {
		if s == m {
			return true
		}
	}
	return false
}
