package mcp

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/viant/fluxor/model/types"
	"github.com/viant/tracked-mcp/handle"
	"github.com/viant/tracked-mcp/mcp/config"
	"github.com/viant/tracked-mcp/mcp/store"
)

// Service bundles configuration, the host containers, the handle registry and
// the action services exposed as MCP tools. Bootstrap lives in bootstrap.go.
type Service struct {
	started  int32
	config   *config.Config
	logger   *slog.Logger
	store    *store.Store
	registry *handle.Registry
	actions  []types.Service

	// guard concurrent modifications.
	mu sync.RWMutex
	// Cached MCP tool definitions built from the action services.
	mcpTools []toolEntry
}

// Config returns the effective configuration. Callers must treat it as
// read-only.
func (s *Service) Config() *config.Config { return s.config }

// Store returns the named host containers.
func (s *Service) Store() *store.Store { return s.store }

// Registry returns the handle registry shared by every connection.
func (s *Service) Registry() *handle.Registry { return s.registry }

// Actions returns the action services backing the tools.
func (s *Service) Actions() []types.Service {
	return append([]types.Service{}, s.actions...)
}

// Action returns the named action service.
func (s *Service) Action(name string) (types.Service, bool) {
	for _, action := range s.actions {
		if action.Name() == name {
			return action, true
		}
	}
	return nil, false
}

// ToolNames returns all tool names. The slice is a copy.
func (s *Service) ToolNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, len(s.mcpTools))
	for i, e := range s.mcpTools {
		names[i] = e.name
	}
	return names
}

// ToolDescriptors returns name and description of every tool.
func (s *Service) ToolDescriptors() []struct{ Name, Description string } {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]struct{ Name, Description string }, len(s.mcpTools))
	for i, e := range s.mcpTools {
		out[i] = struct{ Name, Description string }{e.name, e.description}
	}
	return out
}

func (s *Service) toolEntryByName(name string) (*toolEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i, e := range s.mcpTools {
		if e.name == name {
			return &s.mcpTools[i], true
		}
	}
	return nil, false
}

// ToolMetadata returns description and input schema for a named tool.
func (s *Service) ToolMetadata(name string) (string, interface{}, bool) {
	e, ok := s.toolEntryByName(canonical(name))
	if !ok {
		return "", nil, false
	}
	return e.description, e.metadata.InputSchema, true
}

// Option modifies a service instance before it is initialised.
type Option func(*Service)

// WithConfig sets a custom configuration instance. When omitted a zero value
// config is assumed.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithLogger overrides the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithStore shares an existing set of host containers with the service.
func WithStore(st *store.Store) Option {
	return func(s *Service) {
		s.store = st
	}
}

// New constructs a service; initialisation is handled by init in bootstrap.go.
func New(ctx context.Context, opts ...Option) (*Service, error) {
	svc := &Service{}
	for _, opt := range opts {
		opt(svc)
	}
	if err := svc.init(ctx); err != nil {
		return nil, err
	}
	return svc, nil
}

// NewWithConfig is New with a configuration instance followed by options.
func NewWithConfig(ctx context.Context, cfg *config.Config, opts ...Option) (*Service, error) {
	return New(ctx, append([]Option{WithConfig(cfg)}, opts...)...)
}

// Start marks the service as serving. Multiple invocations are safe.
func (s *Service) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.started, 0, 1) {
		return nil
	}
	maps, sequences := s.store.Names()
	s.logger.Info("service started", "tools", len(s.ToolNames()), "maps", len(maps), "sequences", len(sequences))
	return nil
}

// Shutdown releases every handle and destroys the host containers, so remote
// clients still holding ids observe stale references. Only the first call
// has an effect.
func (s *Service) Shutdown(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.started, 1, 2) {
		return nil
	}
	return s.registry.Do(func() error {
		stale := len(s.registry.Sweep())
		released := 0
		for _, id := range s.registry.IDs() {
			if err := s.registry.Release(id); err == nil {
				released++
			}
		}
		s.store.Clear()
		s.logger.Info("service stopped", "released", released, "stale", stale)
		return nil
	})
}
