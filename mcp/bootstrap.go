package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/tracked-mcp/handle"
	"github.com/viant/tracked-mcp/mcp/config"
	"github.com/viant/tracked-mcp/mcp/dictaction"
	"github.com/viant/tracked-mcp/mcp/store"
)

// init orchestrates the bootstrap steps once all options have been applied.
func (s *Service) init(ctx context.Context) error {
	s.initDefaults()

	// Validate configuration early to fail fast when possible.
	if err := s.config.Validate(); err != nil {
		return err
	}

	if err := s.seed(ctx); err != nil {
		return fmt.Errorf("seed host containers: %w", err)
	}

	s.initActions()
	s.buildMcpToolRegistry()
	return nil
}

// initDefaults applies fall-back values for optional dependencies that were
// not supplied through options.
func (s *Service) initDefaults() {
	if s.config == nil {
		s.config = &config.Config{}
	}
	if s.logger == nil {
		s.logger = slog.Default().With("component", "tracked-mcp")
	}
	if s.store == nil {
		s.store = store.New()
	}
	if s.registry == nil {
		s.registry = handle.NewRegistry(s.config.Limits.MaxHandles)
	}
}

// initActions builds the dict and list services over one shared environment.
func (s *Service) initActions() {
	env := &dictaction.Env{Store: s.store, Registry: s.registry, Logger: s.logger}
	s.actions = append(s.actions, dictaction.NewDict(env), dictaction.NewList(env))
}
