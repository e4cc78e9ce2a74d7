package dictaction

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/viant/fluxor/model/types"
	"github.com/viant/tracked-mcp/handle"
	"github.com/viant/tracked-mcp/internal/conv"
	"github.com/viant/tracked-mcp/mcp/store"
)

// Env is the state shared by the action services.
type Env struct {
	Store    *store.Store
	Registry *handle.Registry
	Logger   *slog.Logger
}

// Service implements types.Service over a fixed method table.
type Service struct {
	name      string
	env       *Env
	sigs      types.Signatures
	executors map[string]types.Executable
}

func newService(name string, env *Env) *Service {
	if env.Logger == nil {
		env.Logger = slog.Default()
	}
	return &Service{name: name, env: env, executors: map[string]types.Executable{}}
}

func (s *Service) Name() string { return s.name }

func (s *Service) Methods() types.Signatures { return s.sigs }

func (s *Service) Method(name string) (types.Executable, error) {
	if exec, ok := s.executors[name]; ok {
		return exec, nil
	}
	return nil, types.NewMethodNotFoundError(name)
}

// register adds a method whose body runs under the registry lock. Input may
// be *I or anything convertible to it; output may be *O, *interface{} or
// anything O converts to.
func register[I, O any](s *Service, name, description string, fn func(ctx context.Context, in *I, out *O) error) {
	s.sigs = append(s.sigs, types.Signature{
		Name:        name,
		Description: description,
		Input:       reflect.TypeOf(new(I)),
		Output:      reflect.TypeOf(new(O)),
	})
	s.executors[name] = func(ctx context.Context, input, output interface{}) error {
		in, ok := input.(*I)
		if !ok || in == nil {
			in = new(I)
			if err := conv.Convert(input, in); err != nil {
				return fmt.Errorf("invalid %v.%v input: %w", s.name, name, err)
			}
		}
		out, typed := output.(*O)
		if !typed || out == nil {
			out = new(O)
		}
		if err := s.env.Registry.Do(func() error { return fn(ctx, in, out) }); err != nil {
			s.env.Logger.Debug("action failed", "service", s.name, "method", name, "error", err)
			return err
		}
		if typed || output == nil {
			return nil
		}
		if ptr, ok := output.(*interface{}); ok {
			*ptr = out
			return nil
		}
		return conv.Convert(out, output)
	}
}
