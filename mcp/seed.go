package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/tracked-mcp/mcp/config"
	"github.com/viant/tracked-mcp/mcp/tool/conversion"
	"github.com/viant/tracked-mcp/tracked"
	"gopkg.in/yaml.v3"
)

// seed creates the host containers listed in the configuration.
func (s *Service) seed(ctx context.Context) error {
	seeds, err := s.loadSeeds(ctx)
	if err != nil {
		return err
	}
	fs := afs.New()
	for _, item := range seeds {
		if err := s.seedOne(ctx, fs, item); err != nil {
			return fmt.Errorf("seed %q: %w", item.Name, err)
		}
	}
	return nil
}

// Seed creates or replaces a named host container. Handles on a replaced
// container observe it as destroyed.
func (s *Service) Seed(ctx context.Context, item *config.Seed) error {
	if err := config.ValidateSeeds([]*config.Seed{item}); err != nil {
		return err
	}
	return s.registry.Do(func() error {
		if err := s.seedOne(ctx, afs.New(), item); err != nil {
			return fmt.Errorf("seed %q: %w", item.Name, err)
		}
		return nil
	})
}

// Snapshot returns the JSON encoding of a named host container.
func (s *Service) Snapshot(name string) (json.RawMessage, error) {
	var data json.RawMessage
	err := s.registry.Do(func() error {
		var value tracked.Value
		if m, err := s.store.Map(name); err == nil {
			value = tracked.MapValue(m)
		} else if seq, seqErr := s.store.Sequence(name); seqErr == nil {
			value = tracked.SequenceValue(seq)
		} else {
			return err
		}
		var err error
		data, err = conversion.EncodeJSON(value)
		return err
	})
	return data, err
}

// loadSeeds resolves seeds either embedded in the config or referenced via URL.
func (s *Service) loadSeeds(ctx context.Context) ([]*config.Seed, error) {
	if s.config.Seeds == nil {
		return nil, nil
	}
	// Inline seeds take precedence.
	if len(s.config.Seeds.Items) > 0 {
		return s.config.Seeds.Items, nil
	}
	if s.config.Seeds.URL == "" {
		return nil, nil
	}
	data, err := afs.New().DownloadWithURL(ctx, s.config.Seeds.URL)
	if err != nil {
		return nil, fmt.Errorf("download seeds %q: %w", s.config.Seeds.URL, err)
	}
	var out []*config.Seed
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse seeds %q: %w", s.config.Seeds.URL, err)
	}
	if err := config.ValidateSeeds(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) seedOne(ctx context.Context, fs afs.Service, item *config.Seed) error {
	data := item.Data
	if item.URL != "" {
		content, err := fs.DownloadWithURL(ctx, item.URL)
		if err != nil {
			return fmt.Errorf("download %q: %w", item.URL, err)
		}
		if err = yaml.Unmarshal(content, &data); err != nil {
			return fmt.Errorf("parse %q: %w", item.URL, err)
		}
	}
	value, err := conversion.FromJSON(data)
	if err != nil {
		return err
	}
	if item.IsList() {
		seq, err := seedSequence(value)
		if err != nil {
			return err
		}
		s.store.PutSequence(item.Name, seq)
		s.logger.Info("host sequence seeded", "name", item.Name, "len", seq.Len())
		return nil
	}
	m, err := seedMap(value)
	if err != nil {
		return err
	}
	s.store.PutMap(item.Name, m)
	s.logger.Info("host map seeded", "name", item.Name, "len", m.Len())
	return nil
}

func seedMap(value tracked.Value) (*tracked.Map, error) {
	if value.IsNull() {
		return tracked.NewMap(), nil
	}
	m, ok := value.Map()
	if !ok {
		value.Destroy()
		return nil, fmt.Errorf("expected a map, got %v", value.Kind())
	}
	return m, nil
}

func seedSequence(value tracked.Value) (*tracked.Sequence, error) {
	if value.IsNull() {
		return tracked.NewSequence(), nil
	}
	seq, ok := value.Sequence()
	if !ok {
		value.Destroy()
		return nil, fmt.Errorf("expected a list, got %v", value.Kind())
	}
	return seq, nil
}
