package dictaction

import (
	"encoding/json"
	"fmt"

	"github.com/viant/tracked-mcp/handle"
	"github.com/viant/tracked-mcp/mcp/tool/conversion"
	"github.com/viant/tracked-mcp/tracked"
)

// defaultNextLimit caps a next call without an explicit limit.
const defaultNextLimit = 100

// lookup resolves a live handle and, when seen is set, validates it.
func (e *Env) lookup(id string, seen int64) (*handle.Handle, error) {
	h, err := e.Registry.Lookup(id)
	if err != nil {
		return nil, err
	}
	if err = h.Err(); err != nil {
		e.Logger.Info("stale handle", "handle", id, "error", err)
		return nil, err
	}
	if seen == 0 {
		return h, nil
	}
	if live, ok := h.Validate(seen); !ok {
		e.Logger.Info("stale handle", "handle", id, "seen", seen, "version", live)
		return nil, fmt.Errorf("%w: seen version %d, live %d", handle.ErrStale, seen, live)
	}
	return h, nil
}

func (e *Env) dict(id string, seen int64) (*tracked.Map, *handle.Handle, error) {
	h, err := e.lookup(id, seen)
	if err != nil {
		return nil, nil, err
	}
	m, err := h.Map()
	if err != nil {
		return nil, nil, fmt.Errorf("handle %v: %w", id, err)
	}
	return m, h, nil
}

func (e *Env) list(id string, seen int64) (*tracked.Sequence, *handle.Handle, error) {
	h, err := e.lookup(id, seen)
	if err != nil {
		return nil, nil, err
	}
	s, err := h.Sequence()
	if err != nil {
		return nil, nil, fmt.Errorf("handle %v: %w", id, err)
	}
	return s, h, nil
}

// acquire registers h and fills out; an unregistered h is released.
func (e *Env) acquire(h *handle.Handle, out *HandleOutput) error {
	id, err := e.Registry.Register(h)
	if err != nil {
		h.Release()
		return err
	}
	out.Handle = id
	out.Version = h.Version()
	e.Logger.Debug("handle acquired", "handle", id, "owning", h.Owning())
	return nil
}

func (e *Env) release(id string, out *ReleaseOutput) error {
	if err := e.Registry.Release(id); err != nil {
		return err
	}
	out.Released = true
	e.Logger.Debug("handle released", "handle", id)
	return nil
}

func (e *Env) iterate(h *handle.Handle, handleID string, out *IterateOutput) error {
	it, err := h.Iterate()
	if err != nil {
		return err
	}
	if out.Iterator, err = e.Registry.RegisterIterator(handleID, it); err != nil {
		return err
	}
	out.Version = it.Version()
	return nil
}

func (e *Env) stat(id string, seen int64, out *StatOutput) error {
	h, err := e.Registry.Lookup(id)
	if err != nil {
		return err
	}
	out.Version = h.Version()
	out.Owning = h.Owning()
	out.Live = h.Err() == nil
	out.Valid = out.Live
	if seen != 0 {
		_, out.Valid = h.Validate(seen)
	}
	if !out.Live {
		return nil
	}
	if m, err := h.Map(); err == nil {
		out.Kind, out.Len = tracked.KindMap.String(), m.Len()
	} else if s, err := h.Sequence(); err == nil {
		out.Kind, out.Len = tracked.KindSequence.String(), s.Len()
	}
	return nil
}

func decodeValue(raw json.RawMessage) (tracked.Value, error) {
	v, err := conversion.DecodeJSON(raw)
	if err != nil {
		return tracked.Value{}, err
	}
	return v, nil
}

// decodeValues decodes a JSON array into its elements.
func decodeValues(raw json.RawMessage) ([]tracked.Value, error) {
	v, err := decodeValue(raw)
	if err != nil {
		return nil, err
	}
	if v.IsNull() {
		return nil, nil
	}
	s, ok := v.Sequence()
	if !ok {
		discard(v)
		return nil, fmt.Errorf("expected a JSON array, got %v", v.Kind())
	}
	return s.Values(), nil
}

func encodeValue(v tracked.Value) (json.RawMessage, error) {
	return conversion.EncodeJSON(v)
}

// discard destroys a nested container decoded for a call that did not keep it.
func discard(v tracked.Value) { v.Destroy() }
