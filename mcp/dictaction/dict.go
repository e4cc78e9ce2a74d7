package dictaction

import (
	"context"
	"fmt"

	"github.com/viant/tracked-mcp/handle"
	"github.com/viant/tracked-mcp/tracked"
)

// DictName is the service name of the map actions.
const DictName = "dict"

type dict struct{ env *Env }

// NewDict returns the "dict" service.
func NewDict(env *Env) *Service {
	s := newService(DictName, env)
	d := &dict{env: s.env}
	register(s, "create", "Create a client-owned map, optionally seeded with entries", d.create)
	register(s, "open", "Open a handle on a named host map", d.open)
	register(s, "get", "Get the value stored at key", d.get)
	register(s, "set", "Insert or overwrite key; live iterators stay valid", d.set)
	register(s, "setDefault", "Insert key only when absent and return the stored value", d.setDefault)
	register(s, "delete", "Erase key; invalidates iterators", d.erase)
	register(s, "clear", "Remove all entries; invalidates iterators", d.reset)
	register(s, "len", "Number of entries", d.size)
	register(s, "keys", "All keys in order", d.keys)
	register(s, "iterate", "Start an iterator bound to the current version", d.iterate)
	register(s, "next", "Advance an iterator; fails with a stale reference once the container changed", d.next)
	register(s, "resync", "Accept the current version and continue (or rewind) an iterator", d.resync)
	register(s, "stat", "Report the live version of a handle without failing on stale state", d.stat)
	register(s, "release", "Release a handle; an owned container is destroyed", d.release)
	register(s, "drop", "Destroy a named host container", d.drop)
	register(s, "relocate", "Move a named host container to a new identity under another name", d.relocate)
	register(s, "swap", "Swap the contents of two named host containers", d.swap)
	return s
}

func (d *dict) create(_ context.Context, in *CreateInput, out *HandleOutput) error {
	v, err := decodeValue(in.Entries)
	if err != nil {
		return err
	}
	if v.IsNull() {
		return d.env.acquire(handle.New(), out)
	}
	m, ok := v.Map()
	if !ok {
		discard(v)
		return fmt.Errorf("entries: expected a JSON object, got %v", v.Kind())
	}
	return d.env.acquire(handle.NewFrom(m), out)
}

func (d *dict) open(_ context.Context, in *NameInput, out *HandleOutput) error {
	m, err := d.env.Store.Map(in.Name)
	if err != nil {
		return err
	}
	return d.env.acquire(handle.Acquire(m), out)
}

func (d *dict) get(_ context.Context, in *KeyInput, out *ValueOutput) error {
	m, h, err := d.env.dict(in.Handle, in.Seen)
	if err != nil {
		return err
	}
	out.Version = h.Version()
	v, found := m.Get(in.Key)
	if !found {
		return nil
	}
	out.Found = true
	out.Value, err = encodeValue(v)
	return err
}

func (d *dict) set(_ context.Context, in *KeyValueInput, out *VersionOutput) error {
	m, h, err := d.env.dict(in.Handle, 0)
	if err != nil {
		return err
	}
	v, err := decodeValue(in.Value)
	if err != nil {
		return err
	}
	m.Set(in.Key, v)
	out.Version = h.Version()
	return nil
}

func (d *dict) setDefault(_ context.Context, in *KeyValueInput, out *SetDefaultOutput) error {
	m, h, err := d.env.dict(in.Handle, 0)
	if err != nil {
		return err
	}
	v, err := decodeValue(in.Value)
	if err != nil {
		return err
	}
	if out.Inserted = m.Insert(in.Key, v); !out.Inserted {
		discard(v)
	}
	current, _ := m.Get(in.Key)
	out.Version = h.Version()
	out.Value, err = encodeValue(current)
	return err
}

func (d *dict) erase(_ context.Context, in *KeyInput, out *DeleteOutput) error {
	m, h, err := d.env.dict(in.Handle, in.Seen)
	if err != nil {
		return err
	}
	out.Removed = m.Erase(in.Key)
	out.Version = h.Version()
	return nil
}

func (d *dict) reset(_ context.Context, in *HandleInput, out *VersionOutput) error {
	m, h, err := d.env.dict(in.Handle, in.Seen)
	if err != nil {
		return err
	}
	m.Clear()
	out.Version = h.Version()
	return nil
}

func (d *dict) size(_ context.Context, in *HandleInput, out *LenOutput) error {
	h, err := d.env.lookup(in.Handle, in.Seen)
	if err != nil {
		return err
	}
	out.Version = h.Version()
	if m, err := h.Map(); err == nil {
		out.Len = m.Len()
		return nil
	}
	seq, err := h.Sequence()
	if err != nil {
		return err
	}
	out.Len = seq.Len()
	return nil
}

func (d *dict) keys(_ context.Context, in *HandleInput, out *KeysOutput) error {
	m, h, err := d.env.dict(in.Handle, in.Seen)
	if err != nil {
		return err
	}
	out.Keys = m.Keys()
	out.Version = h.Version()
	return nil
}

func (d *dict) iterate(_ context.Context, in *HandleInput, out *IterateOutput) error {
	h, err := d.env.lookup(in.Handle, in.Seen)
	if err != nil {
		return err
	}
	return d.env.iterate(h, in.Handle, out)
}

func (d *dict) next(_ context.Context, in *NextInput, out *NextOutput) error {
	it, err := d.env.Registry.LookupIterator(in.Iterator)
	if err != nil {
		return err
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultNextLimit
	}
	out.Entries = []*Entry{}
	for len(out.Entries) < limit {
		entry, ok, err := it.Next()
		if err != nil {
			d.env.Logger.Info("stale iterator", "iterator", in.Iterator, "version", it.Version(), "error", err)
			return err
		}
		if !ok {
			out.Done = true
			break
		}
		value, err := encodeValue(entry.Value)
		if err != nil {
			return err
		}
		out.Entries = append(out.Entries, &Entry{Key: entry.Key, Index: entry.Index, Value: value})
	}
	out.Version = it.Version()
	return nil
}

func (d *dict) resync(_ context.Context, in *ResyncInput, out *VersionOutput) error {
	it, err := d.env.Registry.LookupIterator(in.Iterator)
	if err != nil {
		return err
	}
	if in.Rewind {
		err = it.Rewind()
	} else {
		err = it.Resync()
	}
	if err != nil {
		return err
	}
	out.Version = it.Version()
	return nil
}

func (d *dict) stat(_ context.Context, in *HandleInput, out *StatOutput) error {
	return d.env.stat(in.Handle, in.Seen, out)
}

func (d *dict) release(_ context.Context, in *HandleInput, out *ReleaseOutput) error {
	return d.env.release(in.Handle, out)
}

func (d *dict) drop(_ context.Context, in *NameInput, out *DropOutput) error {
	out.Dropped = d.env.Store.Drop(in.Name)
	if out.Dropped {
		d.env.Logger.Info("host container dropped", "name", in.Name)
	}
	return nil
}

func (d *dict) relocate(_ context.Context, in *RelocateInput, out *RelocateOutput) error {
	if err := d.env.Store.Relocate(in.From, in.To); err != nil {
		return err
	}
	out.Relocated = in.From != in.To
	d.env.Logger.Info("host container relocated", "from", in.From, "to", in.To)
	return nil
}

func (d *dict) swap(_ context.Context, in *SwapInput, out *VersionOutput) error {
	if err := d.env.Store.Swap(in.Name, in.Other); err != nil {
		return err
	}
	if m, err := d.env.Store.Map(in.Name); err == nil {
		out.Version = versionOf(m.Stamp())
	} else if seq, err := d.env.Store.Sequence(in.Name); err == nil {
		out.Version = versionOf(seq.Stamp())
	}
	return nil
}

func versionOf(stamp *tracked.Stamp) int64 {
	if stamp == nil {
		return 0
	}
	return stamp.Version()
}
