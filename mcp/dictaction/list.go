package dictaction

import (
	"context"
	"fmt"

	"github.com/viant/tracked-mcp/handle"
	"github.com/viant/tracked-mcp/tracked"
)

// ListName is the service name of the sequence actions.
const ListName = "list"

type list struct{ env *Env }

// NewList returns the "list" service. Iteration goes through dict-next and
// dict-resync, which serve both container kinds.
func NewList(env *Env) *Service {
	s := newService(ListName, env)
	l := &list{env: s.env}
	shared := &dict{env: s.env}
	register(s, "create", "Create a client-owned sequence, optionally seeded with values", l.create)
	register(s, "open", "Open a handle on a named host sequence", l.open)
	register(s, "get", "Get the value at index", l.get)
	register(s, "append", "Append values; live iterators stay valid", l.append)
	register(s, "set", "Overwrite the value at index; live iterators stay valid", l.set)
	register(s, "insert", "Insert values before index; invalidates iterators", l.insert)
	register(s, "erase", "Erase count values from index; invalidates iterators", l.erase)
	register(s, "len", "Number of values", shared.size)
	register(s, "iterate", "Start an iterator bound to the current version", shared.iterate)
	register(s, "stat", "Report the live version of a handle without failing on stale state", shared.stat)
	register(s, "release", "Release a handle; an owned container is destroyed", shared.release)
	return s
}

func (l *list) create(_ context.Context, in *CreateListInput, out *HandleOutput) error {
	values, err := decodeValues(in.Values)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return l.env.acquire(handle.NewSequence(), out)
	}
	return l.env.acquire(handle.NewSequenceFrom(tracked.NewSequenceOf(values...)), out)
}

func (l *list) open(_ context.Context, in *NameInput, out *HandleOutput) error {
	s, err := l.env.Store.Sequence(in.Name)
	if err != nil {
		return err
	}
	return l.env.acquire(handle.AcquireSequence(s), out)
}

func (l *list) get(_ context.Context, in *IndexInput, out *ValueOutput) error {
	s, h, err := l.env.list(in.Handle, in.Seen)
	if err != nil {
		return err
	}
	out.Version = h.Version()
	v, found := s.At(in.Index)
	if !found {
		return nil
	}
	out.Found = true
	out.Value, err = encodeValue(v)
	return err
}

func (l *list) append(_ context.Context, in *ValuesInput, out *VersionOutput) error {
	s, h, err := l.env.list(in.Handle, 0)
	if err != nil {
		return err
	}
	values, err := decodeValues(in.Values)
	if err != nil {
		return err
	}
	s.Append(values...)
	out.Version = h.Version()
	return nil
}

func (l *list) set(_ context.Context, in *IndexValueInput, out *VersionOutput) error {
	s, h, err := l.env.list(in.Handle, 0)
	if err != nil {
		return err
	}
	v, err := decodeValue(in.Value)
	if err != nil {
		return err
	}
	if err = s.Set(in.Index, v); err != nil {
		discard(v)
		return err
	}
	out.Version = h.Version()
	return nil
}

func (l *list) insert(_ context.Context, in *ValuesInput, out *VersionOutput) error {
	s, h, err := l.env.list(in.Handle, 0)
	if err != nil {
		return err
	}
	values, err := decodeValues(in.Values)
	if err != nil {
		return err
	}
	if err = s.Insert(in.Index, values...); err != nil {
		for _, v := range values {
			discard(v)
		}
		return err
	}
	out.Version = h.Version()
	return nil
}

func (l *list) erase(_ context.Context, in *EraseInput, out *VersionOutput) error {
	s, h, err := l.env.list(in.Handle, 0)
	if err != nil {
		return err
	}
	count := in.Count
	if count <= 0 {
		count = 1
	}
	if err = s.EraseRange(in.Index, in.Index+count); err != nil {
		return fmt.Errorf("erase: %w", err)
	}
	out.Version = h.Version()
	return nil
}
