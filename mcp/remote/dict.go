package remote

import (
	"context"
	"encoding/json"

	"github.com/viant/tracked-mcp/mcp/dictaction"
)

// Dict is a remote handle on a map. Seen holds the version observed by the
// last call; reads send it back so the server rejects them once another
// party mutated the map in a way that invalidates iteration.
type Dict struct {
	client *Client
	ID     string
	Seen   int64
}

// OpenDict acquires a handle on the named host map.
func (c *Client) OpenDict(ctx context.Context, name string) (*Dict, error) {
	out := &dictaction.HandleOutput{}
	if err := c.Call(ctx, "dict-open", &dictaction.NameInput{Name: name}, out); err != nil {
		return nil, err
	}
	return &Dict{client: c, ID: out.Handle, Seen: out.Version}, nil
}

// CreateDict creates a client-owned map seeded with entries.
func (c *Client) CreateDict(ctx context.Context, entries map[string]interface{}) (*Dict, error) {
	input := &dictaction.CreateInput{}
	if len(entries) > 0 {
		data, err := json.Marshal(entries)
		if err != nil {
			return nil, err
		}
		input.Entries = data
	}
	out := &dictaction.HandleOutput{}
	if err := c.Call(ctx, "dict-create", input, out); err != nil {
		return nil, err
	}
	return &Dict{client: c, ID: out.Handle, Seen: out.Version}, nil
}

// Validate reports the live version and whether Seen still matches it.
// It never fails on stale state; a gone container reports valid false.
func (d *Dict) Validate(ctx context.Context) (int64, bool, error) {
	out := &dictaction.StatOutput{}
	if err := d.client.Call(ctx, "dict-stat", &dictaction.HandleInput{Handle: d.ID, Seen: d.Seen}, out); err != nil {
		return 0, false, err
	}
	return out.Version, out.Valid, nil
}

// Resync accepts the live version as seen.
func (d *Dict) Resync(ctx context.Context) (int64, error) {
	live, _, err := d.Validate(ctx)
	if err != nil {
		return 0, err
	}
	d.Seen = live
	return live, nil
}

// Get returns the raw JSON value stored at key.
func (d *Dict) Get(ctx context.Context, key string) (json.RawMessage, bool, error) {
	out := &dictaction.ValueOutput{}
	if err := d.client.Call(ctx, "dict-get", &dictaction.KeyInput{Handle: d.ID, Key: key, Seen: d.Seen}, out); err != nil {
		return nil, false, err
	}
	return out.Value, out.Found, nil
}

// Set stores value at key.
func (d *Dict) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	out := &dictaction.VersionOutput{}
	if err = d.client.Call(ctx, "dict-set", &dictaction.KeyValueInput{Handle: d.ID, Key: key, Value: data}, out); err != nil {
		return err
	}
	d.Seen = out.Version
	return nil
}

// Delete erases key. The caller's own erase advances Seen.
func (d *Dict) Delete(ctx context.Context, key string) (bool, error) {
	out := &dictaction.DeleteOutput{}
	if err := d.client.Call(ctx, "dict-delete", &dictaction.KeyInput{Handle: d.ID, Key: key, Seen: d.Seen}, out); err != nil {
		return false, err
	}
	d.Seen = out.Version
	return out.Removed > 0, nil
}

// Keys returns the keys in order.
func (d *Dict) Keys(ctx context.Context) ([]string, error) {
	out := &dictaction.KeysOutput{}
	if err := d.client.Call(ctx, "dict-keys", &dictaction.HandleInput{Handle: d.ID, Seen: d.Seen}, out); err != nil {
		return nil, err
	}
	return out.Keys, nil
}

// Iterate starts a server-side iterator bound to the live version.
func (d *Dict) Iterate(ctx context.Context) (*Iterator, error) {
	out := &dictaction.IterateOutput{}
	if err := d.client.Call(ctx, "dict-iterate", &dictaction.HandleInput{Handle: d.ID, Seen: d.Seen}, out); err != nil {
		return nil, err
	}
	return &Iterator{client: d.client, ID: out.Iterator, Seen: out.Version}, nil
}

// Release gives the handle back; an owned map is destroyed.
func (d *Dict) Release(ctx context.Context) error {
	return d.client.Call(ctx, "dict-release", &dictaction.HandleInput{Handle: d.ID}, &dictaction.ReleaseOutput{})
}

// Iterator pages through a remote container.
type Iterator struct {
	client *Client
	ID     string
	Seen   int64
}

// Next returns up to limit entries; done is true once the end was reached.
func (it *Iterator) Next(ctx context.Context, limit int) ([]*dictaction.Entry, bool, error) {
	out := &dictaction.NextOutput{}
	if err := it.client.Call(ctx, "dict-next", &dictaction.NextInput{Iterator: it.ID, Limit: limit}, out); err != nil {
		return nil, false, err
	}
	it.Seen = out.Version
	return out.Entries, out.Done, nil
}

// Resync binds the iterator to the live version, continuing after the last
// returned entry or from the start when rewind is set.
func (it *Iterator) Resync(ctx context.Context, rewind bool) error {
	out := &dictaction.VersionOutput{}
	if err := it.client.Call(ctx, "dict-resync", &dictaction.ResyncInput{Iterator: it.ID, Rewind: rewind}, out); err != nil {
		return err
	}
	it.Seen = out.Version
	return nil
}
