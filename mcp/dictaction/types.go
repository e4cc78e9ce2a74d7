package dictaction

import "encoding/json"

type (
	// CreateInput seeds a new client-owned map.
	CreateInput struct {
		Entries json.RawMessage `json:"entries,omitempty" description:"initial entries as a JSON object"`
	}

	// CreateListInput seeds a new client-owned sequence.
	CreateListInput struct {
		Values json.RawMessage `json:"values,omitempty" description:"initial values as a JSON array"`
	}

	// NameInput names a host container.
	NameInput struct {
		Name string `json:"name" description:"host container name"`
	}

	// HandleInput addresses a handle. A non-zero Seen is validated against
	// the live version before the call proceeds.
	HandleInput struct {
		Handle string `json:"handle" description:"handle id"`
		Seen   int64  `json:"seen,omitempty" description:"version the caller last observed"`
	}

	// HandleOutput returns a new handle id.
	HandleOutput struct {
		Handle  string `json:"handle"`
		Version int64  `json:"version"`
	}

	// VersionOutput reports the live version after a call.
	VersionOutput struct {
		Version int64 `json:"version"`
	}

	KeyInput struct {
		Handle string `json:"handle" description:"handle id"`
		Key    string `json:"key"`
		Seen   int64  `json:"seen,omitempty" description:"version the caller last observed"`
	}

	KeyValueInput struct {
		Handle string          `json:"handle" description:"handle id"`
		Key    string          `json:"key"`
		Value  json.RawMessage `json:"value,omitempty"`
	}

	ValueOutput struct {
		Found   bool            `json:"found"`
		Value   json.RawMessage `json:"value,omitempty"`
		Version int64           `json:"version"`
	}

	SetDefaultOutput struct {
		Inserted bool            `json:"inserted"`
		Value    json.RawMessage `json:"value,omitempty"`
		Version  int64           `json:"version"`
	}

	DeleteOutput struct {
		Removed int   `json:"removed"`
		Version int64 `json:"version"`
	}

	LenOutput struct {
		Len     int   `json:"len"`
		Version int64 `json:"version"`
	}

	KeysOutput struct {
		Keys    []string `json:"keys"`
		Version int64    `json:"version"`
	}

	IterateOutput struct {
		Iterator string `json:"iterator"`
		Version  int64  `json:"version"`
	}

	NextInput struct {
		Iterator string `json:"iterator" description:"iterator id"`
		Limit    int    `json:"limit,omitempty" description:"maximum entries to return, default 100"`
	}

	// Entry is one element returned by next; Key is empty for sequences.
	Entry struct {
		Key   string          `json:"key,omitempty"`
		Index int             `json:"index"`
		Value json.RawMessage `json:"value"`
	}

	NextOutput struct {
		Entries []*Entry `json:"entries"`
		Done    bool     `json:"done"`
		Version int64    `json:"version"`
	}

	ResyncInput struct {
		Iterator string `json:"iterator" description:"iterator id"`
		Rewind   bool   `json:"rewind,omitempty" description:"restart from the first element"`
	}

	// StatOutput never fails for a known handle: a gone container reports
	// Live false and the tombstone version.
	StatOutput struct {
		Version int64  `json:"version"`
		Live    bool   `json:"live"`
		Valid   bool   `json:"valid"`
		Owning  bool   `json:"owning"`
		Kind    string `json:"kind,omitempty"`
		Len     int    `json:"len"`
	}

	ReleaseOutput struct {
		Released bool `json:"released"`
	}

	DropOutput struct {
		Dropped bool `json:"dropped"`
	}

	RelocateOutput struct {
		Relocated bool `json:"relocated"`
	}

	RelocateInput struct {
		From string `json:"from" description:"current host container name"`
		To   string `json:"to" description:"new host container name"`
	}

	SwapInput struct {
		Name  string `json:"name" description:"host container name"`
		Other string `json:"other" description:"host container name to swap with"`
	}

	IndexInput struct {
		Handle string `json:"handle" description:"handle id"`
		Index  int    `json:"index"`
		Seen   int64  `json:"seen,omitempty" description:"version the caller last observed"`
	}

	IndexValueInput struct {
		Handle string          `json:"handle" description:"handle id"`
		Index  int             `json:"index"`
		Value  json.RawMessage `json:"value,omitempty"`
	}

	ValuesInput struct {
		Handle string          `json:"handle" description:"handle id"`
		Index  int             `json:"index,omitempty" description:"insert position"`
		Values json.RawMessage `json:"values" description:"values as a JSON array"`
	}

	EraseInput struct {
		Handle string `json:"handle" description:"handle id"`
		Index  int    `json:"index"`
		Count  int    `json:"count,omitempty" description:"number of elements to erase, default 1"`
	}
)
