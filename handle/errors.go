package handle

import (
	"errors"
	"fmt"
)

var (
	// ErrStale reports that cached state no longer matches the container.
	ErrStale = errors.New("stale reference")
	// ErrDestroyed reports that the watched container is gone.
	ErrDestroyed = fmt.Errorf("%w: container destroyed", ErrStale)
	// ErrReleased reports use of a handle after Release.
	ErrReleased = fmt.Errorf("%w: handle released", ErrStale)
	// ErrKind reports that the handle watches another container kind.
	ErrKind = errors.New("handle watches a different container kind")
	// ErrUnknownHandle reports an id absent from the registry.
	ErrUnknownHandle = errors.New("unknown handle")
	// ErrTooManyHandles reports that the registry reached its handle limit.
	ErrTooManyHandles = errors.New("too many handles")
)
