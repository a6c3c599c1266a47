// Package errorspkg holds errors shared across layers.
package errorspkg

import "errors"

// ErrInternal is the fallback returned to callers when the underlying
// cause has already been logged and must not leak outside the service.
var ErrInternal = errors.New("internal")
