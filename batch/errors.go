package batch

import "errors"

// ErrStackEmpty is returned by the Pop methods when nothing was pushed.
var ErrStackEmpty = errors.New("batch: pop on empty stack")
