package providers

import "errors"

// ErrFetch indicates the schedule source could not be read: network failure, timeout,
// non-200 status or a body that is not JSON.
var ErrFetch = errors.New("fetch schedule")
