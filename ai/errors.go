package ai

import "errors"

// ErrMalformedResponse indicates a service response did not contain a
// parseable payload matching the expected schema. Callers use this to
// distinguish content bugs (no retry) from transient transport faults
// (retry once).
var ErrMalformedResponse = errors.New("malformed service response")
