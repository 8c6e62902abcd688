package openai

import "github.com/poiesic/appscout/ai"

// ErrMalformedResponse re-exports the shared sentinel so callers of this
// package can match parse failures without importing ai directly.
var ErrMalformedResponse = ai.ErrMalformedResponse
