package generator

import "errors"

// ErrModelUnavailable indicates the model collaborator could not be reached
// or returned an unusable response. It is fatal to the orchestration run that
// observes it; retry policy, if any, wraps the run from outside.
var ErrModelUnavailable = errors.New("model collaborator unavailable")
