package resolver

import "errors"

// ErrUpstreamTimeout is returned by forward when the upstream server
// does not answer within the configured timeout (spec Section 6,
// "UpstreamTimeout").
var ErrUpstreamTimeout = errors.New("upstream timeout")

// ErrUpstreamIOFailure is returned by forward for any other upstream
// socket failure: dial, write, or read errors that are not a timeout
// (spec Section 6, "UpstreamIOFailure").
var ErrUpstreamIOFailure = errors.New("upstream io failure")
