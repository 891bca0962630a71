// Package dns implements the DNS wire-format codec used by the resolver:
// header, domain name (with compression), question, and resource record
// encoding/decoding, plus full-message composition (RFC 1035 Section 4).
//
// Error Handling:
//
// All decode errors are wrapped with context using fmt.Errorf("...: %w", err)
// around the sentinel ErrMalformed, so callers can use errors.Is to treat any
// wire-format violation as a dropped datagram (spec's MalformedDatagram kind).
package dns

import "errors"

// ErrMalformed is the sentinel error for any DNS wire-format violation
// encountered while decoding. Wrap it with fmt.Errorf("context: %w", ...)
// to add detail; callers that only care whether decoding failed can match
// on errors.Is(err, ErrMalformed).
var ErrMalformed = errors.New("malformed dns message")
