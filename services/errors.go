package services

import "errors"

// ErrInvalidInput is returned when required user input is missing or
// malformed (origin, destination, dates, required spreadsheet columns).
// Handlers map this to HTTP 400 before any external call is made.
var ErrInvalidInput = errors.New("invalid input")

// ErrExternalService is returned when an outbound call (search, generation,
// OCR, geocoding) failed or timed out. Handlers catch it at the call site
// and surface an inline message; it never aborts the whole request when a
// fallback exists.
var ErrExternalService = errors.New("external service error")
