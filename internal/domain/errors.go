package domain

import "errors"

var (
	// ErrUnauthorized signals a request with no verifiable identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrPremiumRequired signals a feature gated to the premium tier.
	ErrPremiumRequired = errors.New("premium required")
	// ErrValidation signals a missing or malformed request field.
	ErrValidation = errors.New("validation failed")
	// ErrNoContext signals a chat request before any summarization cached context.
	ErrNoContext = errors.New("no cached context")
	// ErrUpstreamUnavailable signals a missing credential or configuration for an upstream call.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrUpstream signals a failed upstream call.
	ErrUpstream = errors.New("upstream error")
	// ErrTimeout signals an upstream call that exceeded its deadline.
	ErrTimeout = errors.New("upstream timeout")
	// ErrParse signals model output that is not valid JSON where structured output is expected.
	ErrParse = errors.New("parse failed")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
)
