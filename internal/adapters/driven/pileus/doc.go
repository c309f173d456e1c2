// Package pileus implements driven.PileusAPI over HTTP.
//
// Requests are throttled by a token bucket. GET requests are retried on
// rate limiting, server errors, and network failures. POST requests are sent
// exactly once, since onboarding is not idempotent.
package pileus
