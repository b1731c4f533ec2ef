// Package services provides typed clients for the booking backend's resource
// endpoints: hotels, destinations, bookings, contact messages, and reviews.
//
// Every service is a thin layer over the authenticated HTTP client produced by
// the root package: JSON in, JSON out, backend errors surfaced as
// [goPortal.APIError]. Idempotent reads can optionally be retried with
// exponential backoff; writes are never retried here, the single
// 401-refresh-retry in the transport is the only replay a write ever gets.
//
// # Architecture boundaries
//
// services imports the root package for its error and configuration types and
// nothing else from this module. It holds no session state; authentication is
// entirely the transport's concern.
//
// # What this package must NOT do
//
//   - it must NOT read or attach tokens; the transport owns the
//     Authorization header
//   - it must NOT retry non-idempotent requests
//   - it must NOT interpret 401 responses; recovery happens below it
package services
