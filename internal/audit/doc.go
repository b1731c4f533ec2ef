// Package audit provides the audit event model, sink implementations, and the
// asynchronous dispatcher used by the goPortal session manager.
//
// # Architecture boundaries
//
// This package owns event buffering and delivery. It does NOT decide which events
// exist or when they fire — event names and emission points belong to the root
// package.
//
// # What this package must NOT do
//
//   - Import goPortal or any sibling package (no upward imports).
//   - Block a session operation on a slow sink: delivery is asynchronous and,
//     when configured, lossy under backpressure.
package audit
