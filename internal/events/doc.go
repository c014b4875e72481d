// Package events optionally publishes route-computation outcomes to NATS
// (github.com/nats-io/nats.go) for downstream observability consumers —
// purely a side channel. Nothing in the planning path depends on a
// subscriber being present: publish failures are logged, never returned
// to the caller, and a nil *Publisher (no NATS URL configured) is a
// documented no-op.
package events
