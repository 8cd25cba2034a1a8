// Package telemetry records start/end/error events for CLI invocations.
//
// A Recorder buffers events in process-scoped state and publishes them
// through a pluggable Handler on Flush. Two handlers ship with the
// package: MemorySink for tests and FileSink, which appends JSON lines to
// a local file. Recording is strictly best-effort — handler failures are
// dropped and a walk's outcome is never affected by telemetry.
//
// Reporting is opt-in, controlled by ~/.cascade/config.yaml or the
// CASCADE_TELEMETRY_ENABLED environment variable. The distinct id sent
// with every event is an HMAC of the machine identity, so the raw machine
// id never appears in a sink.
package telemetry
