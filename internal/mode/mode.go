// Package mode captures the platform-specific permission/attribute bit
// layout for an indexed entry. Formatting those bits for display is the
// UI's job, not the index engine's (spec §1, out of scope); this package
// only extracts and stores the raw value.
package mode

// Mode is an opaque, platform-specific bit layout describing an entry's
// permissions and attributes. Its meaning depends on the platform the index
// was built on; the query engine only ever compares Modes for ordering, it
// never interprets the bits.
type Mode uint32
