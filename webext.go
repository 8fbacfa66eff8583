// Package webext turns browser-extension API reference pages into a typed
// schema suitable for binding generation. A reference page describes one
// namespace: its types, properties, methods and events, written as loosely
// structured HTML tables.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, jennifer/).
package webext
