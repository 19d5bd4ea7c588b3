// Package store provides the uniform vocabulary for working with remote,
// server-managed data structures: key-value namespaces, lists, queues, stacks,
// sets, sorted sets, hash maps, append-only logs with consumer groups and
// publish/subscribe channels.
//
// The package focuses on:
//   - Capability interfaces grouping operations by native semantics instead of a
//     single rigid interface
//   - A structured error taxonomy shared by all adapter implementations
//   - The namespace/key scheme used to derive physical keys from structure names
//
// Key Components:
//
//   - Capability Interfaces: Keyed, Expiring, Ordered, Indexed, Membership, Scored,
//     Log and Channel describe what a structure can do. Sized and Clearer are shared
//     building blocks. An adapter implements every capability that matches the
//     remote structure (a queue is Ordered, a hash map is Keyed and Sized, ...).
//
//   - Error System: Error carries a RetCode. The sentinels ErrConnection, ErrAuth,
//     ErrTimeout, ErrGroupCreation, ErrDecode and ErrInvalidArgument are matched by
//     code with errors.Is. Errors that happen while talking to an already
//     connected store are not wrapped and reach the caller unchanged.
//
//   - KeyScheme: maps a logical structure name (and, for key-value namespaces, an
//     item key) to physical keys and back.
//
// Implementations:
//
//	The Redis-backed implementations live in the
//	"github.com/ValentinKolb/dStruct/lib/store/rstore" package. Conformance suites
//	for Keyed and Ordered implementations live in
//	"github.com/ValentinKolb/dStruct/lib/store/testing".
package store
