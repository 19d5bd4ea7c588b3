// Package cmd implements the command-line interface of dStruct. It provides a
// hierarchical command structure with one command group per structure kind.
//
// The package is organized into several subpackages:
//
//   - kv: Commands for key-value namespaces (set, get, del, ttl, all, perf, ...)
//   - queue: Commands for queues and, with --lifo, stacks (push, pop, list, ...)
//   - stream: Commands for streams read through consumer groups (append, read, ack, ...)
//   - pubsub: Commands for publishing to and subscribing to channels
//   - util: Shared utilities for command-line processing and configuration (internal use)
//
// See dstruct -help for a list of all commands.
package cmd
