// Package rstore implements the store capability interfaces on top of a Redis
// compatible server. Every adapter is a thin, typed wrapper around native server
// commands; all state lives on the server, so several processes can share a
// structure by using the same name.
//
// Adapters:
//
//   - KeyValue: a namespace of string keys (physical key "<name>:<key>") with optional TTL
//   - List: an indexed list (RPUSH/LINDEX/LRANGE/LREM)
//   - Queue and Stack: ordered containers sharing one implementation, popping
//     at the head (FIFO) or at the tail (LIFO)
//   - Set and SortedSet: membership by encoded value, the sorted set with a float score
//   - Hash: a field map in a single remote hash
//   - Stream: an append-only log consumed through a consumer group
//   - PubSub: fire-and-forget channels with callback subscriptions
//
// Construction:
//
//	Each constructor takes a context, the structure name, a common.ClientConfig and an
//	optional codec.ICodec (nil selects JSON). It connects and verifies the connection
//	with a PING before returning, so a returned adapter is always usable:
//
//	q, err := rstore.NewQueue[Job](ctx, "jobs", common.DefaultClientConfig(), nil)
//	if errors.Is(err, store.ErrConnection) { ... }
//
// Stream Semantics:
//
//	NewStream creates the consumer group at the start of the stream (creating the
//	stream if needed) and reuses an existing group. Read fetches new entries for the
//	group, acknowledges all of them and only then decodes them. A crash between read
//	and processing therefore loses the entry: delivery is at-most-once. Pending and
//	Acknowledge exist for entries delivered through other clients.
//
// Missing Values:
//
//	Reads of absent values return the zero value and loaded == false. The server's nil
//	reply never reaches the caller as an error.
//
// Logging and Metrics:
//
//	The package logs through the "rstore" dragonboat logger. Every operation is counted
//	in the VictoriaMetrics default set as dstruct_operations_total{structure,op} (and
//	dstruct_operation_errors_total on failure); acknowledged stream entries are counted in
//	dstruct_stream_acked_total{stream}.
package rstore
