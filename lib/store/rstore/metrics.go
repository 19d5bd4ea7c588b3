package rstore

import (
	"fmt"
	"github.com/VictoriaMetrics/metrics"
)

// recordOperation counts an adapter operation and, if err is not nil, its failure
func recordOperation(structure, op string, err error) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`dstruct_operations_total{structure=%q,op=%q}`, structure, op)).Inc()
	if err != nil {
		metrics.GetOrCreateCounter(fmt.Sprintf(`dstruct_operation_errors_total{structure=%q,op=%q}`, structure, op)).Inc()
	}
}

// recordAcks counts entries acknowledged for a stream
func recordAcks(stream string, n int64) {
	if n <= 0 {
		return
	}
	metrics.GetOrCreateCounter(fmt.Sprintf(`dstruct_stream_acked_total{stream=%q}`, stream)).Add(int(n))
}
