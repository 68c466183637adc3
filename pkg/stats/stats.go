package stats

import (
	"bufio"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc/status"
)

var (
	// Registry gathers the metrics of the requests sent to the network nodes.
	Registry = prometheus.NewRegistry()

	// RequestsTotal counts requests per node, method and gRPC status code.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hedera",
			Subsystem: "node",
			Name:      "requests_total",
			Help:      "Number of requests sent to network nodes.",
		},
		[]string{"node", "method", "code"},
	)

	// RequestDuration tracks the round trip time of requests per node.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "hedera",
			Subsystem: "node",
			Name:      "request_duration_seconds",
			Help:      "Round trip time of requests sent to network nodes.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node"},
	)
)

func init() {
	Registry.MustRegister(RequestsTotal, RequestDuration)
}

// ObserveRequest records the outcome of a request made to the given node.
func ObserveRequest(node, method string, err error, elapsed time.Duration) {
	RequestsTotal.WithLabelValues(node, method, status.Code(err).String()).Inc()
	RequestDuration.WithLabelValues(node).Observe(elapsed.Seconds())
}

// Dump writes the gathered metric families to w, one per line.
func Dump(w io.Writer) error {
	writer := bufio.NewWriter(w)

	metricFamily, err := Registry.Gather()
	if err != nil {
		return err
	}
	for _, v := range metricFamily {
		if _, err := writer.WriteString(v.String() + "\n"); err != nil {
			return err
		}
	}

	return writer.Flush()
}
