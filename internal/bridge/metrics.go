package bridge

import (
	"strings"

	"github.com/hederacore/hedera-core/pkg/stats"
)

// MetricsDump returns the request metrics collected for the network nodes
func (b *Bridge) MetricsDump() (dump string, status Status) {
	defer guard("metrics_dump", &status)

	buf := &strings.Builder{}
	err := stats.Dump(buf)
	return buf.String(), StatusOf(err)
}
