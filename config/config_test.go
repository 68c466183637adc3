package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hederacore/hedera-core/pkg/client"
	"github.com/hederacore/hedera-core/pkg/ledger"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopTransport struct{}

func (nopTransport) Submit(context.Context, ledger.AccountID, string, []byte) ([]byte, error) {
	return nil, nil
}

func (nopTransport) Close() error { return nil }

// withConfig overrides the given keys for the duration of the test
func withConfig(t *testing.T, values map[string]interface{}) {
	previous := make(map[string]interface{}, len(values))
	for key, value := range values {
		previous[key] = vip.Get(key)
		Set(key, value)
	}
	t.Cleanup(func() {
		for key, value := range previous {
			Set(key, value)
		}
	})
}

func TestDefaults(t *testing.T) {
	opts, err := ClientOpts()
	require.NoError(t, err)

	require.Len(t, opts.Nodes, 1)
	assert.Equal(t, ledger.NewAccountID(3), opts.Nodes[0].AccountID)
	assert.Nil(t, opts.Operator)
	assert.Equal(t, uint64(client.DefaultTransactionFee), opts.TransactionFee)
	assert.Equal(t, 120*time.Second, opts.ValidDuration)
	assert.Equal(t, 30*time.Second, opts.RequestTimeout)
	assert.Equal(t, log.InfoLevel, GetLogLevel())
}

func TestClientOpts(t *testing.T) {
	publicKey := strings.Repeat("ab", 32)
	withConfig(t, map[string]interface{}{
		NodesKey:                "0.0.3@node1:50211,0.0.4@node2:50211",
		OperatorIDKey:           "0.0.2",
		OperatorPublicKeyKey:    publicKey,
		TransactionFeeKey:       "0.5",
		RequestTimeoutKey:       500,
		MaxRequestsPerSecondKey: 10,
	})

	opts, err := ClientOpts()
	require.NoError(t, err)

	require.Len(t, opts.Nodes, 2)
	assert.Equal(t, "node2:50211", opts.Nodes[1].Address)
	require.NotNil(t, opts.Operator)
	assert.Equal(t, ledger.NewAccountID(2), opts.Operator.AccountID)
	require.NotNil(t, opts.Operator.PublicKey)
	assert.Equal(t, publicKey, opts.Operator.PublicKey.String())
	assert.Equal(t, uint64(50_000_000), opts.TransactionFee)
	assert.Equal(t, 500*time.Millisecond, opts.RequestTimeout)
	assert.Equal(t, 10, opts.MaxRequestsPerSecond)

	c, err := client.New(client.Opts{
		Nodes:     opts.Nodes,
		Operator:  opts.Operator,
		Transport: nopTransport{},
	})
	require.NoError(t, err)
	assert.Len(t, c.Nodes(), 2)
}

func TestFailingValidate(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]interface{}
	}{
		{"empty_nodes", map[string]interface{}{NodesKey: ""}},
		{"malformed_node", map[string]interface{}{NodesKey: "0.0.3"}},
		{"malformed_operator", map[string]interface{}{OperatorIDKey: "2"}},
		{"key_without_operator", map[string]interface{}{
			OperatorPublicKeyKey: strings.Repeat("ab", 32),
		}},
		{"malformed_public_key", map[string]interface{}{
			OperatorIDKey:        "0.0.2",
			OperatorPublicKeyKey: "abcd",
		}},
		{"valid_duration_too_long", map[string]interface{}{
			TransactionValidDurationKey: 181,
		}},
		{"malformed_fee", map[string]interface{}{TransactionFeeKey: "one"}},
		{"negative_fee", map[string]interface{}{TransactionFeeKey: "-1"}},
		{"fee_finer_than_tinybar", map[string]interface{}{
			TransactionFeeKey: "0.000000001",
		}},
		{"zero_request_timeout", map[string]interface{}{RequestTimeoutKey: 0}},
		{"negative_rate", map[string]interface{}{MaxRequestsPerSecondKey: -1}},
		{"log_level_out_of_range", map[string]interface{}{LogLevelKey: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withConfig(t, tt.values)

			require.Error(t, Validate())
			_, err := ClientOpts()
			require.Error(t, err)
		})
	}
}
