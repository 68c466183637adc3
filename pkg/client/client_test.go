package client

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/hederacore/hedera-core/pkg/ledger"
	"github.com/hederacore/hedera-core/pkg/stats"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
)

type mockTransport struct {
	mock.Mock
}

func (m *mockTransport) Submit(
	ctx context.Context, node ledger.AccountID, method string, payload []byte,
) ([]byte, error) {
	args := m.Called(ctx, node, method, payload)
	var resp []byte
	if v := args.Get(0); v != nil {
		resp = v.([]byte)
	}
	return resp, args.Error(1)
}

func (m *mockTransport) Close() error {
	return m.Called().Error(0)
}

func testNodes() []Node {
	return []Node{
		{AccountID: ledger.NewAccountID(3), Address: "localhost:50211"},
		{AccountID: ledger.NewAccountID(4), Address: "localhost:50212"},
		{AccountID: ledger.NewAccountID(5), Address: "localhost:50213"},
	}
}

func TestNew(t *testing.T) {
	c, err := New(Opts{Nodes: testNodes(), Transport: &mockTransport{}})
	require.NoError(t, err)

	assert.Len(t, c.Nodes(), 3)
	assert.Equal(t, uint64(DefaultTransactionFee), c.TransactionFee())
	assert.Equal(t, DefaultValidDuration, c.ValidDuration())
	assert.Equal(t, DefaultRequestTimeout, c.RequestTimeout())
	_, ok := c.Operator()
	assert.False(t, ok)
}

func TestFailingNew(t *testing.T) {
	nodes := testNodes()

	tests := []struct {
		name          string
		opts          Opts
		expectedError error
	}{
		{
			name:          "null_nodes",
			opts:          Opts{Transport: &mockTransport{}},
			expectedError: ErrNullNodes,
		},
		{
			name:          "null_transport",
			opts:          Opts{Nodes: nodes},
			expectedError: ErrNullTransport,
		},
		{
			name: "duplicated_node",
			opts: Opts{
				Nodes:     append(nodes, nodes[0]),
				Transport: &mockTransport{},
			},
			expectedError: ErrDuplicatedNode,
		},
		{
			name: "valid_duration_too_long",
			opts: Opts{
				Nodes:         nodes,
				Transport:     &mockTransport{},
				ValidDuration: 181 * time.Second,
			},
			expectedError: ErrInvalidValidDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.opts)
			require.ErrorIs(t, err, tt.expectedError)
			require.Nil(t, c)
		})
	}
}

func TestOperatorIsCopied(t *testing.T) {
	op := &Operator{AccountID: ledger.NewAccountID(2)}
	c, err := New(Opts{Nodes: testNodes(), Operator: op, Transport: &mockTransport{}})
	require.NoError(t, err)

	op.AccountID = ledger.NewAccountID(42)

	got, ok := c.Operator()
	require.True(t, ok)
	assert.Equal(t, ledger.NewAccountID(2), got.AccountID)
}

func TestPickNodeRoundRobin(t *testing.T) {
	c, err := New(Opts{Nodes: testNodes(), Transport: &mockTransport{}})
	require.NoError(t, err)

	picked := make([]uint64, 0, 6)
	for i := 0; i < 6; i++ {
		picked = append(picked, c.PickNode().Account)
	}
	assert.Equal(t, []uint64{3, 4, 5, 3, 4, 5}, picked)
}

func TestPickNodeConcurrently(t *testing.T) {
	c, err := New(Opts{Nodes: testNodes(), Transport: &mockTransport{}})
	require.NoError(t, err)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		counts = map[uint64]int{}
	)
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := c.PickNode()
			mu.Lock()
			counts[id.Account]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, map[uint64]int{3: 10, 4: 10, 5: 10}, counts)
}

func TestSubmit(t *testing.T) {
	transport := &mockTransport{}
	node := ledger.NewAccountID(3)
	transport.On(
		"Submit", mock.Anything, node, "/proto.CryptoService/cryptoTransfer", []byte{1, 2},
	).Return([]byte{3, 4}, nil)

	c, err := New(Opts{Nodes: testNodes(), Transport: transport})
	require.NoError(t, err)

	resp, err := c.Submit(
		context.Background(), node, "/proto.CryptoService/cryptoTransfer", []byte{1, 2},
	)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 4}, resp)
	transport.AssertExpectations(t)
}

func TestFailingSubmit(t *testing.T) {
	node := ledger.NewAccountID(3)

	t.Run("unknown_node", func(t *testing.T) {
		c, err := New(Opts{Nodes: testNodes(), Transport: &mockTransport{}})
		require.NoError(t, err)

		_, err = c.Submit(context.Background(), ledger.NewAccountID(99), "m", nil)
		require.ErrorIs(t, err, ledger.ErrTransport)
		require.ErrorIs(t, err, ErrUnknownNode)
	})

	t.Run("transport_failure", func(t *testing.T) {
		transport := &mockTransport{}
		transport.On("Submit", mock.Anything, node, "m", []byte(nil)).
			Return(nil, errors.New("connection refused"))

		c, err := New(Opts{Nodes: testNodes(), Transport: transport})
		require.NoError(t, err)

		_, err = c.Submit(context.Background(), node, "m", nil)
		require.ErrorIs(t, err, ledger.ErrTransport)
		assert.Equal(t, ledger.KindTransport, ledger.KindOf(err))

		var transportErr *ledger.TransportError
		require.ErrorAs(t, err, &transportErr)
		assert.Equal(t, node, transportErr.Node)
	})

	t.Run("deadline_expired", func(t *testing.T) {
		transport := &mockTransport{}
		transport.On("Submit", mock.Anything, node, "m", []byte(nil)).
			Run(func(args mock.Arguments) {
				<-args.Get(0).(context.Context).Done()
			}).
			Return(nil, context.DeadlineExceeded)

		c, err := New(Opts{
			Nodes:          testNodes(),
			Transport:      transport,
			RequestTimeout: 10 * time.Millisecond,
		})
		require.NoError(t, err)

		_, err = c.Submit(context.Background(), node, "m", nil)
		require.ErrorIs(t, err, ledger.ErrTransport)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestParseNodes(t *testing.T) {
	nodes, err := ParseNodes("0.0.3@localhost:50211, 0.0.4@10.0.0.1:50211")
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "0.0.3@localhost:50211", nodes[0].String())
	assert.Equal(t, ledger.NewAccountID(4), nodes[1].AccountID)
	assert.Equal(t, "10.0.0.1:50211", nodes[1].Address)
}

func TestFailingParseNodes(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedError error
	}{
		{"empty", "", ErrNullNodes},
		{"missing_address", "0.0.3", ledger.ErrParse},
		{"empty_address", "0.0.3@", ledger.ErrParse},
		{"bad_account", "3@localhost:50211", ledger.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseNodes(tt.input)
			require.ErrorIs(t, err, tt.expectedError)
		})
	}
}

// newEchoServer starts a gRPC server answering any method with the reversed
// request payload.
func newEchoServer(t *testing.T) string {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := grpc.NewServer(
		grpc.ForceServerCodec(rawCodec{}),
		grpc.UnknownServiceHandler(func(_ interface{}, stream grpc.ServerStream) error {
			var in []byte
			if err := stream.RecvMsg(&in); err != nil {
				return err
			}
			out := make([]byte, len(in))
			for i, b := range in {
				out[len(in)-1-i] = b
			}
			return stream.SendMsg(out)
		}),
	)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	return lis.Addr().String()
}

func TestDial(t *testing.T) {
	addr := newEchoServer(t)
	node := ledger.NewAccountID(3)

	c, err := Dial(context.Background(), Opts{
		Nodes:                []Node{{AccountID: node, Address: addr}},
		MaxRequestsPerSecond: 100,
	})
	require.NoError(t, err)
	defer c.Close()

	resp, err := c.Submit(
		context.Background(), node, "/proto.CryptoService/cryptoGetBalance", []byte{1, 2, 3},
	)
	require.NoError(t, err)
	assert.Equal(t, []byte{3, 2, 1}, resp)

	assert.Equal(t, float64(1), testutil.ToFloat64(stats.RequestsTotal.WithLabelValues(
		"0.0.3", "/proto.CryptoService/cryptoGetBalance", "OK",
	)))
}

func TestDialUnreachableNode(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := lis.Addr().String()
	require.NoError(t, lis.Close())

	node := ledger.NewAccountID(3)
	c, err := Dial(context.Background(), Opts{
		Nodes:          []Node{{AccountID: node, Address: addr}},
		RequestTimeout: time.Second,
	})
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Submit(context.Background(), node, "/proto.CryptoService/cryptoGetBalance", nil)
	require.ErrorIs(t, err, ledger.ErrTransport)
}

func TestRawCodec(t *testing.T) {
	codec := rawCodec{}

	b, err := codec.Marshal([]byte{1})
	require.NoError(t, err)
	assert.Equal(t, []byte{1}, b)

	in := []byte{2}
	b, err = codec.Marshal(&in)
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, b)

	var out []byte
	require.NoError(t, codec.Unmarshal([]byte{5, 6}, &out))
	assert.Equal(t, []byte{5, 6}, out)

	_, err = codec.Marshal("not bytes")
	assert.Error(t, err)
	assert.Error(t, codec.Unmarshal([]byte{1}, &struct{}{}))
	assert.Equal(t, "proto", codec.Name())
}
