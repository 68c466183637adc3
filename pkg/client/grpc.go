package client

import (
	"context"
	"fmt"

	"github.com/hederacore/hedera-core/pkg/circuitbreaker"
	"github.com/hederacore/hedera-core/pkg/ledger"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

var (
	// maxMsgRecvSize is the largest message our client will receive. We
	// set this to 20MiB atm.
	maxMsgRecvSize = grpc.MaxCallRecvMsgSize(1 * 1024 * 1024 * 20)
)

// rawCodec passes already encoded protobuf messages through gRPC untouched.
// It is named "proto" so that requests carry the content type nodes expect.
type rawCodec struct{}

func (rawCodec) Marshal(v interface{}) ([]byte, error) {
	switch m := v.(type) {
	case []byte:
		return m, nil
	case *[]byte:
		return *m, nil
	default:
		return nil, fmt.Errorf("raw codec: unexpected message type %T", v)
	}
}

func (rawCodec) Unmarshal(data []byte, v interface{}) error {
	out, ok := v.(*[]byte)
	if !ok {
		return fmt.Errorf("raw codec: unexpected message type %T", v)
	}
	*out = append((*out)[:0], data...)
	return nil
}

func (rawCodec) Name() string { return "proto" }

type nodeConn struct {
	cc      *grpc.ClientConn
	breaker *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter
}

// grpcTransport keeps one connection per node. Requests are never retried:
// a tripped circuit breaker fails fast until the node recovers.
type grpcTransport struct {
	conns map[ledger.AccountID]*nodeConn
}

func newGRPCTransport(
	ctx context.Context, nodes []Node, maxRequestsPerSecond int,
) (*grpcTransport, error) {
	t := &grpcTransport{conns: make(map[ledger.AccountID]*nodeConn, len(nodes))}

	for _, n := range nodes {
		cc, err := grpc.DialContext(
			ctx, n.Address,
			grpc.WithTransportCredentials(insecure.NewCredentials()),
			unaryInterceptor(n.AccountID.String()),
			grpc.WithDefaultCallOptions(
				grpc.ForceCodec(rawCodec{}), maxMsgRecvSize,
			),
		)
		if err != nil {
			t.Close()
			return nil, fmt.Errorf("dial node %s: %w", n, err)
		}

		limiter := ratelimit.NewUnlimited()
		if maxRequestsPerSecond > 0 {
			limiter = ratelimit.New(maxRequestsPerSecond)
		}

		t.conns[n.AccountID] = &nodeConn{
			cc:      cc,
			breaker: circuitbreaker.NewCircuitBreaker(n.AccountID.String()),
			limiter: limiter,
		}
	}
	return t, nil
}

func (t *grpcTransport) Submit(
	ctx context.Context, node ledger.AccountID, method string, payload []byte,
) ([]byte, error) {
	conn, ok := t.conns[node]
	if !ok {
		return nil, &ledger.TransportError{Node: node, Err: ErrUnknownNode}
	}

	conn.limiter.Take()

	resp, err := conn.breaker.Execute(func() (interface{}, error) {
		var out []byte
		if err := conn.cc.Invoke(ctx, method, payload, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"node":   node.String(),
			"method": method,
		}).Debug("request to node failed")
		return nil, &ledger.TransportError{Node: node, Err: err}
	}
	return resp.([]byte), nil
}

func (t *grpcTransport) Close() error {
	var firstErr error
	for _, conn := range t.conns {
		if err := conn.cc.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
