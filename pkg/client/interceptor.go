package client

import (
	"context"
	"time"

	middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	"github.com/hederacore/hedera-core/pkg/stats"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

// unaryInterceptor returns the interceptor chain of the connection to node
func unaryInterceptor(node string) grpc.DialOption {
	return grpc.WithUnaryInterceptor(
		middleware.ChainUnaryClient(
			unaryLogger(node),
			unaryMetrics(node),
		),
	)
}

func unaryLogger(node string) grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		log.WithField("node", node).Debug(method)
		return invoker(ctx, method, req, reply, cc, opts...)
	}
}

func unaryMetrics(node string) grpc.UnaryClientInterceptor {
	return func(
		ctx context.Context,
		method string,
		req, reply interface{},
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		start := time.Now()
		err := invoker(ctx, method, req, reply, cc, opts...)
		stats.ObserveRequest(node, method, err, time.Since(start))
		return err
	}
}
