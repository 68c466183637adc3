package bridge

import (
	"context"
	"sync/atomic"

	"github.com/hederacore/hedera-core/config"
	"github.com/hederacore/hedera-core/pkg/client"
	"github.com/hederacore/hedera-core/pkg/ledger"
	log "github.com/sirupsen/logrus"
)

// sharedClient is a client referenced by the caller's handle and by every
// transaction or query created from it. The connections are closed once the
// last reference is dropped.
type sharedClient struct {
	*client.Client
	refs atomic.Int32
}

func newSharedClient(c *client.Client) *sharedClient {
	s := &sharedClient{Client: c}
	s.refs.Store(1)
	return s
}

func (s *sharedClient) retain() *sharedClient {
	s.refs.Add(1)
	return s
}

func (s *sharedClient) release() {
	if s.refs.Add(-1) != 0 {
		return
	}
	if err := s.Close(); err != nil {
		log.WithError(err).Warn("failed to close client connections")
	}
}

// ClientNew connects to the given comma separated nodes. The operator is
// optional, the zero account id means none.
func (b *Bridge) ClientNew(nodes string, operator ledger.AccountID) (h Handle, status Status) {
	defer guard("client_new", &status)

	parsed, err := client.ParseNodes(nodes)
	if err != nil {
		return 0, StatusOf(err)
	}
	opts := client.Opts{Nodes: parsed}
	if !operator.IsZero() {
		opts.Operator = &client.Operator{AccountID: operator}
	}
	return b.newClient(opts)
}

// ClientNewFromEnv connects to the network configured through the HEDERA_*
// environment variables
func (b *Bridge) ClientNewFromEnv() (h Handle, status Status) {
	defer guard("client_new_from_env", &status)

	opts, err := config.ClientOpts()
	if err != nil {
		log.WithError(err).Debug("invalid client configuration")
		return 0, statusOr(err, StatusParse)
	}
	return b.newClient(opts)
}

func (b *Bridge) newClient(opts client.Opts) (Handle, Status) {
	c, err := b.dial(context.Background(), opts)
	if err != nil {
		return 0, statusOr(err, StatusInvalidState)
	}
	return b.handles.Put(newSharedClient(c)), StatusOK
}

// ClientFree drops the caller's reference to the client. Transactions and
// queries created from it keep working until they are executed or freed.
func (b *Bridge) ClientFree(h Handle) (status Status) {
	defer guard("client_free", &status)

	c, err := consume[*sharedClient](b, h)
	if err != nil {
		return StatusOf(err)
	}
	c.release()
	return StatusOK
}

// retainClient returns a new reference to the client of the handle. The
// handle is only peeked at, so that transactions and queries can be created
// from the same client concurrently.
func (b *Bridge) retainClient(h Handle) (*sharedClient, error) {
	var shared *sharedClient
	err := b.handles.Peek(h, func(v interface{}) error {
		c, ok := v.(*sharedClient)
		if !ok {
			return wrongType[*sharedClient](v)
		}
		shared = c.retain()
		return nil
	})
	return shared, err
}
