// Package client holds the network configuration shared by every
// transaction and query, and the transport used to reach the nodes.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/hederacore/hedera-core/pkg/identity"
	"github.com/hederacore/hedera-core/pkg/ledger"
)

const (
	// DefaultTransactionFee is the max fee (in tinybars) the operator is
	// willing to pay for a transaction, if not set otherwise
	DefaultTransactionFee = 100_000_000
	// DefaultValidDuration is the default validity window of a transaction
	DefaultValidDuration = 120 * time.Second
	// DefaultRequestTimeout bounds every request made to a node
	DefaultRequestTimeout = 30 * time.Second
)

var (
	// ErrNullNodes is returned if the client is given no nodes
	ErrNullNodes = errors.New("node list must not be empty")
	// ErrNullTransport ...
	ErrNullTransport = errors.New("transport must not be null")
	// ErrDuplicatedNode is returned if two nodes share the same account id
	ErrDuplicatedNode = errors.New("node account ids must be unique")
	// ErrInvalidValidDuration is returned for a valid duration outside (0, 180s]
	ErrInvalidValidDuration = errors.New(
		"transaction valid duration must be in the range (0, 180s]",
	)
	// ErrUnknownNode is returned when routing a request to a node that is not
	// part of the client's network
	ErrUnknownNode = errors.New("unknown node")
)

const maxValidDuration = 180 * time.Second

// Transport submits encoded requests to a node and returns the encoded
// response. Implementations must be safe for concurrent use.
type Transport interface {
	Submit(
		ctx context.Context, node ledger.AccountID, method string, payload []byte,
	) ([]byte, error)
	Close() error
}

// Node is a network participant requests can be sent to
type Node struct {
	AccountID ledger.AccountID
	Address   string
}

func (n Node) String() string {
	return fmt.Sprintf("%s@%s", n.AccountID, n.Address)
}

// Operator is the default account paying for and signing transactions. The
// public key is optional and, when known, execution checks that the
// operator's signature is attached.
type Operator struct {
	AccountID ledger.AccountID
	PublicKey *identity.PublicKey
}

// Opts is the struct given to New and Dial functions
type Opts struct {
	Nodes          []Node
	Operator       *Operator
	TransactionFee uint64
	ValidDuration  time.Duration
	RequestTimeout time.Duration
	// MaxRequestsPerSecond throttles requests to every node, 0 means unlimited.
	// Used by Dial only.
	MaxRequestsPerSecond int
	// Transport is mandatory for New and ignored by Dial
	Transport Transport
}

func (o *Opts) validate() error {
	if len(o.Nodes) <= 0 {
		return ErrNullNodes
	}
	seen := make(map[ledger.AccountID]bool, len(o.Nodes))
	for _, n := range o.Nodes {
		if seen[n.AccountID] {
			return ErrDuplicatedNode
		}
		seen[n.AccountID] = true
	}
	if o.ValidDuration < 0 || o.ValidDuration > maxValidDuration {
		return ErrInvalidValidDuration
	}
	if o.MaxRequestsPerSecond < 0 {
		return fmt.Errorf("max requests per second must not be negative")
	}

	if o.TransactionFee == 0 {
		o.TransactionFee = DefaultTransactionFee
	}
	if o.ValidDuration == 0 {
		o.ValidDuration = DefaultValidDuration
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = DefaultRequestTimeout
	}
	return nil
}

// Client is the immutable network configuration referenced by transactions
// and queries. It can be shared by any number of goroutines.
type Client struct {
	nodes          []Node
	operator       *Operator
	transactionFee uint64
	validDuration  time.Duration
	requestTimeout time.Duration
	transport      Transport

	next atomic.Uint64
}

// New returns a Client sending requests through the given transport
func New(opts Opts) (*Client, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Transport == nil {
		return nil, ErrNullTransport
	}
	return newClient(opts), nil
}

// Dial returns a Client connected to the given nodes through gRPC
func Dial(ctx context.Context, opts Opts) (*Client, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	transport, err := newGRPCTransport(ctx, opts.Nodes, opts.MaxRequestsPerSecond)
	if err != nil {
		return nil, err
	}
	opts.Transport = transport
	return newClient(opts), nil
}

func newClient(opts Opts) *Client {
	var operator *Operator
	if opts.Operator != nil {
		op := *opts.Operator
		operator = &op
	}
	return &Client{
		nodes:          append([]Node(nil), opts.Nodes...),
		operator:       operator,
		transactionFee: opts.TransactionFee,
		validDuration:  opts.ValidDuration,
		requestTimeout: opts.RequestTimeout,
		transport:      opts.Transport,
	}
}

// Nodes returns the nodes of the network
func (c *Client) Nodes() []Node {
	return append([]Node(nil), c.nodes...)
}

// HasNode returns whether the given account is a node of the network
func (c *Client) HasNode(id ledger.AccountID) bool {
	for _, n := range c.nodes {
		if n.AccountID == id {
			return true
		}
	}
	return false
}

// PickNode selects the node to send the next request to, in round-robin
func (c *Client) PickNode() ledger.AccountID {
	i := c.next.Add(1) - 1
	return c.nodes[i%uint64(len(c.nodes))].AccountID
}

// Operator returns a copy of the default operator, if any
func (c *Client) Operator() (Operator, bool) {
	if c.operator == nil {
		return Operator{}, false
	}
	return *c.operator, true
}

// TransactionFee returns the default max transaction fee in tinybars
func (c *Client) TransactionFee() uint64 {
	return c.transactionFee
}

// ValidDuration returns the default validity window of transactions
func (c *Client) ValidDuration() time.Duration {
	return c.validDuration
}

// RequestTimeout returns the deadline applied to each request
func (c *Client) RequestTimeout() time.Duration {
	return c.requestTimeout
}

// Submit sends the payload to the given node within the request timeout.
// Every failure is returned as a *ledger.TransportError.
func (c *Client) Submit(
	ctx context.Context, node ledger.AccountID, method string, payload []byte,
) ([]byte, error) {
	if !c.HasNode(node) {
		return nil, &ledger.TransportError{Node: node, Err: ErrUnknownNode}
	}

	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	resp, err := c.transport.Submit(ctx, node, method, payload)
	if err != nil {
		var transportErr *ledger.TransportError
		if errors.As(err, &transportErr) {
			return nil, err
		}
		return nil, &ledger.TransportError{Node: node, Err: err}
	}
	return resp, nil
}

// Close releases the connections held by the transport
func (c *Client) Close() error {
	return c.transport.Close()
}
