package protocol

import (
	"context"
	"fmt"

	"github.com/hederacore/hedera-core/pkg/client"
	"github.com/hederacore/hedera-core/pkg/ledger"
	"github.com/hederacore/hedera-core/pkg/proto"
	log "github.com/sirupsen/logrus"
)

// Query asks a node for a piece of state and decodes the answer as an A. A
// query is executed exactly once.
type Query[A any] struct {
	client *client.Client
	method string
	data   proto.QueryData
	answer func(proto.ResponseData) (A, error)

	node     *ledger.AccountID
	executed bool
	err      error
}

// NewAccountBalanceQuery returns a query for the balance in tinybars of the
// given account
func NewAccountBalanceQuery(c *client.Client, id ledger.AccountID) *Query[uint64] {
	return &Query[uint64]{
		client: c,
		method: methodGetAccountBalance,
		data: &proto.CryptoGetAccountBalanceQuery{
			Header:    answerOnlyHeader(),
			AccountID: accountIDToProto(id),
		},
		answer: func(data proto.ResponseData) (uint64, error) {
			resp, ok := data.(*proto.CryptoGetAccountBalanceResponse)
			if !ok {
				return 0, unexpectedResponse(data)
			}
			return resp.Balance, nil
		},
	}
}

// NewAccountRecordsQuery returns a query for the records of the transactions
// involving the given account, in the order the node returns them
func NewAccountRecordsQuery(
	c *client.Client, id ledger.AccountID,
) *Query[[]ledger.TransactionRecord] {
	return &Query[[]ledger.TransactionRecord]{
		client: c,
		method: methodGetAccountRecords,
		data: &proto.CryptoGetAccountRecordsQuery{
			Header:    answerOnlyHeader(),
			AccountID: accountIDToProto(id),
		},
		answer: func(data proto.ResponseData) ([]ledger.TransactionRecord, error) {
			resp, ok := data.(*proto.CryptoGetAccountRecordsResponse)
			if !ok {
				return nil, unexpectedResponse(data)
			}
			account := id
			if resp.AccountID != nil {
				account = accountIDFromProto(resp.AccountID)
			}
			records := make([]ledger.TransactionRecord, 0, len(resp.Records))
			for _, r := range resp.Records {
				records = append(records, recordFromProto(account, r))
			}
			return records, nil
		},
	}
}

// Err returns the first misuse recorded on the query, if any
func (q *Query[A]) Err() error {
	return q.err
}

// SetNode sets the node the query is sent to. If not set, one of the client's
// nodes is selected.
func (q *Query[A]) SetNode(id ledger.AccountID) *Query[A] {
	if q.err != nil {
		return q
	}
	if q.executed {
		q.err = fmt.Errorf("%w: cannot set node on an executed query", ledger.ErrInvalidState)
		return q
	}
	if !q.client.HasNode(id) {
		q.err = fmt.Errorf("%w: node %s is not part of the network", ledger.ErrInvalidState, id)
		return q
	}
	q.node = &id
	return q
}

// Execute sends the query and decodes the answer. The answer is read only if
// the node reports a successful precheck, otherwise a *ledger.PreCheckError is
// returned.
func (q *Query[A]) Execute(ctx context.Context) (A, error) {
	var zero A

	if q.executed {
		return zero, fmt.Errorf("%w: query already executed", ledger.ErrInvalidState)
	}
	q.executed = true

	if q.err != nil {
		return zero, q.err
	}

	node := q.client.PickNode()
	if q.node != nil {
		node = *q.node
	}
	logger := log.WithFields(log.Fields{
		"node":   node.String(),
		"method": q.method,
	})
	logger.Debug("sending query")

	payload, err := q.client.Submit(
		ctx, node, q.method, (&proto.Query{Data: q.data}).Marshal(),
	)
	if err != nil {
		logger.WithError(err).Debug("failed to send query")
		return zero, err
	}

	resp := &proto.Response{}
	if err := resp.Unmarshal(payload); err != nil {
		return zero, &ledger.TransportError{
			Node: node, Err: fmt.Errorf("decode query response: %w", err),
		}
	}
	if resp.Data == nil {
		return zero, &ledger.TransportError{
			Node: node, Err: fmt.Errorf("empty query response"),
		}
	}

	if header := resp.Data.GetHeader(); header != nil {
		code := ledger.PreCheckCode(header.NodeTransactionPrecheckCode)
		if !code.IsOk() {
			logger.WithField("precheck", code.String()).Debug("query rejected")
			return zero, &ledger.PreCheckError{Code: code}
		}
	}

	answer, err := q.answer(resp.Data)
	if err != nil {
		return zero, &ledger.TransportError{Node: node, Err: err}
	}
	return answer, nil
}

func answerOnlyHeader() *proto.QueryHeader {
	return &proto.QueryHeader{ResponseType: proto.AnswerOnly}
}

func unexpectedResponse(data proto.ResponseData) error {
	return fmt.Errorf("unexpected query response %T", data)
}
