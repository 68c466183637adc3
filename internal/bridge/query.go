package bridge

import (
	"context"
	"fmt"

	"github.com/hederacore/hedera-core/pkg/ledger"
	"github.com/hederacore/hedera-core/pkg/protocol"
)

// query is a query owned by a foreign caller along with the reference to the
// client it was created from
type query[A any] struct {
	*protocol.Query[A]
	client *sharedClient
}

type (
	balanceQuery = query[uint64]
	recordsQuery = query[[]ledger.TransactionRecord]
)

// records is the answer of an account records query, owned by the caller
type records []ledger.TransactionRecord

// QueryAccountBalanceNew borrows the client to create a query for the balance
// of the account
func (b *Bridge) QueryAccountBalanceNew(
	clientHandle Handle, id ledger.AccountID,
) (h Handle, status Status) {
	defer guard("query_account_balance_new", &status)

	c, err := b.retainClient(clientHandle)
	if err != nil {
		return 0, StatusOf(err)
	}
	return b.handles.Put(&balanceQuery{
		Query:  protocol.NewAccountBalanceQuery(c.Client, id),
		client: c,
	}), StatusOK
}

// QueryAccountRecordsNew borrows the client to create a query for the records
// of the account
func (b *Bridge) QueryAccountRecordsNew(
	clientHandle Handle, id ledger.AccountID,
) (h Handle, status Status) {
	defer guard("query_account_records_new", &status)

	c, err := b.retainClient(clientHandle)
	if err != nil {
		return 0, StatusOf(err)
	}
	return b.handles.Put(&recordsQuery{
		Query:  protocol.NewAccountRecordsQuery(c.Client, id),
		client: c,
	}), StatusOK
}

// QuerySetNode sets the node any kind of query is sent to
func (b *Bridge) QuerySetNode(h Handle, id ledger.AccountID) (status Status) {
	defer guard("query_set_node", &status)

	v, err := b.handles.Take(h)
	if err != nil {
		return StatusOf(err)
	}
	defer b.handles.Return(h)

	switch q := v.(type) {
	case *balanceQuery:
		return StatusOf(q.SetNode(id).Err())
	case *recordsQuery:
		return StatusOf(q.SetNode(id).Err())
	}
	return StatusOf(fmt.Errorf("%w: handle refers to %T, expected a query", ledger.ErrInvalidState, v))
}

// QueryAccountBalanceExecute consumes the query and returns the balance in
// tinybars
func (b *Bridge) QueryAccountBalanceExecute(h Handle) (balance uint64, status Status) {
	defer guard("query_account_balance_execute", &status)

	q, err := consume[*balanceQuery](b, h)
	if err != nil {
		return 0, StatusOf(err)
	}
	defer q.client.release()

	balance, err = q.Execute(context.Background())
	if err != nil {
		return 0, StatusOf(err)
	}
	return balance, StatusOK
}

// QueryAccountRecordsExecute consumes the query and returns a handle to the
// list of records, to be freed with RecordsFree
func (b *Bridge) QueryAccountRecordsExecute(h Handle) (list Handle, status Status) {
	defer guard("query_account_records_execute", &status)

	q, err := consume[*recordsQuery](b, h)
	if err != nil {
		return 0, StatusOf(err)
	}
	defer q.client.release()

	answer, err := q.Execute(context.Background())
	if err != nil {
		return 0, StatusOf(err)
	}
	return b.handles.Put(records(answer)), StatusOK
}

// QueryFree frees a query that is not going to be executed
func (b *Bridge) QueryFree(h Handle) (status Status) {
	defer guard("query_free", &status)

	v, err := b.handles.Take(h)
	if err != nil {
		return StatusOf(err)
	}

	var shared *sharedClient
	switch q := v.(type) {
	case *balanceQuery:
		shared = q.client
	case *recordsQuery:
		shared = q.client
	}
	if err := b.handles.Return(h); err != nil {
		return StatusOf(err)
	}
	if shared == nil {
		return StatusOf(fmt.Errorf("%w: handle refers to %T, expected a query", ledger.ErrInvalidState, v))
	}

	if _, err := b.handles.Release(h); err != nil {
		return StatusOf(err)
	}
	shared.release()
	return StatusOK
}

// RecordsLen returns the number of records of the list
func (b *Bridge) RecordsLen(h Handle) (n int, status Status) {
	defer guard("records_len", &status)

	err := borrow(b, h, func(list records) error {
		n = len(list)
		return nil
	})
	return n, StatusOf(err)
}

// RecordsGet returns the i-th record of the list
func (b *Bridge) RecordsGet(h Handle, i int) (record ledger.TransactionRecord, status Status) {
	defer guard("records_get", &status)

	err := borrow(b, h, func(list records) error {
		if i < 0 || i >= len(list) {
			return fmt.Errorf(
				"%w: record index %d out of range [0, %d)", ledger.ErrInvalidState, i, len(list),
			)
		}
		record = list[i]
		return nil
	})
	return record, StatusOf(err)
}

// RecordsFree ...
func (b *Bridge) RecordsFree(h Handle) (status Status) {
	defer guard("records_free", &status)

	_, err := consume[records](b, h)
	return StatusOf(err)
}
