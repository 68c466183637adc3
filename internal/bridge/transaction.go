package bridge

import (
	"context"
	"fmt"

	"github.com/hederacore/hedera-core/pkg/identity"
	"github.com/hederacore/hedera-core/pkg/ledger"
	"github.com/hederacore/hedera-core/pkg/protocol"
)

type variant interface {
	Base() *protocol.Transaction
}

// transaction is a transaction owned by a foreign caller along with the
// reference to the client it was created from
type transaction struct {
	variant
	client *sharedClient
}

func (b *Bridge) newTransaction(
	clientHandle Handle, build func(c *sharedClient) variant,
) (Handle, Status) {
	c, err := b.retainClient(clientHandle)
	if err != nil {
		return 0, StatusOf(err)
	}
	return b.handles.Put(&transaction{variant: build(c), client: c}), StatusOK
}

// TransactionCreateAccountNew borrows the client to create an account
// creation transaction
func (b *Bridge) TransactionCreateAccountNew(clientHandle Handle) (h Handle, status Status) {
	defer guard("transaction_create_account_new", &status)

	return b.newTransaction(clientHandle, func(c *sharedClient) variant {
		return protocol.NewCryptoCreateTransaction(c.Client)
	})
}

// TransactionCryptoTransferNew creates an empty transfer from the client
func (b *Bridge) TransactionCryptoTransferNew(clientHandle Handle) (h Handle, status Status) {
	defer guard("transaction_crypto_transfer_new", &status)

	return b.newTransaction(clientHandle, func(c *sharedClient) variant {
		return protocol.NewCryptoTransferTransaction(c.Client)
	})
}

// TransactionCryptoUpdateNew creates an account update from the client
func (b *Bridge) TransactionCryptoUpdateNew(clientHandle Handle) (h Handle, status Status) {
	defer guard("transaction_crypto_update_new", &status)

	return b.newTransaction(clientHandle, func(c *sharedClient) variant {
		return protocol.NewCryptoUpdateTransaction(c.Client)
	})
}

// mutate borrows the transaction, applies fn and reports the first misuse
// recorded on the transaction
func (b *Bridge) mutate(h Handle, fn func(tx *transaction) error) Status {
	return StatusOf(borrow(b, h, func(tx *transaction) error {
		if err := fn(tx); err != nil {
			return err
		}
		return tx.Base().Err()
	}))
}

// mutateAs is mutate restricted to transactions of variant T
func mutateAs[T variant](b *Bridge, h Handle, fn func(T)) Status {
	return b.mutate(h, func(tx *transaction) error {
		v, ok := tx.variant.(T)
		if !ok {
			var want T
			return fmt.Errorf(
				"%w: transaction is a %T, expected %T",
				ledger.ErrInvalidState, tx.variant, want,
			)
		}
		fn(v)
		return nil
	})
}

// TransactionSetOperator sets the account paying for the transaction
func (b *Bridge) TransactionSetOperator(h Handle, id ledger.AccountID) (status Status) {
	defer guard("transaction_set_operator", &status)

	return b.mutate(h, func(tx *transaction) error {
		tx.Base().SetOperator(id)
		return nil
	})
}

// TransactionSetNode sets the node the transaction is submitted to, which must
// be one of the client's nodes
func (b *Bridge) TransactionSetNode(h Handle, id ledger.AccountID) (status Status) {
	defer guard("transaction_set_node", &status)

	return b.mutate(h, func(tx *transaction) error {
		tx.Base().SetNode(id)
		return nil
	})
}

func (b *Bridge) TransactionSetMemo(h Handle, memo string) (status Status) {
	defer guard("transaction_set_memo", &status)

	return b.mutate(h, func(tx *transaction) error {
		tx.Base().SetMemo(memo)
		return nil
	})
}

// TransactionSetTransactionFee sets the max fee in tinybars
func (b *Bridge) TransactionSetTransactionFee(h Handle, fee uint64) (status Status) {
	defer guard("transaction_set_transaction_fee", &status)

	return b.mutate(h, func(tx *transaction) error {
		tx.Base().SetTransactionFee(fee)
		return nil
	})
}

// TransactionSign signs the transaction with the borrowed secret key
func (b *Bridge) TransactionSign(h Handle, secret Handle) (status Status) {
	defer guard("transaction_sign", &status)

	return b.mutate(h, func(tx *transaction) error {
		return borrow(b, secret, func(key *identity.SecretKey) error {
			tx.Base().Sign(key)
			return nil
		})
	})
}

// TransactionExecute consumes the transaction and submits it. The handle is
// invalid afterwards, whatever the outcome.
func (b *Bridge) TransactionExecute(h Handle) (id ledger.TransactionID, status Status) {
	defer guard("transaction_execute", &status)

	tx, err := consume[*transaction](b, h)
	if err != nil {
		return ledger.TransactionID{}, StatusOf(err)
	}
	defer tx.client.release()

	id, err = tx.Base().Execute(context.Background())
	if err != nil {
		return ledger.TransactionID{}, StatusOf(err)
	}
	return id, StatusOK
}

// TransactionFree frees a transaction that is not going to be executed
func (b *Bridge) TransactionFree(h Handle) (status Status) {
	defer guard("transaction_free", &status)

	tx, err := consume[*transaction](b, h)
	if err != nil {
		return StatusOf(err)
	}
	tx.client.release()
	return StatusOK
}

// CreateAccountSetKey sets the key of the account to the borrowed public key
func (b *Bridge) CreateAccountSetKey(h Handle, public Handle) (status Status) {
	defer guard("create_account_set_key", &status)

	return b.mutate(h, func(tx *transaction) error {
		create, ok := tx.variant.(*protocol.CryptoCreateTransaction)
		if !ok {
			return fmt.Errorf("%w: not an account creation", ledger.ErrInvalidState)
		}
		return borrow(b, public, func(key identity.PublicKey) error {
			create.SetKey(key)
			return nil
		})
	})
}

// CreateAccountSetInitialBalance sets the tinybars funding the new account
func (b *Bridge) CreateAccountSetInitialBalance(h Handle, tinybars uint64) (status Status) {
	defer guard("create_account_set_initial_balance", &status)

	return mutateAs(b, h, func(tx *protocol.CryptoCreateTransaction) {
		tx.SetInitialBalance(tinybars)
	})
}

// CryptoTransferAddTransfer appends a balance adjustment, negative for the
// sender
func (b *Bridge) CryptoTransferAddTransfer(
	h Handle, id ledger.AccountID, tinybars int64,
) (status Status) {
	defer guard("crypto_transfer_add_transfer", &status)

	return mutateAs(b, h, func(tx *protocol.CryptoTransferTransaction) {
		tx.AddTransfer(id, tinybars)
	})
}

// CryptoUpdateSetAccountToUpdate sets the account whose properties change
func (b *Bridge) CryptoUpdateSetAccountToUpdate(h Handle, id ledger.AccountID) (status Status) {
	defer guard("crypto_update_set_account_id_to_update", &status)

	return mutateAs(b, h, func(tx *protocol.CryptoUpdateTransaction) {
		tx.SetAccountToUpdate(id)
	})
}

// CryptoUpdateSetKey sets the new key of the account to the borrowed public
// key
func (b *Bridge) CryptoUpdateSetKey(h Handle, public Handle) (status Status) {
	defer guard("crypto_update_set_key", &status)

	return b.mutate(h, func(tx *transaction) error {
		update, ok := tx.variant.(*protocol.CryptoUpdateTransaction)
		if !ok {
			return fmt.Errorf("%w: not an account update", ledger.ErrInvalidState)
		}
		return borrow(b, public, func(key identity.PublicKey) error {
			update.SetKey(key)
			return nil
		})
	})
}

func (b *Bridge) CryptoUpdateSetProxyAccount(h Handle, id ledger.AccountID) (status Status) {
	defer guard("crypto_update_set_proxy_account_id", &status)

	return mutateAs(b, h, func(tx *protocol.CryptoUpdateTransaction) {
		tx.SetProxyAccount(id)
	})
}

func (b *Bridge) CryptoUpdateSetProxyFraction(h Handle, fraction int32) (status Status) {
	defer guard("crypto_update_set_proxy_fraction", &status)

	return mutateAs(b, h, func(tx *protocol.CryptoUpdateTransaction) {
		tx.SetProxyFraction(fraction)
	})
}

// CryptoUpdateSetSendRecordThreshold sets the tinybars above which outgoing
// transfers generate a record
func (b *Bridge) CryptoUpdateSetSendRecordThreshold(h Handle, tinybars uint64) (status Status) {
	defer guard("crypto_update_set_send_record_threshold", &status)

	return mutateAs(b, h, func(tx *protocol.CryptoUpdateTransaction) {
		tx.SetSendRecordThreshold(tinybars)
	})
}

// CryptoUpdateSetReceiveRecordThreshold sets the tinybars above which
// incoming transfers generate a record
func (b *Bridge) CryptoUpdateSetReceiveRecordThreshold(h Handle, tinybars uint64) (status Status) {
	defer guard("crypto_update_set_receive_record_threshold", &status)

	return mutateAs(b, h, func(tx *protocol.CryptoUpdateTransaction) {
		tx.SetReceiveRecordThreshold(tinybars)
	})
}

// CryptoUpdateSetAutoRenewPeriod takes the period by value, with seconds
// precision
func (b *Bridge) CryptoUpdateSetAutoRenewPeriod(h Handle, d ledger.Duration) (status Status) {
	defer guard("crypto_update_set_auto_renew_period", &status)

	return mutateAs(b, h, func(tx *protocol.CryptoUpdateTransaction) {
		tx.SetAutoRenewPeriod(d.Std())
	})
}

func (b *Bridge) CryptoUpdateSetExpirationTime(h Handle, ts ledger.Timestamp) (status Status) {
	defer guard("crypto_update_set_expiration_time", &status)

	return mutateAs(b, h, func(tx *protocol.CryptoUpdateTransaction) {
		tx.SetExpirationTime(ts)
	})
}
