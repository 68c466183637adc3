package protocol

import (
	"github.com/hederacore/hedera-core/pkg/client"
	"github.com/hederacore/hedera-core/pkg/identity"
	"github.com/hederacore/hedera-core/pkg/ledger"
	"github.com/hederacore/hedera-core/pkg/proto"
)

// CryptoTransferTransaction moves tinybars between accounts. The amounts are
// expected to sum to zero, which is enforced by the network.
type CryptoTransferTransaction struct {
	Transaction
	body *proto.CryptoTransferTransactionBody
}

// NewCryptoTransferTransaction returns a transfer with no adjustments
func NewCryptoTransferTransaction(c *client.Client) *CryptoTransferTransaction {
	body := &proto.CryptoTransferTransactionBody{Transfers: &proto.TransferList{}}
	return &CryptoTransferTransaction{
		Transaction: newTransaction(c, methodCryptoTransfer, body),
		body:        body,
	}
}

// AddTransfer appends an adjustment of the given account balance, negative for
// the sender. Transfers are encoded in the order they are added.
func (tx *CryptoTransferTransaction) AddTransfer(
	id ledger.AccountID, tinybars int64,
) *CryptoTransferTransaction {
	if tx.mutable("transfer") {
		tx.body.Transfers.AccountAmounts = append(
			tx.body.Transfers.AccountAmounts,
			&proto.AccountAmount{AccountID: accountIDToProto(id), Amount: tinybars},
		)
	}
	return tx
}

// Transfers returns the adjustments in insertion order
func (tx *CryptoTransferTransaction) Transfers() []ledger.AccountAmount {
	transfers := make([]ledger.AccountAmount, 0, len(tx.body.Transfers.AccountAmounts))
	for _, t := range tx.body.Transfers.AccountAmounts {
		transfers = append(transfers, ledger.AccountAmount{
			AccountID: accountIDFromProto(t.AccountID),
			Amount:    t.Amount,
		})
	}
	return transfers
}

// SetOperator sets the account paying for the transfer
func (tx *CryptoTransferTransaction) SetOperator(id ledger.AccountID) *CryptoTransferTransaction {
	tx.Transaction.SetOperator(id)
	return tx
}

// SetNode sets the node the transfer is submitted to
func (tx *CryptoTransferTransaction) SetNode(id ledger.AccountID) *CryptoTransferTransaction {
	tx.Transaction.SetNode(id)
	return tx
}

// SetMemo attaches a short note to the transfer
func (tx *CryptoTransferTransaction) SetMemo(memo string) *CryptoTransferTransaction {
	tx.Transaction.SetMemo(memo)
	return tx
}

// SetTransactionFee sets the max fee in tinybars paid for the transfer
func (tx *CryptoTransferTransaction) SetTransactionFee(fee uint64) *CryptoTransferTransaction {
	tx.Transaction.SetTransactionFee(fee)
	return tx
}

// Sign adds the signature of a sender, or of the operator, to the transfer
func (tx *CryptoTransferTransaction) Sign(key *identity.SecretKey) *CryptoTransferTransaction {
	tx.Transaction.Sign(key)
	return tx
}
