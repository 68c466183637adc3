// Package protocol builds, signs and submits transactions and queries to the
// ledger network through a client.Client.
package protocol

import (
	"context"
	"fmt"
	"time"

	"github.com/hederacore/hedera-core/pkg/client"
	"github.com/hederacore/hedera-core/pkg/identity"
	"github.com/hederacore/hedera-core/pkg/ledger"
	"github.com/hederacore/hedera-core/pkg/proto"
	log "github.com/sirupsen/logrus"
)

// now is swapped in tests to get reproducible transaction ids
var now = time.Now

// Transaction holds the state shared by every transaction variant. A
// transaction is built, signed one or more times and executed exactly once.
// The first signature freezes the body, so that every signature commits to
// the same bytes.
//
// Misuse, like setting a field once the body is frozen or after execution, is
// recorded and returned by Err and Execute. Transactions must not be used by
// multiple goroutines at once.
type Transaction struct {
	client *client.Client
	method string
	data   proto.TransactionData

	operator       *ledger.AccountID
	node           *ledger.AccountID
	memo           string
	transactionFee uint64
	validDuration  time.Duration
	transactionID  *ledger.TransactionID
	generateRecord bool

	body       *proto.TransactionBody
	bodyBytes  []byte
	signatures []*proto.SignaturePair
	signers    []identity.PublicKey

	executed bool
	err      error
}

func newTransaction(c *client.Client, method string, data proto.TransactionData) Transaction {
	return Transaction{client: c, method: method, data: data}
}

// Err returns the first misuse recorded on the transaction, if any
func (tx *Transaction) Err() error {
	return tx.err
}

// Base returns the variant independent part of the transaction
func (tx *Transaction) Base() *Transaction {
	return tx
}

// SetOperator sets the account paying for the transaction. If not set, the
// client's operator is used.
func (tx *Transaction) SetOperator(id ledger.AccountID) *Transaction {
	if tx.mutable("operator") {
		tx.operator = &id
	}
	return tx
}

// SetNode sets the node the transaction is submitted to. If not set, one of
// the client's nodes is selected.
func (tx *Transaction) SetNode(id ledger.AccountID) *Transaction {
	if !tx.mutable("node") {
		return tx
	}
	if !tx.client.HasNode(id) {
		tx.fail(fmt.Errorf("%w: node %s is not part of the network", ledger.ErrInvalidState, id))
		return tx
	}
	tx.node = &id
	return tx
}

// SetMemo attaches a short note to the transaction, kept in its record
func (tx *Transaction) SetMemo(memo string) *Transaction {
	if tx.mutable("memo") {
		tx.memo = memo
	}
	return tx
}

// SetTransactionFee sets the max fee in tinybars the operator is willing to
// pay
func (tx *Transaction) SetTransactionFee(fee uint64) *Transaction {
	if tx.mutable("transaction fee") {
		tx.transactionFee = fee
	}
	return tx
}

// SetValidDuration sets for how long after its valid start the transaction
// can reach consensus
func (tx *Transaction) SetValidDuration(d time.Duration) *Transaction {
	if tx.mutable("valid duration") {
		tx.validDuration = d
	}
	return tx
}

// SetTransactionID overrides the id otherwise derived from the operator and
// the current time
func (tx *Transaction) SetTransactionID(id ledger.TransactionID) *Transaction {
	if tx.mutable("transaction id") {
		tx.transactionID = &id
	}
	return tx
}

// SetGenerateRecord asks the network to keep a record of the transaction
func (tx *Transaction) SetGenerateRecord(generate bool) *Transaction {
	if tx.mutable("generate record") {
		tx.generateRecord = generate
	}
	return tx
}

// Sign appends the signature of the given key over the transaction body.
// Signatures are kept in the order they are added.
func (tx *Transaction) Sign(key *identity.SecretKey) *Transaction {
	if tx.err != nil {
		return tx
	}
	if tx.executed {
		tx.fail(fmt.Errorf("%w: cannot sign an executed transaction", ledger.ErrInvalidState))
		return tx
	}
	if key == nil {
		tx.fail(fmt.Errorf("%w: signing key must not be null", ledger.ErrInvalidState))
		return tx
	}
	if err := tx.freeze(); err != nil {
		tx.fail(err)
		return tx
	}

	public := key.Public()
	sig := key.Sign(tx.bodyBytes)
	tx.signatures = append(tx.signatures, &proto.SignaturePair{
		PubKeyPrefix: public.Bytes(),
		Ed25519:      sig.Bytes(),
	})
	tx.signers = append(tx.signers, public)
	return tx
}

// TransactionID returns the id of a frozen transaction
func (tx *Transaction) TransactionID() (ledger.TransactionID, bool) {
	if tx.body == nil {
		return ledger.TransactionID{}, false
	}
	return *tx.transactionID, true
}

// BodyBytes freezes the transaction and returns the bytes signatures are made
// over
func (tx *Transaction) BodyBytes() ([]byte, error) {
	if tx.err != nil {
		return nil, tx.err
	}
	if err := tx.freeze(); err != nil {
		return nil, err
	}
	return append([]byte(nil), tx.bodyBytes...), nil
}

// Bytes freezes the transaction and returns it signed and encoded, as it
// would be submitted
func (tx *Transaction) Bytes() ([]byte, error) {
	if tx.err != nil {
		return nil, tx.err
	}
	if err := tx.freeze(); err != nil {
		return nil, err
	}
	return tx.toProto().Marshal(), nil
}

// Execute submits the transaction and returns its id once the node has
// accepted it. It can be called only once, whatever the outcome.
func (tx *Transaction) Execute(ctx context.Context) (ledger.TransactionID, error) {
	if tx.executed {
		return ledger.TransactionID{}, fmt.Errorf(
			"%w: transaction already executed", ledger.ErrInvalidState,
		)
	}
	tx.executed = true

	if tx.err != nil {
		return ledger.TransactionID{}, tx.err
	}
	if err := tx.freeze(); err != nil {
		return ledger.TransactionID{}, err
	}
	if err := tx.checkSignatures(); err != nil {
		return ledger.TransactionID{}, err
	}

	txid := *tx.transactionID
	node := accountIDFromProto(tx.body.NodeAccountID)
	logger := log.WithFields(log.Fields{
		"transaction_id": txid.String(),
		"node":           node.String(),
		"method":         tx.method,
	})
	logger.Debug("submitting transaction")

	payload, err := tx.client.Submit(ctx, node, tx.method, tx.toProto().Marshal())
	if err != nil {
		logger.WithError(err).Debug("failed to submit transaction")
		return ledger.TransactionID{}, err
	}

	resp := &proto.TransactionResponse{}
	if err := resp.Unmarshal(payload); err != nil {
		return ledger.TransactionID{}, &ledger.TransportError{
			Node: node, Err: fmt.Errorf("decode transaction response: %w", err),
		}
	}

	code := ledger.PreCheckCode(resp.NodeTransactionPrecheckCode)
	if !code.IsOk() {
		logger.WithField("precheck", code.String()).Debug("transaction rejected")
		return ledger.TransactionID{}, &ledger.PreCheckError{Code: code}
	}

	logger.Debug("transaction accepted")
	return txid, nil
}

// mutable reports whether the named field can still be set and records the
// misuse otherwise
func (tx *Transaction) mutable(field string) bool {
	if tx.err != nil {
		return false
	}
	switch {
	case tx.executed:
		tx.fail(fmt.Errorf(
			"%w: cannot set %s on an executed transaction", ledger.ErrInvalidState, field,
		))
		return false
	case tx.body != nil:
		tx.fail(fmt.Errorf(
			"%w: cannot set %s on a signed transaction", ledger.ErrInvalidState, field,
		))
		return false
	}
	return true
}

func (tx *Transaction) fail(err error) {
	if tx.err == nil {
		tx.err = err
	}
}

// freeze fills the unset fields with the client's defaults and encodes the
// body. It is a no-op once the body is frozen.
func (tx *Transaction) freeze() error {
	if tx.body != nil {
		return nil
	}

	operator := tx.operator
	if operator == nil {
		if op, ok := tx.client.Operator(); ok {
			operator = &op.AccountID
		}
	}
	if operator == nil {
		return fmt.Errorf("%w: transaction has no operator", ledger.ErrInvalidState)
	}

	node := tx.node
	if node == nil {
		picked := tx.client.PickNode()
		node = &picked
	}

	fee := tx.transactionFee
	if fee == 0 {
		fee = tx.client.TransactionFee()
	}

	validDuration := tx.validDuration
	if validDuration <= 0 {
		validDuration = tx.client.ValidDuration()
	}

	txid := tx.transactionID
	if txid == nil {
		id := ledger.NewTransactionID(*operator, now())
		txid = &id
	}

	tx.operator, tx.node, tx.transactionID = operator, node, txid
	tx.body = &proto.TransactionBody{
		TransactionID:            transactionIDToProto(*txid),
		NodeAccountID:            accountIDToProto(*node),
		TransactionFee:           fee,
		TransactionValidDuration: durationToProto(ledger.DurationFromStd(validDuration)),
		GenerateRecord:           tx.generateRecord,
		Memo:                     tx.memo,
		Data:                     tx.data,
	}
	tx.bodyBytes = tx.body.Marshal()
	return nil
}

// checkSignatures requires the operator's signature when the client knows the
// operator's public key, or at least one signature otherwise
func (tx *Transaction) checkSignatures() error {
	if op, ok := tx.client.Operator(); ok && op.PublicKey != nil &&
		op.AccountID == *tx.operator {
		for _, signer := range tx.signers {
			if signer.Equal(*op.PublicKey) {
				return nil
			}
		}
		return fmt.Errorf("%w %s", ledger.ErrMissingSignature, op.AccountID)
	}

	if len(tx.signatures) <= 0 {
		return ledger.ErrMissingSignature
	}
	return nil
}

func (tx *Transaction) toProto() *proto.Transaction {
	return &proto.Transaction{
		SigMap:    &proto.SignatureMap{SigPair: tx.signatures},
		BodyBytes: tx.bodyBytes,
	}
}
