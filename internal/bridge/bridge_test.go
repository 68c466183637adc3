package bridge

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hederacore/hedera-core/pkg/client"
	"github.com/hederacore/hedera-core/pkg/identity"
	"github.com/hederacore/hedera-core/pkg/ledger"
	"github.com/hederacore/hedera-core/pkg/proto"
	"github.com/hederacore/hedera-core/pkg/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var (
	operator = ledger.NewAccountID(2)
	node     = ledger.NewAccountID(3)
	alice    = ledger.NewAccountID(1001)
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

func newTestBridge(t *testing.T, transport *mockTransport) (*Bridge, Handle) {
	b := New()
	b.dial = func(_ context.Context, opts client.Opts) (*client.Client, error) {
		opts.Transport = transport
		return client.New(opts)
	}

	h, status := b.ClientNew("0.0.3@localhost:50211", operator)
	require.Equal(t, StatusOK, status)
	return b, h
}

func respond(transport *mockTransport, method string, resp []byte) {
	transport.On("Submit", mock.Anything, node, method, mock.Anything).Return(resp, nil)
}

func newKeyHandle(t *testing.T, b *Bridge) Handle {
	h, status := b.SecretKeyParse(strings.Repeat("01", identity.SecretKeySize))
	require.Equal(t, StatusOK, status)
	return h
}

func TestTransactionLifecycle(t *testing.T) {
	transport := &mockTransport{}
	respond(transport, "/proto.CryptoService/cryptoTransfer", nil)
	transport.On("Close").Return(nil).Once()

	b, c := newTestBridge(t, transport)
	key := newKeyHandle(t, b)

	tx, status := b.TransactionCryptoTransferNew(c)
	require.Equal(t, StatusOK, status)

	require.Equal(t, StatusOK, b.CryptoTransferAddTransfer(tx, operator, -100))
	require.Equal(t, StatusOK, b.CryptoTransferAddTransfer(tx, alice, 100))
	require.Equal(t, StatusOK, b.TransactionSetMemo(tx, "hello"))
	require.Equal(t, StatusOK, b.TransactionSign(tx, key))

	// client, key and transaction
	assert.Equal(t, 3, b.Len())

	id, status := b.TransactionExecute(tx)
	require.Equal(t, StatusOK, status)
	assert.Equal(t, operator, id.AccountID)

	// the executed handle is gone
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, StatusInvalidState, b.TransactionSetMemo(tx, "again"))
	_, status = b.TransactionExecute(tx)
	assert.Equal(t, StatusInvalidState, status)
	assert.Equal(t, StatusInvalidState, b.TransactionFree(tx))

	require.Equal(t, StatusOK, b.SecretKeyFree(key))
	require.Equal(t, StatusOK, b.ClientFree(c))
	assert.Zero(t, b.Len())
	transport.AssertNumberOfCalls(t, "Close", 1)
}

func TestClientOutlivesItsHandle(t *testing.T) {
	transport := &mockTransport{}
	respond(transport, "/proto.CryptoService/createAccount", nil)
	transport.On("Close").Return(nil).Once()

	b, c := newTestBridge(t, transport)
	key := newKeyHandle(t, b)
	public, status := b.SecretKeyPublic(key)
	require.Equal(t, StatusOK, status)

	tx, status := b.TransactionCreateAccountNew(c)
	require.Equal(t, StatusOK, status)
	require.Equal(t, StatusOK, b.CreateAccountSetKey(tx, public))
	require.Equal(t, StatusOK, b.CreateAccountSetInitialBalance(tx, 1000))
	require.Equal(t, StatusOK, b.TransactionSign(tx, key))

	require.Equal(t, StatusOK, b.ClientFree(c))
	transport.AssertNotCalled(t, "Close")

	_, status = b.TransactionExecute(tx)
	require.Equal(t, StatusOK, status)
	transport.AssertNumberOfCalls(t, "Close", 1)

	require.Equal(t, StatusOK, b.PublicKeyFree(public))
	require.Equal(t, StatusOK, b.SecretKeyFree(key))
	assert.Zero(t, b.Len())
}

func TestUnexecutedTransactionIsReleasedOnce(t *testing.T) {
	transport := &mockTransport{}
	transport.On("Close").Return(nil).Once()

	b, c := newTestBridge(t, transport)

	tx, status := b.TransactionCryptoUpdateNew(c)
	require.Equal(t, StatusOK, status)
	require.Equal(t, StatusOK, b.CryptoUpdateSetAccountToUpdate(tx, alice))
	require.Equal(t, StatusOK, b.CryptoUpdateSetProxyFraction(tx, 5))
	require.Equal(t, StatusOK, b.CryptoUpdateSetExpirationTime(tx, ledger.Timestamp{Seconds: 10}))

	require.Equal(t, StatusOK, b.TransactionFree(tx))
	assert.Equal(t, StatusInvalidState, b.TransactionFree(tx))

	require.Equal(t, StatusOK, b.ClientFree(c))
	assert.Equal(t, StatusInvalidState, b.ClientFree(c))

	assert.Zero(t, b.Len())
	transport.AssertNumberOfCalls(t, "Close", 1)
	transport.AssertNotCalled(t, "Submit")
}

func TestTransactionExecuteStatus(t *testing.T) {
	precheck := (&proto.TransactionResponse{
		NodeTransactionPrecheckCode: int32(ledger.PreCheckInsufficientPayerBalance),
	}).Marshal()

	t.Run("precheck", func(t *testing.T) {
		transport := &mockTransport{}
		respond(transport, "/proto.CryptoService/cryptoTransfer", precheck)
		transport.On("Close").Return(nil)

		b, c := newTestBridge(t, transport)
		key := newKeyHandle(t, b)
		tx, _ := b.TransactionCryptoTransferNew(c)
		require.Equal(t, StatusOK, b.TransactionSign(tx, key))

		_, status := b.TransactionExecute(tx)
		assert.Equal(t, StatusPreCheck, status.Kind())
		code, ok := status.PreCheckCode()
		require.True(t, ok)
		assert.Equal(t, ledger.PreCheckInsufficientPayerBalance, code)
	})

	t.Run("missing_signature", func(t *testing.T) {
		transport := &mockTransport{}
		transport.On("Close").Return(nil)

		b, c := newTestBridge(t, transport)
		tx, _ := b.TransactionCryptoTransferNew(c)

		_, status := b.TransactionExecute(tx)
		assert.Equal(t, StatusMissingSignature, status)
		transport.AssertNotCalled(t, "Submit")
	})
}

func TestMisusedTransactionHandles(t *testing.T) {
	transport := &mockTransport{}
	transport.On("Close").Return(nil)

	b, c := newTestBridge(t, transport)
	key := newKeyHandle(t, b)
	tx, _ := b.TransactionCryptoTransferNew(c)

	tests := []struct {
		name string
		op   func() Status
	}{
		{"null_handle", func() Status { return b.TransactionSetMemo(0, "memo") }},
		{"wrong_variant", func() Status { return b.CreateAccountSetInitialBalance(tx, 1) }},
		{"key_as_transaction", func() Status { return b.TransactionSetMemo(key, "memo") }},
		{"transaction_as_key", func() Status { return b.TransactionSign(tx, tx) }},
		{"client_as_transaction", func() Status {
			_, status := b.TransactionExecute(c)
			return status
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, StatusInvalidState, tt.op())
		})
	}

	// the misused handles are still owned by the caller
	assert.Equal(t, 3, b.Len())
	require.Equal(t, StatusOK, b.TransactionFree(tx))
	require.Equal(t, StatusOK, b.SecretKeyFree(key))
	require.Equal(t, StatusOK, b.ClientFree(c))
}

func TestQueries(t *testing.T) {
	balance := (&proto.Response{
		Data: &proto.CryptoGetAccountBalanceResponse{
			Header:  &proto.ResponseHeader{},
			Balance: 42,
		},
	}).Marshal()
	records := (&proto.Response{
		Data: &proto.CryptoGetAccountRecordsResponse{
			Header:    &proto.ResponseHeader{},
			AccountID: &proto.AccountID{AccountNum: 1001},
			Records: []*proto.TransactionRecord{
				{Memo: "first", TransactionFee: 1},
				{Memo: "second", TransactionFee: 2},
			},
		},
	}).Marshal()

	transport := &mockTransport{}
	respond(transport, "/proto.CryptoService/cryptoGetBalance", balance)
	respond(transport, "/proto.CryptoService/getAccountRecords", records)
	transport.On("Close").Return(nil).Once()

	b, c := newTestBridge(t, transport)

	q, status := b.QueryAccountBalanceNew(c, alice)
	require.Equal(t, StatusOK, status)
	require.Equal(t, StatusOK, b.QuerySetNode(q, node))
	got, status := b.QueryAccountBalanceExecute(q)
	require.Equal(t, StatusOK, status)
	assert.Equal(t, uint64(42), got)
	_, status = b.QueryAccountBalanceExecute(q)
	assert.Equal(t, StatusInvalidState, status)

	q, status = b.QueryAccountRecordsNew(c, alice)
	require.Equal(t, StatusOK, status)
	list, status := b.QueryAccountRecordsExecute(q)
	require.Equal(t, StatusOK, status)

	n, status := b.RecordsLen(list)
	require.Equal(t, StatusOK, status)
	require.Equal(t, 2, n)
	record, status := b.RecordsGet(list, 1)
	require.Equal(t, StatusOK, status)
	assert.Equal(t, "second", record.Memo)
	assert.Equal(t, alice, record.AccountID)
	_, status = b.RecordsGet(list, 2)
	assert.Equal(t, StatusInvalidState, status)
	require.Equal(t, StatusOK, b.RecordsFree(list))

	unused, status := b.QueryAccountBalanceNew(c, alice)
	require.Equal(t, StatusOK, status)
	require.Equal(t, StatusOK, b.QueryFree(unused))
	assert.Equal(t, StatusInvalidState, b.QueryFree(unused))

	require.Equal(t, StatusOK, b.ClientFree(c))
	assert.Zero(t, b.Len())
	transport.AssertNumberOfCalls(t, "Close", 1)
}

func TestKeys(t *testing.T) {
	b := New()

	key, mnemonic, status := b.SecretKeyGenerate("passphrase")
	require.Equal(t, StatusOK, status)
	assert.Len(t, strings.Fields(mnemonic), identity.MnemonicLength)

	recovered, status := b.SecretKeyFromMnemonic(mnemonic, "passphrase")
	require.Equal(t, StatusOK, status)

	s1, status := b.SecretKeyString(key)
	require.Equal(t, StatusOK, status)
	s2, status := b.SecretKeyString(recovered)
	require.Equal(t, StatusOK, status)
	assert.Equal(t, s1, s2)

	public, status := b.SecretKeyPublic(key)
	require.Equal(t, StatusOK, status)
	publicString, status := b.PublicKeyString(public)
	require.Equal(t, StatusOK, status)

	parsed, status := b.PublicKeyParse(publicString)
	require.Equal(t, StatusOK, status)

	secret, err := identity.ParseSecretKey(s1)
	require.NoError(t, err)
	message := []byte("message")
	sig := secret.Sign(message)

	valid, status := b.PublicKeyVerify(parsed, message, sig.Bytes())
	require.Equal(t, StatusOK, status)
	assert.True(t, valid)
	valid, status = b.PublicKeyVerify(parsed, []byte("other"), sig.Bytes())
	require.Equal(t, StatusOK, status)
	assert.False(t, valid)
	valid, status = b.PublicKeyVerify(parsed, message, sig.Bytes()[:10])
	require.Equal(t, StatusOK, status)
	assert.False(t, valid)

	for _, h := range []Handle{key, recovered} {
		require.Equal(t, StatusOK, b.SecretKeyFree(h))
	}
	for _, h := range []Handle{public, parsed} {
		require.Equal(t, StatusOK, b.PublicKeyFree(h))
	}
	assert.Zero(t, b.Len())
}

func TestFailingKeys(t *testing.T) {
	b := New()

	tests := []struct {
		name     string
		op       func() Status
		expected Status
	}{
		{"bad_mnemonic", func() Status {
			_, status := b.SecretKeyFromMnemonic("not a real phrase", "")
			return status
		}, StatusRecovery},
		{"bad_secret_key", func() Status {
			_, status := b.SecretKeyParse("zz")
			return status
		}, StatusParse},
		{"bad_public_key", func() Status {
			_, status := b.PublicKeyParse(strings.Repeat("0", 63))
			return status
		}, StatusParse},
		{"bad_account_id", func() Status {
			_, status := b.AccountIDParse("0.0")
			return status
		}, StatusParse},
		{"malformed_cypher_text", func() Status {
			_, status := b.SecretKeyDecrypt("AAAA", "passphrase")
			return status
		}, StatusRecovery},
		{"null_passphrase", func() Status {
			_, status := b.SecretKeyDecrypt("AAAA", "")
			return status
		}, StatusInvalidState},
		{"stale_key", func() Status {
			_, status := b.SecretKeyString(newHandle(0, 7))
			return status
		}, StatusInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.op())
		})
	}
	assert.Zero(t, b.Len())
}

func TestAccountIDParse(t *testing.T) {
	id, status := New().AccountIDParse("0.0.1001")
	require.Equal(t, StatusOK, status)
	assert.Equal(t, alice, id)
}

func TestSecretKeyFreeWipesKey(t *testing.T) {
	b := New()
	seed := bytes.Repeat([]byte{7}, identity.SecretKeySize)
	key, err := identity.NewSecretKey(seed)
	require.NoError(t, err)

	h := b.handles.Put(key)
	require.Equal(t, StatusOK, b.SecretKeyFree(h))
	assert.Equal(t, make([]byte, identity.SecretKeySize), key.Bytes())
}

func TestMetricsDump(t *testing.T) {
	stats.ObserveRequest("0.0.3", "/proto.CryptoService/cryptoGetBalance", nil, time.Millisecond)

	dump, s := New().MetricsDump()
	require.Equal(t, StatusOK, s)
	assert.Contains(t, dump, "hedera_node_requests_total")
}

func TestClientHandleSharedConcurrently(t *testing.T) {
	transport := &mockTransport{}
	transport.On("Close").Return(nil).Once()

	b, c := newTestBridge(t, transport)

	eg := &errgroup.Group{}
	for i := 0; i < 32; i++ {
		eg.Go(func() error {
			for j := 0; j < 500; j++ {
				tx, status := b.TransactionCryptoTransferNew(c)
				if status != StatusOK {
					return fmt.Errorf("new transaction: %s", status)
				}
				q, status := b.QueryAccountBalanceNew(c, alice)
				if status != StatusOK {
					return fmt.Errorf("new query: %s", status)
				}
				if status := b.TransactionFree(tx); status != StatusOK {
					return fmt.Errorf("free transaction: %s", status)
				}
				if status := b.QueryFree(q); status != StatusOK {
					return fmt.Errorf("free query: %s", status)
				}
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())

	transport.AssertNotCalled(t, "Close")
	require.Equal(t, StatusOK, b.ClientFree(c))
	assert.Zero(t, b.Len())
	transport.AssertNumberOfCalls(t, "Close", 1)
}

func TestClientHandleOfWrongType(t *testing.T) {
	b, _ := newTestBridge(t, &mockTransport{})
	key := newKeyHandle(t, b)

	_, status := b.TransactionCryptoTransferNew(key)
	assert.Equal(t, StatusInvalidState, status)
	_, status = b.QueryAccountBalanceNew(key, alice)
	assert.Equal(t, StatusInvalidState, status)

	// the key is left untouched
	require.Equal(t, StatusOK, b.SecretKeyFree(key))
}
