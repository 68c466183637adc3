// Command libhedera builds the C shared library exposing the ledger core:
//
//	go build -buildmode=c-shared -o libhedera.so ./cmd/libhedera
//
// Objects are referred to by opaque uint64 handles. Every fallible function
// returns a status, 0 on success, and writes its results through out
// parameters that are valid only on success. Strings returned by the library
// must be released with hedera_string_free.
package main

/*
#include <stdint.h>
#include <stdlib.h>

typedef struct {
	int64_t shard;
	int64_t realm;
	int64_t account;
} HederaAccountId;

typedef struct {
	int64_t seconds;
	int32_t nanos;
} HederaTimestamp;

typedef struct {
	HederaAccountId account_id;
	HederaTimestamp transaction_valid_start;
} HederaTransactionId;

typedef struct {
	HederaAccountId account_id;
	HederaTransactionId transaction_id;
	uint8_t has_transaction_id;
	HederaTimestamp consensus_timestamp;
	uint8_t has_consensus_timestamp;
	char *transaction_hash;
	char *memo;
	uint64_t transaction_fee;
} HederaTransactionRecord;
*/
import "C"

import (
	"encoding/hex"
	"unsafe"

	"github.com/hederacore/hedera-core/config"
	"github.com/hederacore/hedera-core/internal/bridge"
	"github.com/hederacore/hedera-core/pkg/ledger"
	log "github.com/sirupsen/logrus"
)

var core = bridge.New()

func init() {
	if err := config.Validate(); err != nil {
		log.WithError(err).Warn("invalid configuration, using info log level")
		return
	}
	log.SetLevel(config.GetLogLevel())
}

func main() {}

func accountIDFromC(id C.HederaAccountId) ledger.AccountID {
	return ledger.AccountID{
		Shard:   uint64(id.shard),
		Realm:   uint64(id.realm),
		Account: uint64(id.account),
	}
}

func accountIDToC(id ledger.AccountID) C.HederaAccountId {
	return C.HederaAccountId{
		shard:   C.int64_t(id.Shard),
		realm:   C.int64_t(id.Realm),
		account: C.int64_t(id.Account),
	}
}

func timestampToC(ts ledger.Timestamp) C.HederaTimestamp {
	return C.HederaTimestamp{seconds: C.int64_t(ts.Seconds), nanos: C.int32_t(ts.Nanos)}
}

func transactionIDToC(id ledger.TransactionID) C.HederaTransactionId {
	return C.HederaTransactionId{
		account_id:              accountIDToC(id.AccountID),
		transaction_valid_start: timestampToC(id.ValidStart),
	}
}

func goBytes(p *C.uint8_t, n C.size_t) []byte {
	if p == nil || n == 0 {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(p), C.int(n))
}

func status(s bridge.Status) C.uint64_t {
	return C.uint64_t(s)
}

//export hedera_string_free
func hedera_string_free(s *C.char) {
	C.free(unsafe.Pointer(s))
}

// Client
// ----------------------------------------------------------------------------

//export hedera_client_new
func hedera_client_new(nodes *C.char, operator C.HederaAccountId, out *C.uint64_t) C.uint64_t {
	h, s := core.ClientNew(C.GoString(nodes), accountIDFromC(operator))
	if s == bridge.StatusOK {
		*out = C.uint64_t(h)
	}
	return status(s)
}

//export hedera_client_new_from_env
func hedera_client_new_from_env(out *C.uint64_t) C.uint64_t {
	h, s := core.ClientNewFromEnv()
	if s == bridge.StatusOK {
		*out = C.uint64_t(h)
	}
	return status(s)
}

//export hedera_client_free
func hedera_client_free(client C.uint64_t) C.uint64_t {
	return status(core.ClientFree(bridge.Handle(client)))
}

// Keys and account ids
// ----------------------------------------------------------------------------

//export hedera_secret_key_generate
func hedera_secret_key_generate(
	passphrase *C.char, out *C.uint64_t, mnemonic **C.char,
) C.uint64_t {
	h, words, s := core.SecretKeyGenerate(C.GoString(passphrase))
	if s == bridge.StatusOK {
		*out = C.uint64_t(h)
		*mnemonic = C.CString(words)
	}
	return status(s)
}

//export hedera_secret_key_from_mnemonic
func hedera_secret_key_from_mnemonic(
	mnemonic, passphrase *C.char, out *C.uint64_t,
) C.uint64_t {
	h, s := core.SecretKeyFromMnemonic(C.GoString(mnemonic), C.GoString(passphrase))
	if s == bridge.StatusOK {
		*out = C.uint64_t(h)
	}
	return status(s)
}

//export hedera_secret_key_from_str
func hedera_secret_key_from_str(str *C.char, out *C.uint64_t) C.uint64_t {
	h, s := core.SecretKeyParse(C.GoString(str))
	if s == bridge.StatusOK {
		*out = C.uint64_t(h)
	}
	return status(s)
}

//export hedera_secret_key_to_str
func hedera_secret_key_to_str(key C.uint64_t, out **C.char) C.uint64_t {
	str, s := core.SecretKeyString(bridge.Handle(key))
	if s == bridge.StatusOK {
		*out = C.CString(str)
	}
	return status(s)
}

//export hedera_secret_key_public
func hedera_secret_key_public(key C.uint64_t, out *C.uint64_t) C.uint64_t {
	h, s := core.SecretKeyPublic(bridge.Handle(key))
	if s == bridge.StatusOK {
		*out = C.uint64_t(h)
	}
	return status(s)
}

//export hedera_secret_key_encrypt
func hedera_secret_key_encrypt(key C.uint64_t, passphrase *C.char, out **C.char) C.uint64_t {
	cypherText, s := core.SecretKeyEncrypt(bridge.Handle(key), C.GoString(passphrase))
	if s == bridge.StatusOK {
		*out = C.CString(cypherText)
	}
	return status(s)
}

//export hedera_secret_key_decrypt
func hedera_secret_key_decrypt(cypherText, passphrase *C.char, out *C.uint64_t) C.uint64_t {
	h, s := core.SecretKeyDecrypt(C.GoString(cypherText), C.GoString(passphrase))
	if s == bridge.StatusOK {
		*out = C.uint64_t(h)
	}
	return status(s)
}

//export hedera_secret_key_free
func hedera_secret_key_free(key C.uint64_t) C.uint64_t {
	return status(core.SecretKeyFree(bridge.Handle(key)))
}

//export hedera_public_key_from_str
func hedera_public_key_from_str(str *C.char, out *C.uint64_t) C.uint64_t {
	h, s := core.PublicKeyParse(C.GoString(str))
	if s == bridge.StatusOK {
		*out = C.uint64_t(h)
	}
	return status(s)
}

//export hedera_public_key_to_str
func hedera_public_key_to_str(key C.uint64_t, out **C.char) C.uint64_t {
	str, s := core.PublicKeyString(bridge.Handle(key))
	if s == bridge.StatusOK {
		*out = C.CString(str)
	}
	return status(s)
}

//export hedera_public_key_verify
func hedera_public_key_verify(
	key C.uint64_t,
	message *C.uint8_t, messageLen C.size_t,
	sig *C.uint8_t, sigLen C.size_t,
	out *C.uint8_t,
) C.uint64_t {
	valid, s := core.PublicKeyVerify(
		bridge.Handle(key), goBytes(message, messageLen), goBytes(sig, sigLen),
	)
	if s == bridge.StatusOK {
		*out = 0
		if valid {
			*out = 1
		}
	}
	return status(s)
}

//export hedera_public_key_free
func hedera_public_key_free(key C.uint64_t) C.uint64_t {
	return status(core.PublicKeyFree(bridge.Handle(key)))
}

//export hedera_account_id_from_str
func hedera_account_id_from_str(str *C.char, out *C.HederaAccountId) C.uint64_t {
	id, s := core.AccountIDParse(C.GoString(str))
	if s == bridge.StatusOK {
		*out = accountIDToC(id)
	}
	return status(s)
}

//export hedera_account_id_to_str
func hedera_account_id_to_str(id C.HederaAccountId) *C.char {
	return C.CString(accountIDFromC(id).String())
}

// Metrics

//export hedera_metrics_dump
func hedera_metrics_dump(out **C.char) C.uint64_t {
	dump, s := core.MetricsDump()
	if s == bridge.StatusOK {
		*out = C.CString(dump)
	}
	return status(s)
}

// Transaction
// ----------------------------------------------------------------------------

//export hedera_transaction_set_operator
func hedera_transaction_set_operator(tx C.uint64_t, operator C.HederaAccountId) C.uint64_t {
	return status(core.TransactionSetOperator(bridge.Handle(tx), accountIDFromC(operator)))
}

//export hedera_transaction_set_node
func hedera_transaction_set_node(tx C.uint64_t, node C.HederaAccountId) C.uint64_t {
	return status(core.TransactionSetNode(bridge.Handle(tx), accountIDFromC(node)))
}

//export hedera_transaction_set_memo
func hedera_transaction_set_memo(tx C.uint64_t, memo *C.char) C.uint64_t {
	return status(core.TransactionSetMemo(bridge.Handle(tx), C.GoString(memo)))
}

//export hedera_transaction_set_transaction_fee
func hedera_transaction_set_transaction_fee(tx C.uint64_t, fee C.uint64_t) C.uint64_t {
	return status(core.TransactionSetTransactionFee(bridge.Handle(tx), uint64(fee)))
}

//export hedera_transaction_sign
func hedera_transaction_sign(tx C.uint64_t, secret C.uint64_t) C.uint64_t {
	return status(core.TransactionSign(bridge.Handle(tx), bridge.Handle(secret)))
}

//export hedera_transaction_execute
func hedera_transaction_execute(tx C.uint64_t, out *C.HederaTransactionId) C.uint64_t {
	id, s := core.TransactionExecute(bridge.Handle(tx))
	if s == bridge.StatusOK {
		*out = transactionIDToC(id)
	}
	return status(s)
}

//export hedera_transaction_free
func hedera_transaction_free(tx C.uint64_t) C.uint64_t {
	return status(core.TransactionFree(bridge.Handle(tx)))
}

// TransactionCreateAccount
// ----------------------------------------------------------------------------

//export hedera_transaction__create_account__new
func hedera_transaction__create_account__new(client C.uint64_t, out *C.uint64_t) C.uint64_t {
	h, s := core.TransactionCreateAccountNew(bridge.Handle(client))
	if s == bridge.StatusOK {
		*out = C.uint64_t(h)
	}
	return status(s)
}

//export hedera_transaction__create_account__set_key
func hedera_transaction__create_account__set_key(tx C.uint64_t, public C.uint64_t) C.uint64_t {
	return status(core.CreateAccountSetKey(bridge.Handle(tx), bridge.Handle(public)))
}

//export hedera_transaction__create_account__set_initial_balance
func hedera_transaction__create_account__set_initial_balance(
	tx C.uint64_t, balance C.uint64_t,
) C.uint64_t {
	return status(core.CreateAccountSetInitialBalance(bridge.Handle(tx), uint64(balance)))
}

// TransactionCryptoTransfer
// ----------------------------------------------------------------------------

//export hedera_transaction__crypto_transfer__new
func hedera_transaction__crypto_transfer__new(client C.uint64_t, out *C.uint64_t) C.uint64_t {
	h, s := core.TransactionCryptoTransferNew(bridge.Handle(client))
	if s == bridge.StatusOK {
		*out = C.uint64_t(h)
	}
	return status(s)
}

//export hedera_transaction__crypto_transfer__add_transfer
func hedera_transaction__crypto_transfer__add_transfer(
	tx C.uint64_t, id C.HederaAccountId, amount C.int64_t,
) C.uint64_t {
	return status(core.CryptoTransferAddTransfer(
		bridge.Handle(tx), accountIDFromC(id), int64(amount),
	))
}

// TransactionCryptoUpdate
// ----------------------------------------------------------------------------

//export hedera_transaction__crypto_update__new
func hedera_transaction__crypto_update__new(client C.uint64_t, out *C.uint64_t) C.uint64_t {
	h, s := core.TransactionCryptoUpdateNew(bridge.Handle(client))
	if s == bridge.StatusOK {
		*out = C.uint64_t(h)
	}
	return status(s)
}

//export hedera_transaction__crypto_update__set_account_id_to_update
func hedera_transaction__crypto_update__set_account_id_to_update(
	tx C.uint64_t, id C.HederaAccountId,
) C.uint64_t {
	return status(core.CryptoUpdateSetAccountToUpdate(bridge.Handle(tx), accountIDFromC(id)))
}

//export hedera_transaction__crypto_update__set_key
func hedera_transaction__crypto_update__set_key(tx C.uint64_t, public C.uint64_t) C.uint64_t {
	return status(core.CryptoUpdateSetKey(bridge.Handle(tx), bridge.Handle(public)))
}

//export hedera_transaction__crypto_update__set_proxy_account_id
func hedera_transaction__crypto_update__set_proxy_account_id(
	tx C.uint64_t, proxy C.HederaAccountId,
) C.uint64_t {
	return status(core.CryptoUpdateSetProxyAccount(bridge.Handle(tx), accountIDFromC(proxy)))
}

//export hedera_transaction__crypto_update__set_proxy_fraction
func hedera_transaction__crypto_update__set_proxy_fraction(
	tx C.uint64_t, fraction C.int32_t,
) C.uint64_t {
	return status(core.CryptoUpdateSetProxyFraction(bridge.Handle(tx), int32(fraction)))
}

//export hedera_transaction__crypto_update__set_send_record_threshold
func hedera_transaction__crypto_update__set_send_record_threshold(
	tx C.uint64_t, threshold C.uint64_t,
) C.uint64_t {
	return status(core.CryptoUpdateSetSendRecordThreshold(bridge.Handle(tx), uint64(threshold)))
}

//export hedera_transaction__crypto_update__set_receive_record_threshold
func hedera_transaction__crypto_update__set_receive_record_threshold(
	tx C.uint64_t, threshold C.uint64_t,
) C.uint64_t {
	return status(core.CryptoUpdateSetReceiveRecordThreshold(
		bridge.Handle(tx), uint64(threshold),
	))
}

//export hedera_transaction__crypto_update__set_auto_renew_period
func hedera_transaction__crypto_update__set_auto_renew_period(
	tx C.uint64_t, seconds C.int64_t,
) C.uint64_t {
	return status(core.CryptoUpdateSetAutoRenewPeriod(
		bridge.Handle(tx), ledger.Duration{Seconds: int64(seconds)},
	))
}

//export hedera_transaction__crypto_update__set_expiration_time
func hedera_transaction__crypto_update__set_expiration_time(
	tx C.uint64_t, ts C.HederaTimestamp,
) C.uint64_t {
	return status(core.CryptoUpdateSetExpirationTime(
		bridge.Handle(tx),
		ledger.Timestamp{Seconds: int64(ts.seconds), Nanos: int32(ts.nanos)},
	))
}

// Query
// ----------------------------------------------------------------------------

//export hedera_query__get_account_balance__new
func hedera_query__get_account_balance__new(
	client C.uint64_t, id C.HederaAccountId, out *C.uint64_t,
) C.uint64_t {
	h, s := core.QueryAccountBalanceNew(bridge.Handle(client), accountIDFromC(id))
	if s == bridge.StatusOK {
		*out = C.uint64_t(h)
	}
	return status(s)
}

//export hedera_query__get_account_balance__execute
func hedera_query__get_account_balance__execute(query C.uint64_t, out *C.uint64_t) C.uint64_t {
	balance, s := core.QueryAccountBalanceExecute(bridge.Handle(query))
	if s == bridge.StatusOK {
		*out = C.uint64_t(balance)
	}
	return status(s)
}

//export hedera_query__get_account_records__new
func hedera_query__get_account_records__new(
	client C.uint64_t, id C.HederaAccountId, out *C.uint64_t,
) C.uint64_t {
	h, s := core.QueryAccountRecordsNew(bridge.Handle(client), accountIDFromC(id))
	if s == bridge.StatusOK {
		*out = C.uint64_t(h)
	}
	return status(s)
}

//export hedera_query__get_account_records__execute
func hedera_query__get_account_records__execute(query C.uint64_t, out *C.uint64_t) C.uint64_t {
	list, s := core.QueryAccountRecordsExecute(bridge.Handle(query))
	if s == bridge.StatusOK {
		*out = C.uint64_t(list)
	}
	return status(s)
}

//export hedera_query_set_node
func hedera_query_set_node(query C.uint64_t, node C.HederaAccountId) C.uint64_t {
	return status(core.QuerySetNode(bridge.Handle(query), accountIDFromC(node)))
}

//export hedera_query_free
func hedera_query_free(query C.uint64_t) C.uint64_t {
	return status(core.QueryFree(bridge.Handle(query)))
}

//export hedera_records_len
func hedera_records_len(list C.uint64_t, out *C.size_t) C.uint64_t {
	n, s := core.RecordsLen(bridge.Handle(list))
	if s == bridge.StatusOK {
		*out = C.size_t(n)
	}
	return status(s)
}

// hedera_records_get writes the i-th record. Its strings must be released
// with hedera_string_free.
//
//export hedera_records_get
func hedera_records_get(list C.uint64_t, i C.size_t, out *C.HederaTransactionRecord) C.uint64_t {
	record, s := core.RecordsGet(bridge.Handle(list), int(i))
	if s != bridge.StatusOK {
		return status(s)
	}

	*out = C.HederaTransactionRecord{
		account_id:       accountIDToC(record.AccountID),
		transaction_hash: C.CString(hex.EncodeToString(record.TransactionHash)),
		memo:             C.CString(record.Memo),
		transaction_fee:  C.uint64_t(record.TransactionFee),
	}
	if record.TransactionID != nil {
		out.transaction_id = transactionIDToC(*record.TransactionID)
		out.has_transaction_id = 1
	}
	if record.ConsensusTimestamp != nil {
		out.consensus_timestamp = timestampToC(*record.ConsensusTimestamp)
		out.has_consensus_timestamp = 1
	}
	return status(s)
}

//export hedera_records_free
func hedera_records_free(list C.uint64_t) C.uint64_t {
	return status(core.RecordsFree(bridge.Handle(list)))
}
