package ledger

import "fmt"

// PreCheckCode is the validation outcome a node reports for a submitted
// transaction or query before it reaches consensus
type PreCheckCode int32

const (
	PreCheckOk PreCheckCode = iota
	PreCheckInvalidTransaction
	PreCheckPayerAccountNotFound
	PreCheckInvalidNodeAccount
	PreCheckTransactionExpired
	PreCheckInvalidTransactionStart
	PreCheckInvalidTransactionDuration
	PreCheckInvalidSignature
	PreCheckMemoTooLong
	PreCheckInsufficientTxFee
	PreCheckInsufficientPayerBalance
	PreCheckDuplicateTransaction
	PreCheckBusy
	PreCheckNotSupported
	PreCheckInvalidFileID
	PreCheckInvalidAccountID
	PreCheckInvalidContractID
	PreCheckInvalidTransactionID
	PreCheckReceiptNotFound
	PreCheckRecordNotFound
	PreCheckInvalidSolidityID
	PreCheckUnknown
	PreCheckSuccess
	PreCheckFailInvalid
	PreCheckFailFee
	PreCheckFailBalance
	PreCheckKeyRequired
	PreCheckBadEncoding
	PreCheckInsufficientAccountBalance
	PreCheckInvalidSolidityAddress
	PreCheckInsufficientGas
	PreCheckContractSizeLimitExceeded
	PreCheckLocalCallModificationException
	PreCheckContractRevertExecuted
	PreCheckContractExecutionException
	PreCheckInvalidReceivingNodeAccount
	PreCheckMissingQueryHeader
	PreCheckAccountUpdateFailed
	PreCheckInvalidKeyEncoding
	PreCheckNullSolidityAddress
	PreCheckContractUpdateFailed
	PreCheckInvalidQueryHeader
	PreCheckInvalidFeeSubmitted
	PreCheckInvalidPayerSignature
)

var preCheckNames = map[PreCheckCode]string{
	PreCheckOk:                             "OK",
	PreCheckInvalidTransaction:             "INVALID_TRANSACTION",
	PreCheckPayerAccountNotFound:           "PAYER_ACCOUNT_NOT_FOUND",
	PreCheckInvalidNodeAccount:             "INVALID_NODE_ACCOUNT",
	PreCheckTransactionExpired:             "TRANSACTION_EXPIRED",
	PreCheckInvalidTransactionStart:        "INVALID_TRANSACTION_START",
	PreCheckInvalidTransactionDuration:     "INVALID_TRANSACTION_DURATION",
	PreCheckInvalidSignature:               "INVALID_SIGNATURE",
	PreCheckMemoTooLong:                    "MEMO_TOO_LONG",
	PreCheckInsufficientTxFee:              "INSUFFICIENT_TX_FEE",
	PreCheckInsufficientPayerBalance:       "INSUFFICIENT_PAYER_BALANCE",
	PreCheckDuplicateTransaction:           "DUPLICATE_TRANSACTION",
	PreCheckBusy:                           "BUSY",
	PreCheckNotSupported:                   "NOT_SUPPORTED",
	PreCheckInvalidFileID:                  "INVALID_FILE_ID",
	PreCheckInvalidAccountID:               "INVALID_ACCOUNT_ID",
	PreCheckInvalidContractID:              "INVALID_CONTRACT_ID",
	PreCheckInvalidTransactionID:           "INVALID_TRANSACTION_ID",
	PreCheckReceiptNotFound:                "RECEIPT_NOT_FOUND",
	PreCheckRecordNotFound:                 "RECORD_NOT_FOUND",
	PreCheckInvalidSolidityID:              "INVALID_SOLIDITY_ID",
	PreCheckUnknown:                        "UNKNOWN",
	PreCheckSuccess:                        "SUCCESS",
	PreCheckFailInvalid:                    "FAIL_INVALID",
	PreCheckFailFee:                        "FAIL_FEE",
	PreCheckFailBalance:                    "FAIL_BALANCE",
	PreCheckKeyRequired:                    "KEY_REQUIRED",
	PreCheckBadEncoding:                    "BAD_ENCODING",
	PreCheckInsufficientAccountBalance:     "INSUFFICIENT_ACCOUNT_BALANCE",
	PreCheckInvalidSolidityAddress:         "INVALID_SOLIDITY_ADDRESS",
	PreCheckInsufficientGas:                "INSUFFICIENT_GAS",
	PreCheckContractSizeLimitExceeded:      "CONTRACT_SIZE_LIMIT_EXCEEDED",
	PreCheckLocalCallModificationException: "LOCAL_CALL_MODIFICATION_EXCEPTION",
	PreCheckContractRevertExecuted:         "CONTRACT_REVERT_EXECUTED",
	PreCheckContractExecutionException:     "CONTRACT_EXECUTION_EXCEPTION",
	PreCheckInvalidReceivingNodeAccount:    "INVALID_RECEIVING_NODE_ACCOUNT",
	PreCheckMissingQueryHeader:             "MISSING_QUERY_HEADER",
	PreCheckAccountUpdateFailed:            "ACCOUNT_UPDATE_FAILED",
	PreCheckInvalidKeyEncoding:             "INVALID_KEY_ENCODING",
	PreCheckNullSolidityAddress:            "NULL_SOLIDITY_ADDRESS",
	PreCheckContractUpdateFailed:           "CONTRACT_UPDATE_FAILED",
	PreCheckInvalidQueryHeader:             "INVALID_QUERY_HEADER",
	PreCheckInvalidFeeSubmitted:            "INVALID_FEE_SUBMITTED",
	PreCheckInvalidPayerSignature:          "INVALID_PAYER_SIGNATURE",
}

// IsOk returns whether the node accepted the request
func (c PreCheckCode) IsOk() bool {
	return c == PreCheckOk
}

func (c PreCheckCode) String() string {
	if name, ok := preCheckNames[c]; ok {
		return name
	}
	return fmt.Sprintf("PRECHECK_CODE(%d)", int32(c))
}
