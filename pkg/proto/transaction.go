package proto

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// TransactionData is the operation specific part of a TransactionBody. The
// set of implementations is closed: CryptoCreateTransactionBody,
// CryptoTransferTransactionBody and CryptoUpdateTransactionBody.
type TransactionData interface {
	Marshal() []byte
	transactionDataField() protowire.Number
}

// TransactionBody is the part of a transaction covered by the signatures
type TransactionBody struct {
	TransactionID            *TransactionID
	NodeAccountID            *AccountID
	TransactionFee           uint64
	TransactionValidDuration *Duration
	GenerateRecord           bool
	Memo                     string
	Data                     TransactionData
}

func (m *TransactionBody) Marshal() []byte {
	var b []byte
	if m.TransactionID != nil {
		b = appendMessage(b, 1, m.TransactionID.Marshal())
	}
	if m.NodeAccountID != nil {
		b = appendMessage(b, 2, m.NodeAccountID.Marshal())
	}
	b = appendVarint(b, 3, m.TransactionFee)
	if m.TransactionValidDuration != nil {
		b = appendMessage(b, 4, m.TransactionValidDuration.Marshal())
	}
	b = appendBool(b, 5, m.GenerateRecord)
	b = appendString(b, 6, m.Memo)
	if m.Data != nil {
		b = appendMessage(b, m.Data.transactionDataField(), m.Data.Marshal())
	}
	return b
}

func (m *TransactionBody) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.TransactionID = &TransactionID{}
			return f.message(m.TransactionID)
		case 2:
			m.NodeAccountID = &AccountID{}
			return f.message(m.NodeAccountID)
		case 3:
			m.TransactionFee, err = f.varint()
		case 4:
			m.TransactionValidDuration = &Duration{}
			return f.message(m.TransactionValidDuration)
		case 5:
			m.GenerateRecord, err = f.bool()
		case 6:
			m.Memo, err = f.string()
		case cryptoCreateAccountField:
			data := &CryptoCreateTransactionBody{}
			m.Data = data
			return f.message(data)
		case cryptoTransferField:
			data := &CryptoTransferTransactionBody{}
			m.Data = data
			return f.message(data)
		case cryptoUpdateAccountField:
			data := &CryptoUpdateTransactionBody{}
			m.Data = data
			return f.message(data)
		}
		return
	})
}

const (
	cryptoCreateAccountField protowire.Number = 11
	cryptoTransferField      protowire.Number = 14
	cryptoUpdateAccountField protowire.Number = 15
)

// CryptoCreateTransactionBody creates an account
type CryptoCreateTransactionBody struct {
	Key                    *Key
	InitialBalance         uint64
	ProxyAccountID         *AccountID
	SendRecordThreshold    uint64
	ReceiveRecordThreshold uint64
	ReceiverSigRequired    bool
	AutoRenewPeriod        *Duration
}

func (*CryptoCreateTransactionBody) transactionDataField() protowire.Number {
	return cryptoCreateAccountField
}

func (m *CryptoCreateTransactionBody) Marshal() []byte {
	var b []byte
	if m.Key != nil {
		b = appendMessage(b, 1, m.Key.Marshal())
	}
	b = appendVarint(b, 2, m.InitialBalance)
	if m.ProxyAccountID != nil {
		b = appendMessage(b, 3, m.ProxyAccountID.Marshal())
	}
	b = appendVarint(b, 6, m.SendRecordThreshold)
	b = appendVarint(b, 7, m.ReceiveRecordThreshold)
	b = appendBool(b, 8, m.ReceiverSigRequired)
	if m.AutoRenewPeriod != nil {
		b = appendMessage(b, 9, m.AutoRenewPeriod.Marshal())
	}
	return b
}

func (m *CryptoCreateTransactionBody) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Key = &Key{}
			return f.message(m.Key)
		case 2:
			m.InitialBalance, err = f.varint()
		case 3:
			m.ProxyAccountID = &AccountID{}
			return f.message(m.ProxyAccountID)
		case 6:
			m.SendRecordThreshold, err = f.varint()
		case 7:
			m.ReceiveRecordThreshold, err = f.varint()
		case 8:
			m.ReceiverSigRequired, err = f.bool()
		case 9:
			m.AutoRenewPeriod = &Duration{}
			return f.message(m.AutoRenewPeriod)
		}
		return
	})
}

// AccountAmount is a signed balance change of an account
type AccountAmount struct {
	AccountID *AccountID
	Amount    int64
}

func (m *AccountAmount) Marshal() []byte {
	var b []byte
	if m.AccountID != nil {
		b = appendMessage(b, 1, m.AccountID.Marshal())
	}
	return appendSint(b, 2, m.Amount)
}

func (m *AccountAmount) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.AccountID = &AccountID{}
			return f.message(m.AccountID)
		case 2:
			m.Amount, err = f.sint64()
		}
		return
	})
}

type TransferList struct {
	AccountAmounts []*AccountAmount
}

func (m *TransferList) Marshal() []byte {
	var b []byte
	for _, aa := range m.AccountAmounts {
		b = appendMessage(b, 1, aa.Marshal())
	}
	return b
}

func (m *TransferList) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) error {
		if f.num == 1 {
			aa := &AccountAmount{}
			if err := f.message(aa); err != nil {
				return err
			}
			m.AccountAmounts = append(m.AccountAmounts, aa)
		}
		return nil
	})
}

// CryptoTransferTransactionBody moves tinybars between accounts
type CryptoTransferTransactionBody struct {
	Transfers *TransferList
}

func (*CryptoTransferTransactionBody) transactionDataField() protowire.Number {
	return cryptoTransferField
}

func (m *CryptoTransferTransactionBody) Marshal() []byte {
	if m.Transfers == nil {
		return nil
	}
	return appendMessage(nil, 1, m.Transfers.Marshal())
}

func (m *CryptoTransferTransactionBody) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) error {
		if f.num == 1 {
			m.Transfers = &TransferList{}
			return f.message(m.Transfers)
		}
		return nil
	})
}

// CryptoUpdateTransactionBody changes the properties of an account. Nil
// fields are left unchanged.
type CryptoUpdateTransactionBody struct {
	AccountIDToUpdate      *AccountID
	Key                    *Key
	ProxyAccountID         *AccountID
	ProxyFraction          int32
	SendRecordThreshold    uint64
	ReceiveRecordThreshold uint64
	AutoRenewPeriod        *Duration
	ExpirationTime         *Timestamp
}

func (*CryptoUpdateTransactionBody) transactionDataField() protowire.Number {
	return cryptoUpdateAccountField
}

func (m *CryptoUpdateTransactionBody) Marshal() []byte {
	var b []byte
	if m.AccountIDToUpdate != nil {
		b = appendMessage(b, 2, m.AccountIDToUpdate.Marshal())
	}
	if m.Key != nil {
		b = appendMessage(b, 3, m.Key.Marshal())
	}
	if m.ProxyAccountID != nil {
		b = appendMessage(b, 4, m.ProxyAccountID.Marshal())
	}
	b = appendInt(b, 5, int64(m.ProxyFraction))
	b = appendVarint(b, 6, m.SendRecordThreshold)
	b = appendVarint(b, 7, m.ReceiveRecordThreshold)
	if m.AutoRenewPeriod != nil {
		b = appendMessage(b, 8, m.AutoRenewPeriod.Marshal())
	}
	if m.ExpirationTime != nil {
		b = appendMessage(b, 9, m.ExpirationTime.Marshal())
	}
	return b
}

func (m *CryptoUpdateTransactionBody) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) (err error) {
		switch f.num {
		case 2:
			m.AccountIDToUpdate = &AccountID{}
			return f.message(m.AccountIDToUpdate)
		case 3:
			m.Key = &Key{}
			return f.message(m.Key)
		case 4:
			m.ProxyAccountID = &AccountID{}
			return f.message(m.ProxyAccountID)
		case 5:
			m.ProxyFraction, err = f.int32()
		case 6:
			m.SendRecordThreshold, err = f.varint()
		case 7:
			m.ReceiveRecordThreshold, err = f.varint()
		case 8:
			m.AutoRenewPeriod = &Duration{}
			return f.message(m.AutoRenewPeriod)
		case 9:
			m.ExpirationTime = &Timestamp{}
			return f.message(m.ExpirationTime)
		}
		return
	})
}

// SignaturePair is a public key along with its ed25519 signature of the body
type SignaturePair struct {
	PubKeyPrefix []byte
	Ed25519      []byte
}

func (m *SignaturePair) Marshal() []byte {
	var b []byte
	b = appendBytes(b, 1, m.PubKeyPrefix)
	b = appendBytes(b, 3, m.Ed25519)
	return b
}

func (m *SignaturePair) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.PubKeyPrefix, err = f.bytes()
		case 3:
			m.Ed25519, err = f.bytes()
		}
		return
	})
}

type SignatureMap struct {
	SigPair []*SignaturePair
}

func (m *SignatureMap) Marshal() []byte {
	var b []byte
	for _, pair := range m.SigPair {
		b = appendMessage(b, 1, pair.Marshal())
	}
	return b
}

func (m *SignatureMap) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) error {
		if f.num == 1 {
			pair := &SignaturePair{}
			if err := f.message(pair); err != nil {
				return err
			}
			m.SigPair = append(m.SigPair, pair)
		}
		return nil
	})
}

// Transaction is the signed envelope submitted to a node
type Transaction struct {
	SigMap    *SignatureMap
	BodyBytes []byte
}

func (m *Transaction) Marshal() []byte {
	var b []byte
	if m.SigMap != nil {
		b = appendMessage(b, 3, m.SigMap.Marshal())
	}
	return appendBytes(b, 4, m.BodyBytes)
}

func (m *Transaction) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) (err error) {
		switch f.num {
		case 3:
			m.SigMap = &SignatureMap{}
			return f.message(m.SigMap)
		case 4:
			m.BodyBytes, err = f.bytes()
		}
		return
	})
}

// Body decodes the body bytes of the transaction
func (m *Transaction) Body() (*TransactionBody, error) {
	body := &TransactionBody{}
	if err := body.Unmarshal(m.BodyBytes); err != nil {
		return nil, fmt.Errorf("invalid transaction body: %w", err)
	}
	return body, nil
}

// TransactionResponse is the answer of a node to a submitted transaction
type TransactionResponse struct {
	NodeTransactionPrecheckCode int32
	Cost                        uint64
}

func (m *TransactionResponse) Marshal() []byte {
	var b []byte
	b = appendInt(b, 1, int64(m.NodeTransactionPrecheckCode))
	return appendVarint(b, 2, m.Cost)
}

func (m *TransactionResponse) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.NodeTransactionPrecheckCode, err = f.int32()
		case 2:
			m.Cost, err = f.varint()
		}
		return
	})
}

// TransactionReceipt is the outcome of a transaction reaching consensus
type TransactionReceipt struct {
	Status    int32
	AccountID *AccountID
}

func (m *TransactionReceipt) Marshal() []byte {
	var b []byte
	b = appendInt(b, 1, int64(m.Status))
	if m.AccountID != nil {
		b = appendMessage(b, 2, m.AccountID.Marshal())
	}
	return b
}

func (m *TransactionReceipt) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Status, err = f.int32()
		case 2:
			m.AccountID = &AccountID{}
			return f.message(m.AccountID)
		}
		return
	})
}

// TransactionRecord is the history entry of a transaction
type TransactionRecord struct {
	Receipt            *TransactionReceipt
	TransactionHash    []byte
	ConsensusTimestamp *Timestamp
	TransactionID      *TransactionID
	Memo               string
	TransactionFee     uint64
}

func (m *TransactionRecord) Marshal() []byte {
	var b []byte
	if m.Receipt != nil {
		b = appendMessage(b, 1, m.Receipt.Marshal())
	}
	b = appendBytes(b, 2, m.TransactionHash)
	if m.ConsensusTimestamp != nil {
		b = appendMessage(b, 3, m.ConsensusTimestamp.Marshal())
	}
	if m.TransactionID != nil {
		b = appendMessage(b, 4, m.TransactionID.Marshal())
	}
	b = appendString(b, 5, m.Memo)
	return appendVarint(b, 6, m.TransactionFee)
}

func (m *TransactionRecord) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Receipt = &TransactionReceipt{}
			return f.message(m.Receipt)
		case 2:
			m.TransactionHash, err = f.bytes()
		case 3:
			m.ConsensusTimestamp = &Timestamp{}
			return f.message(m.ConsensusTimestamp)
		case 4:
			m.TransactionID = &TransactionID{}
			return f.message(m.TransactionID)
		case 5:
			m.Memo, err = f.string()
		case 6:
			m.TransactionFee, err = f.varint()
		}
		return
	})
}
