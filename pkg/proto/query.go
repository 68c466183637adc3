package proto

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// ResponseType tells the node what a query must be answered with
type ResponseType int32

const (
	// AnswerOnly asks the node for the answer without a state proof
	AnswerOnly ResponseType = iota
	// AnswerStateProof asks for the answer along with a state proof
	AnswerStateProof
	// CostAnswer asks the node for the cost of the query only
	CostAnswer
	// CostAnswerStateProof asks for the cost of the query with a state proof
	CostAnswerStateProof
)

const (
	cryptoGetAccountBalanceField protowire.Number = 7
	cryptoGetAccountRecordsField protowire.Number = 8
)

// QueryHeader carries the payment and the expected response type of a query
type QueryHeader struct {
	Payment      *Transaction
	ResponseType ResponseType
}

func (m *QueryHeader) Marshal() []byte {
	var b []byte
	if m.Payment != nil {
		b = appendMessage(b, 1, m.Payment.Marshal())
	}
	return appendInt(b, 2, int64(m.ResponseType))
}

func (m *QueryHeader) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) error {
		switch f.num {
		case 1:
			m.Payment = &Transaction{}
			return f.message(m.Payment)
		case 2:
			v, err := f.int32()
			m.ResponseType = ResponseType(v)
			return err
		}
		return nil
	})
}

// QueryData is the variant specific part of a Query. The set of
// implementations is closed: CryptoGetAccountBalanceQuery and
// CryptoGetAccountRecordsQuery.
type QueryData interface {
	Marshal() []byte
	queryDataField() protowire.Number
}

// Query wraps exactly one query variant
type Query struct {
	Data QueryData
}

func (m *Query) Marshal() []byte {
	if m.Data == nil {
		return nil
	}
	return appendMessage(nil, m.Data.queryDataField(), m.Data.Marshal())
}

func (m *Query) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) error {
		switch f.num {
		case cryptoGetAccountBalanceField:
			data := &CryptoGetAccountBalanceQuery{}
			m.Data = data
			return f.message(data)
		case cryptoGetAccountRecordsField:
			data := &CryptoGetAccountRecordsQuery{}
			m.Data = data
			return f.message(data)
		}
		return nil
	})
}

// accountQuery is the shape shared by the queries filtering on an account
type accountQuery struct {
	Header    *QueryHeader
	AccountID *AccountID
}

func (m *accountQuery) marshal() []byte {
	var b []byte
	if m.Header != nil {
		b = appendMessage(b, 1, m.Header.Marshal())
	}
	if m.AccountID != nil {
		b = appendMessage(b, 2, m.AccountID.Marshal())
	}
	return b
}

func (m *accountQuery) unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) error {
		switch f.num {
		case 1:
			m.Header = &QueryHeader{}
			return f.message(m.Header)
		case 2:
			m.AccountID = &AccountID{}
			return f.message(m.AccountID)
		}
		return nil
	})
}

// CryptoGetAccountBalanceQuery asks for the balance of an account
type CryptoGetAccountBalanceQuery struct {
	Header    *QueryHeader
	AccountID *AccountID
}

func (*CryptoGetAccountBalanceQuery) queryDataField() protowire.Number {
	return cryptoGetAccountBalanceField
}

func (m *CryptoGetAccountBalanceQuery) Marshal() []byte {
	return (*accountQuery)(m).marshal()
}

func (m *CryptoGetAccountBalanceQuery) Unmarshal(b []byte) error {
	return (*accountQuery)(m).unmarshal(b)
}

// CryptoGetAccountRecordsQuery asks for the records of the last day of
// transactions of an account
type CryptoGetAccountRecordsQuery struct {
	Header    *QueryHeader
	AccountID *AccountID
}

func (*CryptoGetAccountRecordsQuery) queryDataField() protowire.Number {
	return cryptoGetAccountRecordsField
}

func (m *CryptoGetAccountRecordsQuery) Marshal() []byte {
	return (*accountQuery)(m).marshal()
}

func (m *CryptoGetAccountRecordsQuery) Unmarshal(b []byte) error {
	return (*accountQuery)(m).unmarshal(b)
}

// ResponseHeader carries the precheck code of a query. The rest of the
// response is meaningful only when the code is OK.
type ResponseHeader struct {
	NodeTransactionPrecheckCode int32
	ResponseType                ResponseType
	Cost                        uint64
}

func (m *ResponseHeader) Marshal() []byte {
	var b []byte
	b = appendInt(b, 1, int64(m.NodeTransactionPrecheckCode))
	b = appendInt(b, 2, int64(m.ResponseType))
	return appendVarint(b, 3, m.Cost)
}

func (m *ResponseHeader) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.NodeTransactionPrecheckCode, err = f.int32()
		case 2:
			var v int32
			v, err = f.int32()
			m.ResponseType = ResponseType(v)
		case 3:
			m.Cost, err = f.varint()
		}
		return
	})
}

// ResponseData is the variant specific part of a Response
type ResponseData interface {
	Marshal() []byte
	GetHeader() *ResponseHeader
	responseDataField() protowire.Number
}

// Response wraps exactly one response variant
type Response struct {
	Data ResponseData
}

func (m *Response) Marshal() []byte {
	if m.Data == nil {
		return nil
	}
	return appendMessage(nil, m.Data.responseDataField(), m.Data.Marshal())
}

func (m *Response) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) error {
		switch f.num {
		case cryptoGetAccountBalanceField:
			data := &CryptoGetAccountBalanceResponse{}
			m.Data = data
			return f.message(data)
		case cryptoGetAccountRecordsField:
			data := &CryptoGetAccountRecordsResponse{}
			m.Data = data
			return f.message(data)
		}
		return nil
	})
}

// CryptoGetAccountBalanceResponse holds a balance in tinybars. Balance is
// meaningful only when the header precheck code is OK.
type CryptoGetAccountBalanceResponse struct {
	Header    *ResponseHeader
	AccountID *AccountID
	Balance   uint64
}

func (*CryptoGetAccountBalanceResponse) responseDataField() protowire.Number {
	return cryptoGetAccountBalanceField
}

func (m *CryptoGetAccountBalanceResponse) GetHeader() *ResponseHeader {
	return m.Header
}

func (m *CryptoGetAccountBalanceResponse) Marshal() []byte {
	var b []byte
	if m.Header != nil {
		b = appendMessage(b, 1, m.Header.Marshal())
	}
	if m.AccountID != nil {
		b = appendMessage(b, 2, m.AccountID.Marshal())
	}
	return appendVarint(b, 3, m.Balance)
}

func (m *CryptoGetAccountBalanceResponse) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Header = &ResponseHeader{}
			return f.message(m.Header)
		case 2:
			m.AccountID = &AccountID{}
			return f.message(m.AccountID)
		case 3:
			m.Balance, err = f.varint()
		}
		return
	})
}

// CryptoGetAccountRecordsResponse holds the records of an account
type CryptoGetAccountRecordsResponse struct {
	Header    *ResponseHeader
	AccountID *AccountID
	Records   []*TransactionRecord
}

func (*CryptoGetAccountRecordsResponse) responseDataField() protowire.Number {
	return cryptoGetAccountRecordsField
}

func (m *CryptoGetAccountRecordsResponse) GetHeader() *ResponseHeader {
	return m.Header
}

func (m *CryptoGetAccountRecordsResponse) Marshal() []byte {
	var b []byte
	if m.Header != nil {
		b = appendMessage(b, 1, m.Header.Marshal())
	}
	if m.AccountID != nil {
		b = appendMessage(b, 2, m.AccountID.Marshal())
	}
	for _, r := range m.Records {
		b = appendMessage(b, 3, r.Marshal())
	}
	return b
}

func (m *CryptoGetAccountRecordsResponse) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) error {
		switch f.num {
		case 1:
			m.Header = &ResponseHeader{}
			return f.message(m.Header)
		case 2:
			m.AccountID = &AccountID{}
			return f.message(m.AccountID)
		case 3:
			r := &TransactionRecord{}
			if err := f.message(r); err != nil {
				return err
			}
			m.Records = append(m.Records, r)
		}
		return nil
	})
}
