package proto

// AccountID is the shard.realm.num address of an account
type AccountID struct {
	ShardNum   int64
	RealmNum   int64
	AccountNum int64
}

func (m *AccountID) Marshal() []byte {
	var b []byte
	b = appendInt(b, 1, m.ShardNum)
	b = appendInt(b, 2, m.RealmNum)
	b = appendInt(b, 3, m.AccountNum)
	return b
}

func (m *AccountID) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.ShardNum, err = f.int64()
		case 2:
			m.RealmNum, err = f.int64()
		case 3:
			m.AccountNum, err = f.int64()
		}
		return
	})
}

// Timestamp is a point in time with nanosecond precision
type Timestamp struct {
	Seconds int64
	Nanos   int32
}

func (m *Timestamp) Marshal() []byte {
	var b []byte
	b = appendInt(b, 1, m.Seconds)
	b = appendInt(b, 2, int64(m.Nanos))
	return b
}

func (m *Timestamp) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) (err error) {
		switch f.num {
		case 1:
			m.Seconds, err = f.int64()
		case 2:
			m.Nanos, err = f.int32()
		}
		return
	})
}

type Duration struct {
	Seconds int64
}

func (m *Duration) Marshal() []byte {
	return appendInt(nil, 1, m.Seconds)
}

func (m *Duration) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) (err error) {
		if f.num == 1 {
			m.Seconds, err = f.int64()
		}
		return
	})
}

// TransactionID identifies a transaction by its payer and valid start
type TransactionID struct {
	TransactionValidStart *Timestamp
	AccountID             *AccountID
}

func (m *TransactionID) Marshal() []byte {
	var b []byte
	if m.TransactionValidStart != nil {
		b = appendMessage(b, 1, m.TransactionValidStart.Marshal())
	}
	if m.AccountID != nil {
		b = appendMessage(b, 2, m.AccountID.Marshal())
	}
	return b
}

func (m *TransactionID) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) error {
		switch f.num {
		case 1:
			m.TransactionValidStart = &Timestamp{}
			return f.message(m.TransactionValidStart)
		case 2:
			m.AccountID = &AccountID{}
			return f.message(m.AccountID)
		}
		return nil
	})
}

// Key is a public key. Only ed25519 keys are supported.
type Key struct {
	Ed25519 []byte
}

func (m *Key) Marshal() []byte {
	return appendBytes(nil, 2, m.Ed25519)
}

func (m *Key) Unmarshal(b []byte) error {
	return unmarshalFields(b, func(f field) (err error) {
		if f.num == 2 {
			m.Ed25519, err = f.bytes()
		}
		return
	})
}
