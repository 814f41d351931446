package coin

import (
	proto "github.com/gogo/protobuf/proto"
)

// Coin can hold any amount of a single denomination. Amounts are expressed
// in the smallest indivisible unit of that denomination.
type Coin struct {
	// Ticker is the currency code, 3-4 upper case letters.
	Ticker string `protobuf:"bytes,1,opt,name=ticker,proto3" json:"ticker,omitempty"`
	// Amount in base units.
	Amount uint64 `protobuf:"varint,2,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *Coin) Reset()      { *m = Coin{} }
func (*Coin) ProtoMessage() {}

func (m *Coin) GetTicker() string {
	if m != nil {
		return m.Ticker
	}
	return ""
}

func (m *Coin) GetAmount() uint64 {
	if m != nil {
		return m.Amount
	}
	return 0
}

func init() {
	proto.RegisterType((*Coin)(nil), "coin.Coin")
}
