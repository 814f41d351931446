package cash

import (
	proto "github.com/gogo/protobuf/proto"
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/coin"
)

// Set describes the content of a wallet.
type Set struct {
	// Owner is stored together with the coins so that a wallet is never
	// serialized to an empty value.
	Owner payday.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	Coins []*coin.Coin   `protobuf:"bytes,2,rep,name=coins,proto3" json:"coins,omitempty"`
}

func (m *Set) Reset()         { *m = Set{} }
func (m *Set) String() string { return proto.CompactTextString(m) }
func (*Set) ProtoMessage()    {}

func (m *Set) GetCoins() []*coin.Coin {
	if m != nil {
		return m.Coins
	}
	return nil
}

// SendMsg moves tokens between two wallets.
type SendMsg struct {
	Source      payday.Address `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination payday.Address `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	Amount      *coin.Coin     `protobuf:"bytes,3,opt,name=amount,proto3" json:"amount,omitempty"`
	// Memo is an optional human readable message.
	Memo string `protobuf:"bytes,4,opt,name=memo,proto3" json:"memo,omitempty"`
}

func (m *SendMsg) Reset()         { *m = SendMsg{} }
func (m *SendMsg) String() string { return proto.CompactTextString(m) }
func (*SendMsg) ProtoMessage()    {}

func init() {
	proto.RegisterType((*Set)(nil), "cash.Set")
	proto.RegisterType((*SendMsg)(nil), "cash.SendMsg")
}
