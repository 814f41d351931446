package rewards

import (
	"strconv"

	proto "github.com/gogo/protobuf/proto"
	"github.com/iov-one/payday"
)

// State of the distribution cycle.
type State int32

const (
	State_Invalid State = 0
	State_Idle    State = 1
	State_Active  State = 2
)

var State_name = map[int32]string{
	0: "STATE_INVALID",
	1: "STATE_IDLE",
	2: "STATE_ACTIVE",
}

var State_value = map[string]int32{
	"STATE_INVALID": 0,
	"STATE_IDLE":    1,
	"STATE_ACTIVE":  2,
}

func (x State) String() string {
	if s, ok := State_name[int32(x)]; ok {
		return s
	}
	return strconv.Itoa(int(x))
}

// Configuration is the distribution policy. It is stored as the "rewards"
// gconf singleton.
type Configuration struct {
	// Owner is the authority allowed to drive the distribution cycle and
	// to update this configuration.
	Owner payday.Address `protobuf:"bytes,1,opt,name=owner,proto3" json:"owner,omitempty"`
	// TokenTicker is the denomination of the held tokens whose balances
	// are counted.
	TokenTicker string `protobuf:"bytes,2,opt,name=token_ticker,json=tokenTicker,proto3" json:"token_ticker,omitempty"`
	// RewardTicker is the denomination of the distributed rewards.
	RewardTicker string `protobuf:"bytes,3,opt,name=reward_ticker,json=rewardTicker,proto3" json:"reward_ticker,omitempty"`
	// MinEligibleBalance is the inclusive threshold a holder balance must
	// reach to be counted and to receive a reward.
	MinEligibleBalance uint64 `protobuf:"varint,4,opt,name=min_eligible_balance,json=minEligibleBalance,proto3" json:"min_eligible_balance,omitempty"`
	// DistributionInterval is the minimal number of seconds between the
	// end of a cycle and the start of the next one.
	DistributionInterval int64 `protobuf:"varint,5,opt,name=distribution_interval,json=distributionInterval,proto3" json:"distribution_interval,omitempty"`
	// MaxBatchSize is the maximum number of holders a single accumulate
	// operation can inspect.
	MaxBatchSize uint32 `protobuf:"varint,6,opt,name=max_batch_size,json=maxBatchSize,proto3" json:"max_batch_size,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

// Distribution is the state of the distribution cycle.
type Distribution struct {
	State State `protobuf:"varint,1,opt,name=state,proto3,enum=rewards.State" json:"state,omitempty"`
	// Cycle is the sequence number of the current, or the most recent,
	// cycle. The first cycle is 1.
	Cycle uint64 `protobuf:"varint,2,opt,name=cycle,proto3" json:"cycle,omitempty"`
	// TotalEligible is Ttotal, the sum of all counted balances.
	TotalEligible uint64 `protobuf:"varint,3,opt,name=total_eligible,json=totalEligible,proto3" json:"total_eligible,omitempty"`
	// LastDistributionAt is the time the most recent cycle was closed.
	LastDistributionAt payday.UnixTime `protobuf:"varint,4,opt,name=last_distribution_at,json=lastDistributionAt,proto3" json:"last_distribution_at,omitempty"`
	// Sealed is set once no more balances can be counted.
	Sealed bool `protobuf:"varint,5,opt,name=sealed,proto3" json:"sealed,omitempty"`
	// Pool is X, the vault balance at the moment the cycle was sealed.
	Pool uint64 `protobuf:"varint,6,opt,name=pool,proto3" json:"pool,omitempty"`
	// CountedHolders is the number of holders counted in this cycle.
	CountedHolders uint64 `protobuf:"varint,7,opt,name=counted_holders,json=countedHolders,proto3" json:"counted_holders,omitempty"`
	// PaidHolders is the number of processed payouts in this cycle.
	PaidHolders uint64 `protobuf:"varint,8,opt,name=paid_holders,json=paidHolders,proto3" json:"paid_holders,omitempty"`
	// PaidTotal is the sum of all rewards transferred in this cycle.
	PaidTotal uint64 `protobuf:"varint,9,opt,name=paid_total,json=paidTotal,proto3" json:"paid_total,omitempty"`
}

func (m *Distribution) Reset()         { *m = Distribution{} }
func (m *Distribution) String() string { return proto.CompactTextString(m) }
func (*Distribution) ProtoMessage()    {}

// Holding is the balance of a holder counted in a cycle.
type Holding struct {
	Holder payday.Address `protobuf:"bytes,1,opt,name=holder,proto3" json:"holder,omitempty"`
	Cycle  uint64         `protobuf:"varint,2,opt,name=cycle,proto3" json:"cycle,omitempty"`
	// Balance is Ti, the eligible balance at the moment it was counted.
	Balance uint64 `protobuf:"varint,3,opt,name=balance,proto3" json:"balance,omitempty"`
	// Paid is set once the payout for this holder was processed.
	Paid bool `protobuf:"varint,4,opt,name=paid,proto3" json:"paid,omitempty"`
	// Reward is Ri, the amount transferred to the holder.
	Reward uint64 `protobuf:"varint,5,opt,name=reward,proto3" json:"reward,omitempty"`
}

func (m *Holding) Reset()         { *m = Holding{} }
func (m *Holding) String() string { return proto.CompactTextString(m) }
func (*Holding) ProtoMessage()    {}

// StartCycleMsg opens a new distribution cycle.
type StartCycleMsg struct{}

func (m *StartCycleMsg) Reset()         { *m = StartCycleMsg{} }
func (m *StartCycleMsg) String() string { return proto.CompactTextString(m) }
func (*StartCycleMsg) ProtoMessage()    {}

// AccumulateMsg counts the eligible balances of a batch of holders.
// Balances are read from the ledger.
type AccumulateMsg struct {
	Holders []payday.Address `protobuf:"bytes,1,rep,name=holders,proto3" json:"holders,omitempty"`
}

func (m *AccumulateMsg) Reset()         { *m = AccumulateMsg{} }
func (m *AccumulateMsg) String() string { return proto.CompactTextString(m) }
func (*AccumulateMsg) ProtoMessage()    {}

// FinalizeMsg seals the total eligible balance and the reward pool of the
// current cycle.
type FinalizeMsg struct{}

func (m *FinalizeMsg) Reset()         { *m = FinalizeMsg{} }
func (m *FinalizeMsg) String() string { return proto.CompactTextString(m) }
func (*FinalizeMsg) ProtoMessage()    {}

// PayoutMsg transfers the reward of a single holder.
type PayoutMsg struct {
	Holder payday.Address `protobuf:"bytes,1,opt,name=holder,proto3" json:"holder,omitempty"`
}

func (m *PayoutMsg) Reset()         { *m = PayoutMsg{} }
func (m *PayoutMsg) String() string { return proto.CompactTextString(m) }
func (*PayoutMsg) ProtoMessage()    {}

// EndCycleMsg closes the current distribution cycle.
type EndCycleMsg struct{}

func (m *EndCycleMsg) Reset()         { *m = EndCycleMsg{} }
func (m *EndCycleMsg) String() string { return proto.CompactTextString(m) }
func (*EndCycleMsg) ProtoMessage()    {}

// UpdateConfigurationMsg patches the configuration. Zero value fields are
// not updated.
type UpdateConfigurationMsg struct {
	Patch *Configuration `protobuf:"bytes,1,opt,name=patch,proto3" json:"patch,omitempty"`
}

func (m *UpdateConfigurationMsg) Reset()         { *m = UpdateConfigurationMsg{} }
func (m *UpdateConfigurationMsg) String() string { return proto.CompactTextString(m) }
func (*UpdateConfigurationMsg) ProtoMessage()    {}

func init() {
	proto.RegisterEnum("rewards.State", State_name, State_value)
	proto.RegisterType((*Configuration)(nil), "rewards.Configuration")
	proto.RegisterType((*Distribution)(nil), "rewards.Distribution")
	proto.RegisterType((*Holding)(nil), "rewards.Holding")
	proto.RegisterType((*StartCycleMsg)(nil), "rewards.StartCycleMsg")
	proto.RegisterType((*AccumulateMsg)(nil), "rewards.AccumulateMsg")
	proto.RegisterType((*FinalizeMsg)(nil), "rewards.FinalizeMsg")
	proto.RegisterType((*PayoutMsg)(nil), "rewards.PayoutMsg")
	proto.RegisterType((*EndCycleMsg)(nil), "rewards.EndCycleMsg")
	proto.RegisterType((*UpdateConfigurationMsg)(nil), "rewards.UpdateConfigurationMsg")
}
