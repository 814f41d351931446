package rewards

import (
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/gconf"
)

const (
	pathStartCycleMsg          = "rewards/start"
	pathAccumulateMsg          = "rewards/accumulate"
	pathFinalizeMsg            = "rewards/finalize"
	pathPayoutMsg              = "rewards/payout"
	pathEndCycleMsg            = "rewards/end"
	pathUpdateConfigurationMsg = "rewards/update_configuration"
)

var _ payday.Msg = (*StartCycleMsg)(nil)

func (StartCycleMsg) Path() string {
	return pathStartCycleMsg
}

func (m *StartCycleMsg) Validate() error {
	return nil
}

var _ payday.Msg = (*AccumulateMsg)(nil)

func (AccumulateMsg) Path() string {
	return pathAccumulateMsg
}

func (m *AccumulateMsg) Validate() error {
	if len(m.Holders) == 0 {
		return errors.Field("Holders", errors.ErrEmpty, "at least one holder required")
	}
	var errs error
	for i, h := range m.Holders {
		if err := h.Validate(); err != nil {
			errs = errors.Append(errs, errors.Field("Holders", err, "holder %d", i))
		}
	}
	return errs
}

var _ payday.Msg = (*FinalizeMsg)(nil)

func (FinalizeMsg) Path() string {
	return pathFinalizeMsg
}

func (m *FinalizeMsg) Validate() error {
	return nil
}

var _ payday.Msg = (*PayoutMsg)(nil)

func (PayoutMsg) Path() string {
	return pathPayoutMsg
}

func (m *PayoutMsg) Validate() error {
	return errors.AppendField(nil, "Holder", m.Holder.Validate())
}

var _ payday.Msg = (*EndCycleMsg)(nil)

func (EndCycleMsg) Path() string {
	return pathEndCycleMsg
}

func (m *EndCycleMsg) Validate() error {
	return nil
}

var _ payday.Msg = (*UpdateConfigurationMsg)(nil)

func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

// ConfigPatch returns the new configuration values. Zero fields keep the
// current values.
func (m *UpdateConfigurationMsg) ConfigPatch() gconf.OwnedConfig {
	if m.Patch == nil {
		return nil
	}
	return m.Patch
}

var _ gconf.PatchMsg = (*UpdateConfigurationMsg)(nil)

// Validate will skip any zero fields and validate the set ones.
func (m *UpdateConfigurationMsg) Validate() error {
	if m.Patch == nil {
		return errors.Field("Patch", errors.ErrEmpty, "required")
	}
	c := m.Patch
	var errs error
	if len(c.Owner) != 0 {
		errs = errors.AppendField(errs, "Patch.Owner", c.Owner.Validate())
	}
	if c.TokenTicker != "" || c.RewardTicker != "" {
		errs = errors.AppendField(errs, "Patch", errors.ErrState.New("denominations cannot be changed"))
	}
	if c.DistributionInterval < 0 || c.DistributionInterval > MaxDistributionInterval {
		errs = errors.AppendField(errs, "Patch.DistributionInterval", errors.ErrInput.Newf("must be between 0 and %d", MaxDistributionInterval))
	}
	if c.MaxBatchSize > maxBatchSizeLimit {
		errs = errors.AppendField(errs, "Patch.MaxBatchSize", errors.ErrInput.Newf("must not exceed %d", maxBatchSizeLimit))
	}
	return errs
}
