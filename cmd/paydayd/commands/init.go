package commands

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/app"
	"github.com/iov-one/payday/coin"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/x/cash"
	"github.com/iov-one/payday/x/rewards"
	"github.com/spf13/cobra"
)

const (
	flagChainID      = "chain-id"
	flagToken        = "token"
	flagRewardTicker = "reward-ticker"
	flagMinBalance   = "min-balance"
	flagInterval     = "interval"
	flagMaxBatch     = "max-batch"
	flagSupply       = "supply"
	flagForce        = "force"
)

func (c *cli) initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the authority key and the genesis file",
		Long: `Create the authority key and the genesis file.

The first distribution cycle can start one interval after the time of init.
The initial supply is credited to the authority.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInit()
		},
	}
	f := cmd.Flags()
	f.String(flagChainID, "payday-local", "chain id that signatures are bound to")
	f.String(flagToken, "IOV", "ticker of the held token")
	f.String(flagRewardTicker, "", "ticker of the rewards, the held token by default")
	f.Uint64(flagMinBalance, rewards.DefaultMinEligibleBalance, "minimum balance eligible for rewards")
	f.Int64(flagInterval, rewards.DefaultDistributionInterval, "seconds between the end of a cycle and the next start")
	f.Uint32(flagMaxBatch, rewards.DefaultMaxBatchSize, "maximum number of holders counted in a single operation")
	f.String(flagSupply, "", "initial supply credited to the authority, for example \"1000000 IOV\"")
	f.Bool(flagForce, false, "overwrite an existing genesis file")
	return cmd
}

func (c *cli) runInit() error {
	genPath := filepath.Join(c.home(), genesisFile)
	if _, err := os.Stat(genPath); err == nil && !c.v.GetBool(flagForce) {
		return errors.Wrapf(errors.ErrDuplicate, "%s already exists", genPath)
	}

	authority, err := c.key(authorityKey)
	if errors.ErrNotFound.Is(err) {
		authority, err = c.newKey(authorityKey)
	}
	if err != nil {
		return err
	}
	owner := authority.PublicKey().Address()

	conf := rewards.Configuration{
		Owner:                owner,
		TokenTicker:          c.v.GetString(flagToken),
		RewardTicker:         c.v.GetString(flagRewardTicker),
		MinEligibleBalance:   c.v.GetUint64(flagMinBalance),
		DistributionInterval: c.v.GetInt64(flagInterval),
		MaxBatchSize:         uint32(c.v.GetUint64(flagMaxBatch)),
	}
	if err := conf.Validate(); err != nil {
		return err
	}

	var accounts []cash.GenesisAccount
	if s := c.v.GetString(flagSupply); s != "" {
		supply, err := coin.ParseHumanFormat(s)
		if err != nil {
			return err
		}
		accounts = append(accounts, cash.GenesisAccount{Address: owner, Coins: coin.Coins{&supply}})
	}

	state, err := encodeOptions(map[string]interface{}{
		"cash": accounts,
		"conf": map[string]interface{}{"rewards": &conf},
		"rewards": map[string]interface{}{
			"last_distribution_at": payday.AsUnixTime(c.clock.Now()),
		},
	})
	if err != nil {
		return err
	}
	gen := app.Genesis{
		ChainID:  c.v.GetString(flagChainID),
		AppState: state,
	}
	raw, err := json.MarshalIndent(gen, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := ioutil.WriteFile(genPath, raw, 0600); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	fmt.Fprintf(c.out, "genesis written to %s\nauthority %s\nvault %s\n", genPath, owner, rewards.VaultAddress())
	return nil
}

func encodeOptions(sections map[string]interface{}) (payday.Options, error) {
	opts := make(payday.Options, len(sections))
	for name, section := range sections {
		raw, err := json.Marshal(section)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "%s: %s", name, err)
		}
		opts[name] = raw
	}
	return opts, nil
}
