package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/client"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/x/rewards"
	"github.com/spf13/cobra"

	paydayd "github.com/iov-one/payday/cmd/paydayd/app"
)

const (
	flagHolders   = "holders"
	flagBatchSize = "batch-size"
	flagWorkers   = "workers"
)

func (c *cli) printJSON(v interface{}) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	fmt.Fprintln(c.out, string(raw))
	return nil
}

func (c *cli) statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the configuration and the state of the distribution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.openNode()
			if err != nil {
				return err
			}
			defer n.Close()

			status, err := paydayd.QueryStatus(n.engine)
			if err != nil {
				return err
			}
			return c.printJSON(status)
		},
	}
}

func (c *cli) balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <address>",
		Short: "Print all coins of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := c.parseAddress(args[0])
			if err != nil {
				return err
			}
			n, err := c.openNode()
			if err != nil {
				return err
			}
			defer n.Close()

			coins, err := paydayd.QueryBalance(n.engine, addr)
			if err != nil {
				return err
			}
			for _, coin := range coins {
				fmt.Fprintln(c.out, coin)
			}
			return nil
		},
	}
}

// parseAddress accepts an address, the name of a stored key or "vault".
func (c *cli) parseAddress(s string) (payday.Address, error) {
	if s == "vault" {
		return rewards.VaultAddress(), nil
	}
	if keys, err := c.loadKeys(); err == nil {
		if k, ok := keys[s]; ok {
			return k.PublicKey().Address(), nil
		}
	}
	addr, err := payday.ParseAddress(s)
	if err != nil {
		return nil, err
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// loadHolders reads the holder snapshot named by the holders flag.
func (c *cli) loadHolders() ([]payday.Address, error) {
	path := c.v.GetString(flagHolders)
	if path == "" {
		return nil, errors.Wrapf(errors.ErrEmpty, "--%s is required", flagHolders)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	defer f.Close()
	return client.LoadHolders(f)
}

// withDriver opens the state and calls fn with a driver signing with the
// authority key.
func (c *cli) withDriver(fn func(context.Context, *node, *client.Driver) error) error {
	authority, err := c.key(c.v.GetString(flagKey))
	if err != nil {
		return err
	}
	n, err := c.openNode()
	if err != nil {
		return err
	}
	defer n.Close()

	driver := client.NewDriver(n.engine, authority).
		WithLogger(n.logger).
		WithBatchSize(c.v.GetInt(flagBatchSize)).
		WithWorkers(c.v.GetInt(flagWorkers))

	ctx, cancel := signalContext()
	defer cancel()
	return fn(ctx, n, driver)
}

func (c *cli) driverCmd(use, short string, fn func(context.Context, *client.Driver) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDriver(func(ctx context.Context, _ *node, d *client.Driver) error {
				return fn(ctx, d)
			})
		},
	}
	cmd.Flags().String(flagKey, authorityKey, "name of the key signing the operation")
	return cmd
}

func (c *cli) startCmd() *cobra.Command {
	return c.driverCmd("start", "Start a distribution cycle", func(ctx context.Context, d *client.Driver) error {
		return d.Start(ctx)
	})
}

func (c *cli) accumulateCmd() *cobra.Command {
	cmd := c.driverCmd("accumulate", "Count the balances of the holders listed in a CSV file", func(ctx context.Context, d *client.Driver) error {
		holders, err := c.loadHolders()
		if err != nil {
			return err
		}
		return d.Accumulate(ctx, holders)
	})
	cmd.Flags().String(flagHolders, "", "CSV file with an address column")
	cmd.Flags().Int(flagBatchSize, rewards.DefaultMaxBatchSize, "holders counted in a single operation")
	return cmd
}

func (c *cli) finalizeCmd() *cobra.Command {
	return c.driverCmd("finalize", "Seal the eligible total and the reward pool", func(ctx context.Context, d *client.Driver) error {
		dist, err := d.Finalize(ctx)
		if err != nil {
			return err
		}
		return c.printJSON(dist)
	})
}

func (c *cli) payoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payout [address...]",
		Short: "Pay the rewards of the given holders",
		Long: `Pay the rewards of the given holders. Holders are given as arguments or
in a CSV file. Payouts do not require a signature.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var holders []payday.Address
			for _, a := range args {
				addr, err := c.parseAddress(a)
				if err != nil {
					return err
				}
				holders = append(holders, addr)
			}
			if c.v.GetString(flagHolders) != "" {
				more, err := c.loadHolders()
				if err != nil {
					return err
				}
				holders = append(holders, more...)
			}
			if len(holders) == 0 {
				return errors.Wrap(errors.ErrEmpty, "no holders given")
			}

			n, err := c.openNode()
			if err != nil {
				return err
			}
			defer n.Close()

			// Payouts are not signed, so no key is needed.
			driver := client.NewDriver(n.engine, nil).
				WithLogger(n.logger).
				WithWorkers(c.v.GetInt(flagWorkers))
			ctx, cancel := signalContext()
			defer cancel()
			report, err := driver.Payout(ctx, holders)
			if report != nil {
				if werr := client.WriteResults(c.out, report.Results); werr != nil && err == nil {
					err = werr
				}
			}
			return err
		},
	}
	cmd.Flags().String(flagHolders, "", "CSV file with an address column")
	cmd.Flags().Int(flagWorkers, client.DefaultWorkers, "payouts submitted at the same time")
	return cmd
}

func (c *cli) endCmd() *cobra.Command {
	return c.driverCmd("end", "End the distribution cycle", func(ctx context.Context, d *client.Driver) error {
		return d.End(ctx)
	})
}
