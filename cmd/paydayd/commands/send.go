package commands

import (
	"fmt"

	"github.com/iov-one/payday/app"
	"github.com/iov-one/payday/coin"
	"github.com/iov-one/payday/x/cash"
	"github.com/spf13/cobra"
)

const (
	flagFrom = "from"
	flagMemo = "memo"
)

func (c *cli) sendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send <destination> <amount>",
		Short: "Send tokens, for example to fund the reward vault",
		Example: `  paydayd send vault "1000 IOV"
  paydayd send --from alice 0102030405060708090021222324252627282930 "5 IOV"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := c.key(c.v.GetString(flagFrom))
			if err != nil {
				return err
			}
			dest, err := c.parseAddress(args[0])
			if err != nil {
				return err
			}
			amount, err := coin.ParseHumanFormat(args[1])
			if err != nil {
				return err
			}

			n, err := c.openNode()
			if err != nil {
				return err
			}
			defer n.Close()

			tx := app.NewTx(&cash.SendMsg{
				Source:      key.PublicKey().Address(),
				Destination: dest,
				Amount:      &amount,
				Memo:        c.v.GetString(flagMemo),
			})
			if err := tx.Sign(n.engine.ChainID(), key); err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()
			if _, err := n.engine.Deliver(ctx, tx); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "sent %s to %s\n", amount.String(), dest)
			return nil
		},
	}
	cmd.Flags().String(flagFrom, authorityKey, "name of the sending key")
	cmd.Flags().String(flagMemo, "", "note attached to the transfer")
	return cmd
}
