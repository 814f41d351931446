package commands

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iov-one/payday/client"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/x/rewards"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/tendermint/tendermint/libs/log"

	paydayd "github.com/iov-one/payday/cmd/paydayd/app"
)

const (
	flagMetricsAddr = "metrics-addr"
	flagReport      = "report"
	flagLoop        = "loop"
)

// signalContext returns a context cancelled on interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sig:
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sig)
	}()
	return ctx, cancel
}

func (c *cli) runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a whole distribution cycle",
		Long: `Run a whole distribution cycle: start, count all holders of the snapshot,
seal, pay every holder and end the cycle.

With --loop a new cycle is run as soon as the distribution interval allows,
until interrupted. The holder snapshot is read again for every cycle.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withDriver(func(ctx context.Context, n *node, d *client.Driver) error {
				if addr := c.v.GetString(flagMetricsAddr); addr != "" {
					stop := serveMetrics(addr, n.logger)
					defer stop()
				}
				for {
					if err := c.runCycle(ctx, d); err != nil {
						return err
					}
					if !c.v.GetBool(flagLoop) {
						return nil
					}
					if err := c.waitNextCycle(ctx, n); err != nil {
						return err
					}
				}
			})
		},
	}
	f := cmd.Flags()
	f.String(flagKey, authorityKey, "name of the key signing the operations")
	f.String(flagHolders, "", "CSV file with an address column")
	f.Int(flagBatchSize, rewards.DefaultMaxBatchSize, "holders counted in a single operation")
	f.Int(flagWorkers, client.DefaultWorkers, "payouts submitted at the same time")
	f.String(flagReport, "", "write the payout results of every cycle to this CSV file")
	f.String(flagMetricsAddr, "", "serve prometheus metrics on this address, for example :9090")
	f.Bool(flagLoop, false, "keep running cycles until interrupted")
	return cmd
}

func (c *cli) runCycle(ctx context.Context, d *client.Driver) error {
	holders, err := c.loadHolders()
	if err != nil {
		return err
	}
	report, err := d.Run(ctx, holders)
	if report != nil {
		if werr := c.writeReport(report); werr != nil && err == nil {
			err = werr
		}
		fmt.Fprintf(c.out, "cycle %d: paid %d to %d holders, skipped %d, ineligible %d, uncounted %d, dust %d\n",
			report.Cycle, report.Total, report.Paid, report.Skipped, report.Ineligible, report.Uncounted, report.Dust)
	}
	return err
}

func (c *cli) writeReport(report *client.Report) error {
	path := c.v.GetString(flagReport)
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	defer f.Close()
	return client.WriteResults(f, report.Results)
}

// waitNextCycle blocks until the next cycle can be started.
func (c *cli) waitNextCycle(ctx context.Context, n *node) error {
	status, err := paydayd.QueryStatus(n.engine)
	if err != nil {
		return err
	}
	next := status.NextStartAt.Time()
	wait := next.Sub(c.clock.Now())
	if wait <= 0 {
		return nil
	}
	n.logger.Info("Waiting for the next cycle", "at", next.Format(time.RFC3339))
	select {
	case <-c.clock.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// serveMetrics exposes the prometheus metrics over HTTP until the returned
// function is called.
func serveMetrics(addr string, logger log.Logger) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server failed", "err", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Cannot stop metrics server", "err", err)
		}
	}
}
