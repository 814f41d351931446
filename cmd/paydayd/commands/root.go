/*
Package commands implements the paydayd command line interface.

All state is kept under the home directory:

  config.toml    optional, values of any persistent flag
  genesis.json   written by init, loaded on the first use of the state
  keys.json      private keys by name, the authority key is "authority"
  data/          the committed state

Every flag can also be set with a PAYDAY_ prefixed environment variable, for
example PAYDAY_LOG_LEVEL=debug.
*/
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/payday/app"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/store/iavl"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	paydayd "github.com/iov-one/payday/cmd/paydayd/app"
)

const (
	flagHome     = "home"
	flagLogLevel = "log-level"
	flagDebug    = "debug"
	flagKey      = "key"

	genesisFile = "genesis.json"
	keysFile    = "keys.json"
	configFile  = "config.toml"
	dataDir     = "data"

	authorityKey = "authority"
)

// cli carries the state shared by all commands.
type cli struct {
	v     *viper.Viper
	clock clockwork.Clock
	out   io.Writer

	// running is set once the arguments were accepted.
	running bool
}

// Execute runs paydayd with the given arguments and returns the process
// exit code. A failure is reported to stderr with its error code. Unless
// --debug is set, errors without a code are reported as internal errors.
func Execute(args []string, stderr io.Writer) int {
	c := &cli{
		v:     viper.New(),
		clock: clockwork.NewRealClock(),
		out:   os.Stdout,
	}
	return c.execute(args, stderr)
}

func (c *cli) execute(args []string, stderr io.Writer) int {
	root := c.rootCmd()
	root.SetArgs(args)
	err := root.Execute()
	if err == nil {
		return 0
	}
	if !c.running {
		// Rejected by the argument parser.
		err = errors.Wrap(errors.ErrInput, err.Error())
	}
	code, log := errors.Info(err, c.v.GetBool(flagDebug))
	fmt.Fprintf(stderr, "Error %d: %s\n", code, log)
	return 1
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "paydayd",
		Short:         "Proportional reward distribution",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c.running = true
			c.out = cmd.OutOrStdout()
			return c.loadConfig(cmd.Flags())
		},
	}

	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".payday")
	root.PersistentFlags().String(flagHome, defaultHome, "directory to store files under")
	root.PersistentFlags().String(flagLogLevel, "info", "log level: debug, info, error or none")
	root.PersistentFlags().Bool(flagDebug, false, "report errors with their cause chain and stack trace")

	root.AddCommand(
		c.initCmd(),
		c.keysCmd(),
		c.statusCmd(),
		c.balanceCmd(),
		c.startCmd(),
		c.accumulateCmd(),
		c.finalizeCmd(),
		c.payoutCmd(),
		c.endCmd(),
		c.runCmd(),
		c.sendCmd(),
	)
	return root
}

// loadConfig binds the flags, the environment and the optional config file
// of the home directory. Explicitly set flags take precedence.
func (c *cli) loadConfig(flags *pflag.FlagSet) error {
	if err := c.v.BindPFlags(flags); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	c.v.SetEnvPrefix("PAYDAY")
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	path := filepath.Join(c.v.GetString(flagHome), configFile)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	c.v.SetConfigFile(path)
	if err := c.v.ReadInConfig(); err != nil {
		return errors.Wrapf(errors.ErrInput, "config %s: %s", path, err)
	}
	return nil
}

func (c *cli) home() string {
	return c.v.GetString(flagHome)
}

func (c *cli) logger() (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr)).With("module", "payday")
	level := c.v.GetString(flagLogLevel)
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level %q", level)
	}
	return log.NewFilter(logger, opt), nil
}

// node is an opened state.
type node struct {
	engine *app.Engine
	store  *iavl.CommitStore
	logger log.Logger
}

func (n *node) Close() {
	n.store.Close()
}

// openNode opens the state of the home directory. The first time the state
// is used, it is initialized from the genesis file.
func (c *cli) openNode() (*node, error) {
	logger, err := c.logger()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(c.home(), dataDir)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	engine, kv, err := paydayd.Application(filepath.Join(dir, "payday.db"), c.clock)
	if err != nil {
		return nil, err
	}
	engine.WithLogger(logger)
	n := &node{engine: engine, store: kv, logger: logger}

	if engine.ChainID() == "" {
		gen, err := app.LoadGenesis(filepath.Join(c.home(), genesisFile))
		if err != nil {
			n.Close()
			return nil, errors.Wrap(err, "state not initialized, run init first")
		}
		if err := engine.InitChain(gen, paydayd.Initializers()); err != nil {
			n.Close()
			return nil, err
		}
	}
	return n, nil
}
