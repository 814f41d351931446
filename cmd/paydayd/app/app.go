/*
Package app assembles the paydayd node: the ledger, the rewards extension,
the decorator stack around them and the persistent store.
*/
package app

import (
	"path/filepath"
	"strings"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/app"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/store/iavl"
	"github.com/iov-one/payday/x"
	"github.com/iov-one/payday/x/cash"
	"github.com/iov-one/payday/x/rewards"
	"github.com/iov-one/payday/x/sigs"
	"github.com/iov-one/payday/x/utils"
	"github.com/jonboulle/clockwork"
)

// Handler returns the message router of the node wrapped in its decorators.
//
// Signatures are verified when present. Payouts are permissionless and are
// accepted without any signature, every other operation checks the signer
// it requires in its own handler.
func Handler() payday.Handler {
	auth := x.ChainAuth(sigs.Authenticate{})
	bank := cash.NewController(cash.NewBucket())

	r := app.NewRouter()
	cash.RegisterRoutes(r, auth, bank)
	rewards.RegisterRoutes(r, auth, bank)

	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator().AllowMissingSigs(),
	).WithHandler(r)
}

// Initializers returns the genesis loaders of the ledger and the rewards
// extension, in the order they must run.
func Initializers() payday.Initializer {
	return app.ChainInitializers(&cash.Initializer{}, &rewards.Initializer{})
}

// Application opens the store at dbPath and returns an engine on top of it.
// An empty dbPath keeps the state in memory. Metrics are updated only for
// committed operations.
func Application(dbPath string, clock clockwork.Clock) (*app.Engine, *iavl.CommitStore, error) {
	kv, err := openStore(dbPath)
	if err != nil {
		return nil, nil, err
	}
	engine, err := app.NewEngine(kv, Handler(), clock)
	if err != nil {
		kv.Close()
		return nil, nil, err
	}
	engine.WithCommitHook(rewards.RecordMetrics)
	return engine, kv, nil
}

func openStore(dbPath string) (*iavl.CommitStore, error) {
	if dbPath == "" {
		return iavl.NewCommitStore("", "payday"), nil
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q", dbPath)
	}
	// The store adds its own extension.
	abs = strings.TrimSuffix(abs, filepath.Ext(abs))
	return iavl.NewCommitStore(filepath.Dir(abs), filepath.Base(abs)), nil
}
