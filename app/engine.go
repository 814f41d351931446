package app

import (
	"context"
	"encoding/hex"
	"sync"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/store"
	"github.com/jonboulle/clockwork"
	"github.com/tendermint/tendermint/libs/log"
)

// Engine executes operations one at a time against a durable store. Every
// operation runs in its own cache wrap. Changes are written and committed
// only when the handler succeeds, so a failed operation leaves no trace.
type Engine struct {
	mu sync.Mutex

	store   payday.CommitKVStore
	handler payday.Handler
	clock   clockwork.Clock
	logger  log.Logger

	chainID string
	seq     int64

	onCommit []CommitHook
}

// CommitHook is called after the changes of a delivered transaction are
// committed. It is never called for a failed transaction.
type CommitHook func(tx payday.Tx, res *payday.DeliverResult)

// verifier is implemented by transactions that must be authenticated before
// processing.
type verifier interface {
	Verify(chainID string) error
}

// NewEngine loads the latest committed state of the store. The clock is the
// trusted source of the block time of every operation.
func NewEngine(kv payday.CommitKVStore, h payday.Handler, clock clockwork.Clock) (*Engine, error) {
	if err := kv.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "cannot load state")
	}
	chainID, err := loadChainID(kv)
	if err != nil {
		return nil, err
	}
	return &Engine{
		store:   kv,
		handler: h,
		clock:   clock,
		logger:  log.NewNopLogger(),
		chainID: chainID,
	}, nil
}

// WithLogger sets the logger passed to all operations.
func (e *Engine) WithLogger(logger log.Logger) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.logger = logger
	return e
}

// WithCommitHook registers fn to be called after every successful commit
// of a delivered transaction. Hooks are called in registration order while
// the engine lock is held.
func (e *Engine) WithCommitHook(fn CommitHook) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onCommit = append(e.onCommit, fn)
	return e
}

// ChainID returns the chain id set by the genesis. It is empty until the
// state is initialized.
func (e *Engine) ChainID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chainID
}

// InitChain initializes an empty state from the genesis. It can be called
// only once in the lifetime of a store.
func (e *Engine) InitChain(gen *Genesis, init payday.Initializer) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.chainID != "" {
		return errors.Wrapf(errors.ErrState, "state already initialized for chain %q", e.chainID)
	}

	cache := e.store.CacheWrap()
	if err := saveChainID(cache, gen.ChainID); err != nil {
		cache.Discard()
		return err
	}
	if err := init.FromGenesis(gen.AppState, cache); err != nil {
		cache.Discard()
		return errors.Wrap(err, "genesis")
	}
	if _, err := e.commit(cache); err != nil {
		return err
	}
	e.chainID = gen.ChainID
	e.logger.Info("Chain initialized", "chain_id", gen.ChainID)
	return nil
}

// Check runs the validation path of the handler. The state is never
// modified.
func (e *Engine) Check(ctx context.Context, tx payday.Tx) (*payday.CheckResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, err := e.prepare(ctx, tx)
	if err != nil {
		return nil, err
	}
	cache := e.store.CacheWrap()
	defer cache.Discard()
	return e.handler.Check(ctx, cache, tx)
}

// Deliver executes the transaction. If the handler succeeds all its changes
// are committed before the next operation is admitted.
func (e *Engine) Deliver(ctx context.Context, tx payday.Tx) (*payday.DeliverResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ctx, err := e.prepare(ctx, tx)
	if err != nil {
		return nil, err
	}
	cache := e.store.CacheWrap()
	rec := store.NewRecordingStore(cache)
	res, err := e.handler.Deliver(ctx, rec, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}

	id, err := e.commit(cache)
	if err != nil {
		return nil, err
	}
	payday.GetLogger(ctx).Debug("Committed",
		"version", id.Version,
		"hash", hex.EncodeToString(id.Hash),
		"keys", hexKeys(rec.ChangedKeys()))
	for _, fn := range e.onCommit {
		fn(tx, res)
	}
	return res, nil
}

// View calls fn with a read only view of the committed state.
func (e *Engine) View(fn func(db payday.ReadOnlyKVStore) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cache := e.store.CacheWrap()
	defer cache.Discard()
	return fn(cache)
}

// LatestVersion returns the version and hash of the committed state.
func (e *Engine) LatestVersion() (payday.CommitID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.LatestVersion()
}

func (e *Engine) prepare(ctx context.Context, tx payday.Tx) (context.Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if e.chainID == "" {
		return nil, errors.Wrap(errors.ErrState, "state not initialized")
	}
	if v, ok := tx.(verifier); ok {
		if err := v.Verify(e.chainID); err != nil {
			return nil, err
		}
	}
	e.seq++
	ctx = payday.WithLogger(ctx, e.logger)
	ctx = payday.WithOperation(ctx, e.seq)
	ctx = payday.WithBlockTime(ctx, e.clock.Now())
	return ctx, nil
}

func (e *Engine) commit(cache payday.KVCacheWrap) (payday.CommitID, error) {
	if err := cache.Write(); err != nil {
		return payday.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	id, err := e.store.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	return id, nil
}

func hexKeys(raw [][]byte) []string {
	keys := make([]string, len(raw))
	for i, k := range raw {
		keys[i] = hex.EncodeToString(k)
	}
	return keys
}
