package app

import (
	"encoding/json"
	"io/ioutil"
	"regexp"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
)

// Genesis is the content of the genesis file.
type Genesis struct {
	ChainID  string         `json:"chain_id"`
	AppState payday.Options `json:"app_state"`
}

// LoadGenesis reads a genesis file.
func LoadGenesis(path string) (*Genesis, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	var gen Genesis
	if err := json.Unmarshal(raw, &gen); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode genesis: %s", err)
	}
	return &gen, nil
}

// ChainInitializers returns an initializer that calls all given
// initializers in order, aborting at the first error.
func ChainInitializers(inits ...payday.Initializer) payday.Initializer {
	return chainInitializer(inits)
}

type chainInitializer []payday.Initializer

func (c chainInitializer) FromGenesis(opts payday.Options, kv payday.KVStore) error {
	for _, i := range c {
		if err := i.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}

var isChainID = regexp.MustCompile(`^[a-zA-Z0-9_.-]{4,128}$`).MatchString

const chainIDKey = "_i:chain_id"

// loadChainID returns the stored chain id, or an empty string if the state
// was not initialized yet.
func loadChainID(kv payday.ReadOnlyKVStore) (string, error) {
	v, err := kv.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(v), nil
}

func saveChainID(kv payday.KVStore, chainID string) error {
	if !isChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "invalid chain id %q", chainID)
	}
	if err := kv.Set([]byte(chainIDKey), []byte(chainID)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
