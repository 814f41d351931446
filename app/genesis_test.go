package app

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "genesis.json")
	content := `{"chain_id": "test-chain", "app_state": {"rewards": {"last_distribution_at": 100}}}`
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))

	gen, err := LoadGenesis(path)
	require.NoError(t, err)
	assert.Equal(t, "test-chain", gen.ChainID)
	assert.JSONEq(t, `{"last_distribution_at": 100}`, string(gen.AppState["rewards"]))

	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.ErrInput.Is(err))

	require.NoError(t, ioutil.WriteFile(path, []byte("{"), 0600))
	_, err = LoadGenesis(path)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestChainInitializers(t *testing.T) {
	var calls []string
	record := func(name string, err error) payday.Initializer {
		return initFunc(func(payday.Options, payday.KVStore) error {
			calls = append(calls, name)
			return err
		})
	}

	init := ChainInitializers(record("a", nil), record("b", errors.ErrInput), record("c", nil))
	err := init.FromGenesis(payday.Options{}, store.MemStore())
	assert.True(t, errors.ErrInput.Is(err))
	assert.Equal(t, []string{"a", "b"}, calls)
}
