package commands

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"

	"github.com/iov-one/payday/crypto"
	"github.com/iov-one/payday/errors"
	"github.com/spf13/cobra"
)

// keyring is the content of the keys file.
type keyring map[string]*crypto.PrivateKey

func (c *cli) keysPath() string {
	return filepath.Join(c.home(), keysFile)
}

// loadKeys returns the stored keys. A missing file is an empty keyring.
func (c *cli) loadKeys() (keyring, error) {
	raw, err := ioutil.ReadFile(c.keysPath())
	if os.IsNotExist(err) {
		return keyring{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	var keys keyring
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot decode %s: %s", keysFile, err)
	}
	return keys, nil
}

func (c *cli) saveKeys(keys keyring) error {
	raw, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := os.MkdirAll(c.home(), 0700); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := ioutil.WriteFile(c.keysPath(), raw, 0600); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// key returns the named key.
func (c *cli) key(name string) (*crypto.PrivateKey, error) {
	keys, err := c.loadKeys()
	if err != nil {
		return nil, err
	}
	k, ok := keys[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "key %q", name)
	}
	return k, nil
}

// newKey generates and stores a key. Existing keys are never overwritten.
func (c *cli) newKey(name string) (*crypto.PrivateKey, error) {
	keys, err := c.loadKeys()
	if err != nil {
		return nil, err
	}
	if _, ok := keys[name]; ok {
		return nil, errors.Wrapf(errors.ErrDuplicate, "key %q", name)
	}
	k := crypto.GenerateKey()
	keys[name] = k
	if err := c.saveKeys(keys); err != nil {
		return nil, err
	}
	return k, nil
}

func (c *cli) keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage private keys",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "new <name>",
			Short: "Generate a new key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				k, err := c.newKey(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "%s\t%s\n", args[0], k.PublicKey().Address())
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List all keys with their addresses",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				keys, err := c.loadKeys()
				if err != nil {
					return err
				}
				names := make([]string, 0, len(keys))
				for name := range keys {
					names = append(names, name)
				}
				sort.Strings(names)
				for _, name := range names {
					fmt.Fprintf(c.out, "%s\t%s\n", name, keys[name].PublicKey().Address())
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "Print the address of a key",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				k, err := c.key(args[0])
				if err != nil {
					return err
				}
				addr := k.PublicKey().Address()
				b32, err := addr.Bech32()
				if err != nil {
					return err
				}
				fmt.Fprintf(c.out, "hex:    %s\nbech32: %s\n", addr, b32)
				return nil
			},
		},
	)
	return cmd
}
