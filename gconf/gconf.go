package gconf

import (
	"encoding/json"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
	"github.com/iov-one/payday/orm"
)

// Configuration is a protobuf model stored as the settings of a package.
type Configuration interface {
	orm.Model
}

// OwnedConfig is a configuration that names the address allowed to change
// it.
type OwnedConfig interface {
	Configuration
	GetOwner() payday.Address
}

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates conf and stores it as the configuration of pkg.
func Save(db payday.KVStore, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "configuration of %s", pkg)
	}
	raw, err := orm.Marshal(conf)
	if err != nil {
		return errors.Wrapf(err, "configuration of %s", pkg)
	}
	if err := db.Set(key(pkg), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Load reads the configuration of pkg into dst. ErrNotFound is returned if
// none was saved.
func Load(db payday.ReadOnlyKVStore, pkg string, dst Configuration) error {
	raw, err := db.Get(key(pkg))
	switch {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "configuration of %s", pkg)
	}
	dst.Reset()
	return errors.Wrapf(orm.Unmarshal(raw, dst), "configuration of %s", pkg)
}

// InitConfig decodes the genesis entry conf.<pkg> into conf and saves it.
// Fields the genesis leaves out keep the value conf already has, so callers
// set the defaults before.
func InitConfig(db payday.KVStore, opts payday.Options, pkg string, conf Configuration) error {
	var section map[string]json.RawMessage
	if err := opts.ReadOptions("conf", &section); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis conf section: %s", err)
	}
	raw, ok := section[pkg]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "genesis has no configuration of %s", pkg)
	}
	if err := json.Unmarshal(raw, conf); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis configuration of %s: %s", pkg, err)
	}
	return Save(db, pkg, conf)
}
