package orm

import (
	"reflect"
	"regexp"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// ModelBucket keeps the records of one model type under the "<name>:"
// prefix. Records are validated before they are written and the bucket
// refuses models of any other type.
type ModelBucket struct {
	prefix []byte
	model  reflect.Type
}

// NewModelBucket returns the bucket of name for models of the same type as
// example. It panics on a name that is not 3 to 20 lower case letters or
// underscores.
func NewModelBucket(name string, example Model) ModelBucket {
	if !isBucketName(name) {
		panic("illegal bucket: " + name)
	}
	return ModelBucket{
		prefix: []byte(name + ":"),
		model:  reflect.TypeOf(example),
	}
}

func (b ModelBucket) key(k []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(k))
	return append(append(out, b.prefix...), k...)
}

func (b ModelBucket) checkType(m Model) error {
	if got := reflect.TypeOf(m); got != b.model {
		return errors.Wrapf(errors.ErrType, "bucket of %s got %s", b.model, got)
	}
	return nil
}

// One loads the record of key into dest. ErrNotFound is returned for a
// missing record.
func (b ModelBucket) One(db payday.ReadOnlyKVStore, key []byte, dest Model) error {
	if err := b.checkType(dest); err != nil {
		return err
	}
	raw, err := db.Get(b.key(key))
	switch {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.prefix[:len(b.prefix)-1], key)
	}
	dest.Reset()
	return Unmarshal(raw, dest)
}

// Has returns ErrNotFound unless a record of key exists.
func (b ModelBucket) Has(db payday.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(b.key(key))
	switch {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.prefix[:len(b.prefix)-1], key)
	}
	return nil
}

// Put validates m and writes it under key, replacing any previous record.
func (b ModelBucket) Put(db payday.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := b.checkType(m); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "%T", m)
	}
	raw, err := Marshal(m)
	if err != nil {
		return err
	}
	if err := db.Set(b.key(key), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Delete removes the record of key. ErrNotFound is returned for a missing
// record.
func (b ModelBucket) Delete(db payday.KVStore, key []byte) error {
	if err := b.Has(db, key); err != nil {
		return err
	}
	if err := db.Delete(b.key(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
