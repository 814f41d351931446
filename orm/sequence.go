package orm

import (
	"encoding/binary"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
)

// Sequence is a persistent counter. The first value it hands out is 1.
type Sequence struct {
	key []byte
}

// NewSequence returns the counter called name that belongs to bucket. The
// counter lives outside of the bucket key space.
func NewSequence(bucket, name string) Sequence {
	return Sequence{key: []byte("_s." + bucket + ":" + name)}
}

// Current returns the last value handed out, or zero if there was none.
func (s Sequence) Current(db payday.ReadOnlyKVStore) (uint64, error) {
	raw, err := db.Get(s.key)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return DecodeSequence(raw)
}

// Next advances the counter and returns its new value.
func (s Sequence) Next(db payday.KVStore) (uint64, error) {
	n, err := s.Current(db)
	if err != nil {
		return 0, err
	}
	if n == ^uint64(0) {
		return 0, errors.Wrapf(errors.ErrOverflow, "sequence %s", s.key)
	}
	n++
	if err := db.Set(s.key, EncodeSequence(n)); err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return n, nil
}

// EncodeSequence returns the 8 byte big endian form of n. Encoded values
// sort the same way as the numbers, so they can prefix keys.
func EncodeSequence(n uint64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, n)
	return raw
}

// DecodeSequence reverses EncodeSequence. A nil value decodes to zero.
func DecodeSequence(raw []byte) (uint64, error) {
	switch len(raw) {
	case 0:
		if raw == nil {
			return 0, nil
		}
	case 8:
		return binary.BigEndian.Uint64(raw), nil
	}
	return 0, errors.Wrapf(errors.ErrInput, "sequence of %d bytes", len(raw))
}
