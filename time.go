package payday

import (
	"encoding/json"
	"math"
	"time"

	"github.com/iov-one/payday/errors"
)

// UnixTime is a moment in whole seconds since the epoch. Records store it
// instead of time.Time to keep a fixed size encoding.
type UnixTime int64

// AsUnixTime truncates t to the second.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

func (t UnixTime) String() string {
	return t.Time().Format(time.RFC3339)
}

// AddSeconds returns t moved by n seconds, or ErrOverflow when the result
// is out of the int64 range.
func (t UnixTime) AddSeconds(n int64) (UnixTime, error) {
	switch {
	case n > 0 && int64(t) > math.MaxInt64-n:
	case n < 0 && int64(t) < math.MinInt64-n:
	default:
		return t + UnixTime(n), nil
	}
	return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d seconds", t, n)
}

// Validate rejects moments before the epoch.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrapf(errors.ErrState, "time %d before epoch", int64(t))
	}
	return nil
}

// UnmarshalJSON reads either a number of seconds or an RFC 3339 string,
// which is easier to write in a genesis file.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var parsed UnixTime
	var seconds int64
	var stamp time.Time
	switch {
	case json.Unmarshal(raw, &seconds) == nil:
		parsed = UnixTime(seconds)
	case json.Unmarshal(raw, &stamp) == nil:
		parsed = AsUnixTime(stamp)
	default:
		return errors.Wrapf(errors.ErrInput, "time %s", raw)
	}
	if parsed < 0 {
		return errors.Wrap(errors.ErrInput, "time before epoch")
	}
	*t = parsed
	return nil
}
