package payday

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/iov-one/payday/errors"
)

func TestUnixTimeFromGenesis(t *testing.T) {
	var doc struct {
		Seconds UnixTime `json:"seconds"`
		Stamp   UnixTime `json:"stamp"`
		Zero    UnixTime `json:"zero"`
	}
	raw := `{"seconds": 1234567890, "stamp": "2009-02-13T23:31:30Z", "zero": 0}`
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("cannot decode: %+v", err)
	}
	if doc.Seconds != 1234567890 || doc.Stamp != doc.Seconds || doc.Zero != 0 {
		t.Fatalf("unexpected values: %+v", doc)
	}

	for _, bad := range []string{"-1", `"1969-12-31T23:59:59Z"`, `"yesterday"`, `true`} {
		var ut UnixTime
		if err := json.Unmarshal([]byte(bad), &ut); !errors.ErrInput.Is(err) {
			t.Errorf("%s: want invalid input, got %+v", bad, err)
		}
	}
}

func TestUnixTimeAddSeconds(t *testing.T) {
	cases := map[string]struct {
		base    UnixTime
		seconds int64
		want    UnixTime
		wantErr *errors.Error
	}{
		"ten minutes": {base: 1000, seconds: 600, want: 1600},
		"backward":    {base: 1000, seconds: -1, want: 999},
		"largest":     {base: 1, seconds: math.MaxInt64 - 1, want: math.MaxInt64},
		"overflow": {
			base:    1556712000,
			seconds: math.MaxInt64 - 1000,
			wantErr: errors.ErrOverflow,
		},
		"underflow": {
			base:    -10,
			seconds: math.MinInt64,
			wantErr: errors.ErrOverflow,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.base.AddSeconds(tc.seconds)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil && got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestUnixTimeConversion(t *testing.T) {
	base := AsUnixTime(time.Date(2019, time.May, 1, 12, 0, 0, 999, time.UTC))
	if got := AsUnixTime(base.Time()); got != base {
		t.Fatalf("conversion is not symmetric: %d", got)
	}
	if got := base.String(); got != "2019-05-01T12:00:00Z" {
		t.Fatalf("unexpected format: %s", got)
	}
	if err := UnixTime(-1).Validate(); !errors.ErrState.Is(err) {
		t.Fatalf("negative time must be invalid: %+v", err)
	}
}
