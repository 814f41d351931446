package weavetest

import (
	"testing"

	"github.com/iov-one/payday"
)

// ParseAddress takes an address in a human readable format and returns
// its binary representation. This function is a test helper that is using
// payday.ParseAddress function functionality.
func ParseAddress(t testing.TB, encodedAddress string) payday.Address {
	t.Helper()

	addr, err := payday.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
