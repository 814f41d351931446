package cash

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/payday"
	"github.com/iov-one/payday/store"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenesisAccounts(t *testing.T) {
	Convey("Given a cash initializer", t, func() {
		kv := store.MemStore()
		init := Initializer{}
		controller := NewController(NewBucket())

		Convey("No accounts is not an error", func() {
			So(init.FromGenesis(payday.Options{}, kv), ShouldBeNil)
		})

		Convey("Accounts are loaded", func() {
			genesis := `{"cash": [
				{"address": "0102030405060708090021222324252627282930", "coins": ["50 FOO", {"ticker": "ETH", "amount": 7}, "1 FOO"]}
			]}`
			var opts payday.Options
			So(json.Unmarshal([]byte(genesis), &opts), ShouldBeNil)
			So(init.FromGenesis(opts, kv), ShouldBeNil)

			addr, err := payday.ParseAddress("0102030405060708090021222324252627282930")
			So(err, ShouldBeNil)
			bal, err := controller.Balance(kv, addr)
			So(err, ShouldBeNil)
			So(bal.Balance("FOO"), ShouldEqual, 51)
			So(bal.Balance("ETH"), ShouldEqual, 7)
		})

		Convey("Invalid address is rejected", func() {
			opts := payday.Options{"cash": []byte(`[{"address": "", "coins": ["1 FOO"]}]`)}
			So(init.FromGenesis(opts, kv), ShouldNotBeNil)
		})

		Convey("Malformed data is rejected", func() {
			opts := payday.Options{"cash": []byte(`[{"coins": 123}]`)}
			So(init.FromGenesis(opts, kv), ShouldNotBeNil)
		})
	})
}
