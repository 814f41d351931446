package payday

import (
	"testing"

	"github.com/iov-one/payday/errors"
)

type demoMsg struct {
	Num int
	err error
}

func (demoMsg) Path() string       { return "demo/path" }
func (m demoMsg) Validate() error { return m.err }

type otherMsg struct{}

func (otherMsg) Path() string    { return "demo/other" }
func (otherMsg) Validate() error { return nil }

type demoTx struct {
	msg Msg
	err error
}

func (tx *demoTx) GetMsg() (Msg, error) { return tx.msg, tx.err }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		wantErr *errors.Error
		wantNum int
	}{
		"success": {
			tx:      &demoTx{msg: &demoMsg{Num: 7}},
			wantNum: 7,
		},
		"nil message": {
			tx:      &demoTx{},
			wantErr: errors.ErrMsg,
		},
		"message of a different type": {
			tx:      &demoTx{msg: &otherMsg{}},
			wantErr: errors.ErrType,
		},
		"transaction error": {
			tx:      &demoTx{err: errors.ErrInput},
			wantErr: errors.ErrInput,
		},
		"invalid message": {
			tx:      &demoTx{msg: &demoMsg{Num: 1, err: errors.ErrAmount}},
			wantErr: errors.ErrAmount,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var msg demoMsg
			err := LoadMsg(tc.tx, &msg)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if err == nil && msg.Num != tc.wantNum {
				t.Fatalf("want %d, got %d", tc.wantNum, msg.Num)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	if got := GetPath(&demoTx{msg: &demoMsg{}}); got != "demo/path" {
		t.Fatalf("unexpected path: %q", got)
	}
	if got := GetPath(&demoTx{}); got != "(missing)" {
		t.Fatalf("unexpected path: %q", got)
	}
}
