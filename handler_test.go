package payday

import (
	"encoding/json"
	"testing"
)

func TestReadOptions(t *testing.T) {
	opts := Options{
		"rewards": json.RawMessage(`{"min": 10}`),
		"broken":  json.RawMessage(`{"min": `),
	}

	var conf struct {
		Min int `json:"min"`
	}
	if err := opts.ReadOptions("rewards", &conf); err != nil {
		t.Fatalf("cannot read: %s", err)
	}
	if conf.Min != 10 {
		t.Fatalf("unexpected value: %d", conf.Min)
	}

	if err := opts.ReadOptions("missing", &conf); err != nil {
		t.Fatalf("missing key must be a noop: %s", err)
	}
	if conf.Min != 10 {
		t.Fatalf("value changed: %d", conf.Min)
	}

	if err := opts.ReadOptions("broken", &conf); err == nil {
		t.Fatal("broken json must fail")
	}
}
