package client

import (
	"bytes"
	"sort"

	"github.com/iov-one/payday"
)

// Status is the outcome of a single payout.
type Status string

const (
	StatusPaid       Status = "paid"
	StatusSkipped    Status = "skipped"
	StatusIneligible Status = "ineligible"
	StatusUncounted  Status = "uncounted"
)

// Result is the outcome of the payout of a single holder.
type Result struct {
	Holder payday.Address
	Status Status
	Reward uint64
}

// Report summarizes a distribution cycle.
type Report struct {
	Cycle uint64
	// Pool is the reward pool sealed for the cycle.
	Pool uint64
	// Total is the sum of rewards paid by this run.
	Total uint64
	// Dust is the part of the pool that stays in the vault.
	Dust uint64

	Paid       int
	Skipped    int
	Ineligible int
	Uncounted  int

	Results []Result
}

func (r *Report) add(res Result) {
	switch res.Status {
	case StatusPaid:
		r.Paid++
		r.Total += res.Reward
	case StatusSkipped:
		r.Skipped++
	case StatusIneligible:
		r.Ineligible++
	case StatusUncounted:
		r.Uncounted++
	}
	r.Results = append(r.Results, res)
}

// sort orders results by holder, as workers complete in any order.
func (r *Report) sort() {
	sort.Slice(r.Results, func(i, j int) bool {
		return bytes.Compare(r.Results[i].Holder, r.Results[j].Holder) < 0
	})
}
