package client

import (
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/iov-one/payday"
	"github.com/iov-one/payday/errors"
)

// holderRow is a single line of a holder snapshot. Columns other than
// address are ignored.
type holderRow struct {
	Address string `csv:"address"`
}

// LoadHolders reads a CSV holder snapshot with an address column. Blank
// lines and repeated addresses are ignored.
func LoadHolders(r io.Reader) ([]payday.Address, error) {
	var rows []*holderRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot read holders: %s", err)
	}

	var errs error
	holders := make([]payday.Address, 0, len(rows))
	for i, row := range rows {
		enc := strings.TrimSpace(row.Address)
		if enc == "" {
			continue
		}
		addr, err := payday.ParseAddress(enc)
		if err == nil {
			err = addr.Validate()
		}
		if err != nil {
			// Line 1 is the header.
			errs = errors.Append(errs, errors.Wrapf(err, "line %d", i+2))
			continue
		}
		holders = append(holders, addr)
	}
	if errs != nil {
		return nil, errs
	}
	return unique(holders), nil
}

// resultRow is a single line of a payout report.
type resultRow struct {
	Holder string `csv:"holder"`
	Status string `csv:"status"`
	Reward uint64 `csv:"reward"`
}

// WriteResults writes payout results as CSV.
func WriteResults(w io.Writer, results []Result) error {
	rows := make([]*resultRow, len(results))
	for i, r := range results {
		rows[i] = &resultRow{
			Holder: r.Holder.String(),
			Status: string(r.Status),
			Reward: r.Reward,
		}
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}
