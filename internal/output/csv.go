package output

import (
	"bytes"
	"encoding/csv"

	"github.com/kidcost/kidcost/internal/domain"
)

// FormatCSV renders the decisions log as CSV, one row per resolved event.
func FormatCSV(snap *domain.LedgerSnapshot) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"AgeMonths", "Event", "Option", "Cost", "Benefit"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, rec := range snap.DecisionsLog {
		row := []string{
			intToString(rec.AgeMonths),
			rec.EventTitle,
			rec.Option,
			rec.Cost.StringFixed(2),
			rec.Benefit.StringFixed(2),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
