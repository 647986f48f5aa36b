package format

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/akarpov/savingsbot/internal/models"
	"github.com/akarpov/savingsbot/internal/services"
)

// ExportCSV renders the full contribution history as a CSV document:
// one row per ledger entry, joined with its parent.
func ExportCSV(rows []models.ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"name", "kind", "target_amount", "currency", "amount", "saved_at"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec := []string{
			r.Name,
			string(r.Kind),
			strconv.FormatFloat(r.TargetAmount, 'f', 2, 64),
			r.Currency,
			strconv.FormatFloat(r.Amount, 'f', 2, 64),
			r.SavedAt,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportSummary renders the caption accompanying the CSV document.
func ExportSummary(e *services.Export) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "📦 Export ready: %d entries across %d goals and %d debts.\n",
		len(e.Rows), e.GoalCount, e.DebtCount)
	if len(e.TotalSaved) > 0 {
		b.WriteString("Saved so far:\n")
		b.WriteString(currencyTotals(e.TotalSaved))
	}
	if len(e.TotalPaid) > 0 {
		b.WriteString("Paid off so far:\n")
		b.WriteString(currencyTotals(e.TotalPaid))
	}
	return b.String()
}
