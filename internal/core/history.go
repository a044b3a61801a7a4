package core

import "strconv"

// HistoryColumns is the fixed column order of the history table.
var HistoryColumns = []string{"Id", "Date", "Amount", "Category", "Comment"}

// HistoryRow is one formatted line of the history table.
type HistoryRow struct {
	ID       string
	Date     string
	Amount   string
	Category string
	Comment  string
}

// Cells returns the row values in HistoryColumns order.
func (r HistoryRow) Cells() []string {
	return []string{r.ID, r.Date, r.Amount, r.Category, r.Comment}
}

// History formats deals newest first. deals must be in storage order.
func History(deals []Deal) []HistoryRow {
	rows := make([]HistoryRow, 0, len(deals))
	for i := len(deals) - 1; i >= 0; i-- {
		d := deals[i]
		rows = append(rows, HistoryRow{
			ID:       strconv.FormatInt(d.ID, 10),
			Date:     d.Date,
			Amount:   FormatAmount(d.Value),
			Category: d.Category,
			Comment:  d.Comment,
		})
	}
	return rows
}
