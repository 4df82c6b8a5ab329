package analytics

import (
	"fmt"
	"strings"

	"paydown/internal/core"
)

// utf8BOM is prepended so spreadsheet software picks up the encoding of
// the Thai labels without guessing.
const utf8BOM = "\uFEFF"

// csvHeader holds the localized column labels: date, type, category,
// amount, note.
const csvHeader = "วันที่,ประเภท,หมวดหมู่,จำนวนเงิน,หมายเหตุ"

// ExportCSV renders transactions as a comma-delimited table in the order
// they were supplied (callers typically pass reverse-chronological
// order). Dates use the Thai Buddhist era, amounts carry exactly two
// decimal places, and unknown categories fall back to their raw tag.
func ExportCSV(txs []core.Transaction) []byte {
	var b strings.Builder
	b.WriteString(utf8BOM)
	b.WriteString(csvHeader)

	for _, tx := range txs {
		b.WriteByte('\n')
		b.WriteString(formatThaiDate(tx))
		b.WriteByte(',')
		b.WriteString(csvField(tx.Type.Label()))
		b.WriteByte(',')
		b.WriteString(csvField(tx.Category.Label()))
		b.WriteByte(',')
		b.WriteString(tx.Amount.DecimalString())
		b.WriteByte(',')
		b.WriteString(quoteField(tx.Note))
	}
	return []byte(b.String())
}

// formatThaiDate renders d/m/yyyy with the Buddhist-era year (543 ahead
// of the Gregorian one).
func formatThaiDate(tx core.Transaction) string {
	return fmt.Sprintf("%d/%d/%d", tx.Date.Day(), int(tx.Date.Month()), tx.Date.Year()+543)
}

// csvField quotes a value only when it contains a delimiter, quote, or
// line break.
func csvField(s string) string {
	if strings.ContainsAny(s, "\",\n\r") {
		return quoteField(s)
	}
	return s
}

// quoteField wraps a value in quotes, doubling any embedded quote
// characters. The note column is always quoted since it is free text.
func quoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
