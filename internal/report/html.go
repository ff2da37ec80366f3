package report

import (
	"bytes"
	"html/template"
	"io"
	"time"

	"github.com/hsulin/stockscan/internal/contracts"
)

const pageTemplate = `<html><head><meta charset="utf-8"><title>Daily Scan</title>
<style>table{border-collapse:collapse}td,th{border:1px solid #ddd;padding:6px;text-align:center}</style>
</head><body>
<h2>Daily Stock Scan</h2>
{{template "table" .Records}}
<p style="color:#666">Generated at: {{.GeneratedAt}}</p>
</body></html>
`

const tableTemplate = `{{define "table"}}<table>
<thead><tr><th>ticker</th><th>date</th><th>price</th><th>d_change_%</th><th>golden_cross_5_20</th><th>vol_spike_vs_20d</th><th>above_ma60_%</th></tr></thead>
<tbody>
{{range .}}<tr><td>{{.Ticker}}</td><td>{{.Date}}</td><td>{{.Price}}</td><td>{{.DayChange}}</td><td>{{.GoldenCross}}</td><td>{{.VolumeSpike}}</td><td>{{.AboveMA60}}</td></tr>
{{end}}</tbody>
</table>{{end}}`

var htmlTmpl = template.Must(
	template.Must(template.New("page").Parse(pageTemplate)).Parse(tableTemplate),
)

// htmlRow is a record pre-formatted for the templates.
type htmlRow struct {
	Ticker      string
	Date        string
	Price       string
	DayChange   string
	GoldenCross bool
	VolumeSpike bool
	AboveMA60   string
}

func toRows(records []contracts.SignalRecord) []htmlRow {
	rows := make([]htmlRow, len(records))
	for i, rec := range records {
		rows[i] = htmlRow{
			Ticker:      rec.Ticker,
			Date:        rec.AsOfDate.Format("2006-01-02"),
			Price:       formatPrice(rec.LastPrice),
			DayChange:   formatOpt(rec.DayChangePct),
			GoldenCross: rec.GoldenCross5x20,
			VolumeSpike: rec.VolumeSpike,
			AboveMA60:   formatOpt(rec.AboveLongMAPct),
		}
	}
	return rows
}

// renderHTMLPage writes the full standalone report page.
func renderHTMLPage(w io.Writer, report *contracts.ScanReport) error {
	data := struct {
		Records     []htmlRow
		GeneratedAt string
	}{
		Records:     toRows(report.Records),
		GeneratedAt: report.GeneratedAt.Format(time.RFC3339),
	}
	return htmlTmpl.ExecuteTemplate(w, "page", data)
}

// TableHTML renders just the records table, used as the mail body
// fragment for the top of the ranking.
func TableHTML(records []contracts.SignalRecord) (template.HTML, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.ExecuteTemplate(&buf, "table", toRows(records)); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
