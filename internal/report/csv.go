package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/hsulin/stockscan/internal/contracts"
)

// csvHeader is the column layout of the CSV export.
var csvHeader = []string{
	"ticker",
	"date",
	"price",
	"d_change_pct",
	"golden_cross_5_20",
	"vol_spike_vs_20d",
	"above_ma60_pct",
}

// renderCSV writes the ranked records as CSV. Absent numeric fields
// become empty cells, never zeros.
func renderCSV(w io.Writer, report *contracts.ScanReport) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, rec := range report.Records {
		row := []string{
			rec.Ticker,
			rec.AsOfDate.Format("2006-01-02"),
			formatPrice(rec.LastPrice),
			formatOpt(rec.DayChangePct),
			strconv.FormatBool(rec.GoldenCross5x20),
			strconv.FormatBool(rec.VolumeSpike),
			formatOpt(rec.AboveLongMAPct),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
