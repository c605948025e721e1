package export

import (
	"encoding/csv"
	"io"
	"strconv"
)

func writeCSV[T Record](out io.Writer, rows []T) error {
	w := csv.NewWriter(out)

	var zero T
	if err := w.Write(zero.csvHeader()); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(r.csvFields()); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func (Row) csvHeader() []string {
	return []string{"Timestamp", "Irradiance (W/m²)"}
}

func (r Row) csvFields() []string {
	return []string{r.Timestamp, fmtFloat(r.IrradianceWm2)}
}

func (BandRow) csvHeader() []string {
	return []string{"Timestamp", "Mean (W/m²)", "Std (W/m²)", "Upper (W/m²)", "Lower (W/m²)", "Samples"}
}

func (r BandRow) csvFields() []string {
	return []string{
		r.Timestamp,
		fmtFloat(r.Mean),
		fmtFloat(r.Std),
		fmtFloat(r.Upper),
		fmtFloat(r.Lower),
		strconv.Itoa(int(r.Samples)),
	}
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
