package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/parquet-go/parquet-go"
)

// Format is an output file format. Values match the ?format= query parameter.
type Format string

const (
	FormatCSV     Format = "CSV"
	FormatJSON    Format = "JSON"
	FormatParquet Format = "PARQUET"
)

// ParseFormat is case-insensitive; an empty string means CSV.
func ParseFormat(s string) (Format, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "CSV":
		return FormatCSV, nil
	case "JSON":
		return FormatJSON, nil
	case "PARQUET":
		return FormatParquet, nil
	default:
		return "", fmt.Errorf("unsupported format %q, expected CSV, JSON or PARQUET", s)
	}
}

func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatParquet:
		return "parquet"
	default:
		return "csv"
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatParquet:
		return "application/vnd.apache.parquet"
	default:
		return "text/csv"
	}
}

// Options tune how a file is written.
type Options struct {
	Gzip bool
}

// FileName is the download name for an export made at now, e.g. solar_data_20240320.csv.gz.
func FileName(f Format, now time.Time, gz bool) string {
	name := fmt.Sprintf("solar_data_%s.%s", now.Format("20060102"), f.Extension())
	if gz {
		name += ".gz"
	}
	return name
}

// Write encodes rows to out in format f.
func Write[T Record](out io.Writer, f Format, rows []T, opts Options) error {
	if !opts.Gzip {
		return encode(out, f, rows)
	}

	gz := gzip.NewWriter(out)
	if err := encode(gz, f, rows); err != nil {
		gz.Close()
		return err
	}
	return gz.Close()
}

// WriteFile writes rows to path, creating parent directories as needed.
func WriteFile[T Record](path string, f Format, rows []T, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(file, f, rows, opts); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func encode[T Record](out io.Writer, f Format, rows []T) error {
	switch f {
	case FormatCSV:
		return writeCSV(out, rows)
	case FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if rows == nil {
			rows = []T{}
		}
		return enc.Encode(rows)
	case FormatParquet:
		return writeParquet(out, rows)
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
}

func writeParquet[T Record](out io.Writer, rows []T) error {
	w := parquet.NewGenericWriter[T](out)
	if _, err := w.Write(rows); err != nil {
		w.Close()
		return fmt.Errorf("parquet write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("parquet close: %w", err)
	}
	return nil
}
