package views

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"

	"sensor-plotter/models"
)

// CSVWriter is a buffered CSV writer for processed readings and summaries.
type CSVWriter struct {
	file *os.File
	buf  *bufio.Writer
	csv  *csv.Writer
	rows uint64
}

// NewCSVWriter creates a file and writes the CSV header row.
func NewCSVWriter(path string, bufSizeBytes int, writeHeader bool, header []string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv create %s: %w", path, err)
	}

	if bufSizeBytes <= 0 {
		bufSizeBytes = 64 * 1024
	}

	bw := bufio.NewWriterSize(f, bufSizeBytes)
	cw := csv.NewWriter(bw)

	w := &CSVWriter{
		file: f,
		buf:  bw,
		csv:  cw,
	}

	if writeHeader && len(header) > 0 {
		if err := cw.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("csv write header: %w", err)
		}
	}

	return w, nil
}

// WriteRow appends a single CSV row.
func (w *CSVWriter) WriteRow(row []string) error {
	if err := w.csv.Write(row); err != nil {
		return fmt.Errorf("csv write row: %w", err)
	}
	w.rows++
	return nil
}

// Write appends one model record.
func (w *CSVWriter) Write(r models.CSVRowWriter) error {
	return w.WriteRow(r.CSVRow())
}

// Flush pushes the buffered data to the OS.
func (w *CSVWriter) Flush() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return err
	}
	return w.buf.Flush()
}

// Close flushes remaining data and closes the file.
func (w *CSVWriter) Close() error {
	ferr := w.Flush()
	cerr := w.file.Close()
	if ferr != nil {
		return ferr
	}
	return cerr
}

// Rows returns the number of data rows written (excludes header).
func (w *CSVWriter) Rows() uint64 {
	return w.rows
}

// ExportTable writes every row of t to path.
func ExportTable(t *models.Table, path string) (uint64, error) {
	header := (&models.Reading{TimestampColumn: t.TimestampColumn, Names: t.Names()}).CSVHeader()
	w, err := NewCSVWriter(path, 0, true, header)
	if err != nil {
		return 0, err
	}
	for i := 0; i < t.Len(); i++ {
		if err := w.Write(t.Reading(i)); err != nil {
			w.Close()
			return w.Rows(), err
		}
	}
	return w.Rows(), w.Close()
}
