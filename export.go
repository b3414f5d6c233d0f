package northwind

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExportFormat represents the output file format for reports.
type ExportFormat int

const (
	// ExportFormatCSV represents CSV output format
	ExportFormatCSV ExportFormat = iota
	// ExportFormatTSV represents TSV output format
	ExportFormatTSV
	// ExportFormatXLSX represents Excel XLSX output format
	ExportFormatXLSX
)

// String returns the string representation of ExportFormat
func (f ExportFormat) String() string {
	switch f {
	case ExportFormatCSV:
		return "csv"
	case ExportFormatTSV:
		return "tsv"
	case ExportFormatXLSX:
		return "xlsx"
	default:
		return "csv"
	}
}

// Extension returns the file extension for the format
func (f ExportFormat) Extension() string {
	switch f {
	case ExportFormatCSV:
		return extCSV
	case ExportFormatTSV:
		return extTSV
	case ExportFormatXLSX:
		return extXLSX
	default:
		return extCSV
	}
}

// ExportOptions configures how reports are written to files.
//
// Example:
//
//	options := NewExportOptions().
//		WithFormat(ExportFormatTSV).
//		WithCompression(CompressionGZ)
//
//	err := pipeline.Export("./output", options)
type ExportOptions struct {
	// Format specifies the output file format
	Format ExportFormat
	// Compression specifies the compression type
	Compression CompressionType
}

// NewExportOptions creates default export options (CSV, no compression).
func NewExportOptions() ExportOptions {
	return ExportOptions{
		Format:      ExportFormatCSV,
		Compression: CompressionNone,
	}
}

// WithFormat sets the output file format.
func (o ExportOptions) WithFormat(format ExportFormat) ExportOptions {
	o.Format = format
	return o
}

// WithCompression adds compression to output files. CompressionBZ2 is not
// supported for writing.
func (o ExportOptions) WithCompression(compression CompressionType) ExportOptions {
	o.Compression = compression
	return o
}

// FileExtension returns the complete file extension including compression
func (o ExportOptions) FileExtension() string {
	return o.Format.Extension() + o.Compression.Extension()
}

// Export computes all nine reports and writes one file per report into
// outputDir, named after the report (e.g. "top_products.csv"). The
// directory is created if it does not exist.
//
// By default reports are exported as CSV without compression; pass
// ExportOptions to customize.
func (p *Pipeline) Export(outputDir string, opts ...ExportOptions) error {
	options := NewExportOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	return WriteReports(p.Reports(), outputDir, options)
}

// WriteReports writes the given reports into outputDir, one file per
// report.
func WriteReports(reports []Report, outputDir string, options ExportOptions) error {
	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, report := range reports {
		path := filepath.Join(outputDir, report.Name+options.FileExtension())
		if err := writeReportFile(report, path, options); err != nil {
			return NewErrorContext("export", path).WithTable(report.Name).Error(err)
		}
	}
	return nil
}

// writeReportFile writes one report through the configured format and
// compression writers.
func writeReportFile(report Report, path string, options ExportOptions) error {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}

	writer, closeCompression, err := newCompressionWriter(fp, options.Compression)
	if err != nil {
		_ = fp.Close() // Ignore close error during error handling
		return err
	}

	switch options.Format {
	case ExportFormatCSV:
		err = writeDelimited(report, writer, csvDelimiter)
	case ExportFormatTSV:
		err = writeDelimited(report, writer, tsvDelimiter)
	case ExportFormatXLSX:
		err = writeXLSX(report, writer)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, options.Format)
	}
	if err != nil {
		_ = closeCompression()
		_ = fp.Close()
		return err
	}

	return errors.Join(closeCompression(), fp.Close())
}

// writeDelimited writes the report as CSV or TSV.
func writeDelimited(report Report, w io.Writer, delimiter rune) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	if err := csvWriter.Write(report.Columns); err != nil {
		return err
	}
	for _, row := range report.Rows {
		if err := csvWriter.Write(row); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// writeXLSX writes the report as a single-sheet Excel workbook.
func writeXLSX(report Report, w io.Writer) error {
	xlsxFile := excelize.NewFile()
	defer func() {
		_ = xlsxFile.Close() // Ignore close error
	}()

	const defaultSheet = "Sheet1"
	if err := xlsxFile.SetSheetName(defaultSheet, report.Name); err != nil {
		return err
	}

	writeRow := func(rowIdx int, cells []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		values := make([]any, len(cells))
		for i, c := range cells {
			values[i] = c
		}
		return xlsxFile.SetSheetRow(report.Name, cell, &values)
	}

	if err := writeRow(1, report.Columns); err != nil {
		return err
	}
	for i, row := range report.Rows {
		if err := writeRow(i+2, row); err != nil {
			return err
		}
	}

	_, err := xlsxFile.WriteTo(w)
	return err
}
