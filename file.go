package northwind

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	pqfile "github.com/apache/arrow/go/v17/parquet/file"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
	"github.com/xuri/excelize/v2"
)

// FileType represents supported snapshot file formats.
type FileType int

const (
	// FileTypeCSV represents CSV file type
	FileTypeCSV FileType = iota
	// FileTypeTSV represents TSV file type
	FileTypeTSV
	// FileTypeXLSX represents Excel XLSX file type
	FileTypeXLSX
	// FileTypeParquet represents Parquet file type
	FileTypeParquet
	// FileTypeUnsupported represents an unsupported file type
	FileTypeUnsupported
)

// File extensions
const (
	// extCSV is the CSV file extension
	extCSV = ".csv"
	// extTSV is the TSV file extension
	extTSV = ".tsv"
	// extXLSX is the Excel XLSX file extension
	extXLSX = ".xlsx"
	// extParquet is the Parquet file extension
	extParquet = ".parquet"
	// extGZ is the gzip compression extension
	extGZ = ".gz"
	// extBZ2 is the bzip2 compression extension
	extBZ2 = ".bz2"
	// extXZ is the xz compression extension
	extXZ = ".xz"
	// extZSTD is the zstd compression extension
	extZSTD = ".zst"
)

// File format delimiters
const (
	// csvDelimiter is the delimiter for CSV files
	csvDelimiter = ','
	// tsvDelimiter is the delimiter for TSV files
	tsvDelimiter = '\t'
)

// file represents a snapshot file that can be parsed into a raw table.
type file struct {
	path        string
	fileType    FileType
	compression CompressionType
}

// newFile creates a new file.
func newFile(path string) *file {
	return &file{
		path:        path,
		fileType:    detectFileType(path),
		compression: detectCompressionType(path),
	}
}

// detectFileType determines the file type from the path, ignoring any
// trailing compression extension.
func detectFileType(path string) FileType {
	name := strings.ToLower(path)

	for _, ext := range []string{extGZ, extBZ2, extXZ, extZSTD} {
		if strings.HasSuffix(name, ext) {
			name = strings.TrimSuffix(name, ext)
			break
		}
	}

	switch {
	case strings.HasSuffix(name, extCSV):
		return FileTypeCSV
	case strings.HasSuffix(name, extTSV):
		return FileTypeTSV
	case strings.HasSuffix(name, extXLSX):
		return FileTypeXLSX
	case strings.HasSuffix(name, extParquet):
		return FileTypeParquet
	default:
		return FileTypeUnsupported
	}
}

// isSupportedFile checks if the file has a supported extension.
func isSupportedFile(fileName string) bool {
	return detectFileType(fileName) != FileTypeUnsupported
}

// supportedFileExtPatterns returns all supported file patterns for glob matching.
func supportedFileExtPatterns() []string {
	baseExts := []string{extCSV, extTSV, extXLSX, extParquet}
	compressionExts := []string{"", extGZ, extBZ2, extXZ, extZSTD}

	var patterns []string
	for _, baseExt := range baseExts {
		for _, compressionExt := range compressionExts {
			patterns = append(patterns, "*"+baseExt+compressionExt)
		}
	}
	return patterns
}

// openReader opens the file and returns a reader that handles decompression.
func (f *file) openReader() (io.Reader, func() error, error) {
	fp, err := os.Open(f.path)
	if err != nil {
		return nil, nil, err
	}

	reader, closeCompression, err := newCompressionReader(fp, f.compression)
	if err != nil {
		_ = fp.Close() // Ignore close error during error handling
		return nil, nil, err
	}

	closer := func() error {
		_ = closeCompression() // Ignore decompressor close error in cleanup
		return fp.Close()
	}
	return reader, closer, nil
}

// toTable parses the file into a raw table.
func (f *file) toTable(ctx context.Context) (*table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch f.fileType {
	case FileTypeCSV:
		return f.parseDelimitedFile(csvDelimiter)
	case FileTypeTSV:
		return f.parseDelimitedFile(tsvDelimiter)
	case FileTypeXLSX:
		return f.parseXLSX()
	case FileTypeParquet:
		return f.parseParquet(ctx)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f.path)
	}
}

// parseDelimitedFile parses CSV or TSV files with the given delimiter.
func (f *file) parseDelimitedFile(delimiter rune) (*table, error) {
	reader, closer, err := f.openReader()
	if err != nil {
		return nil, err
	}
	defer closer()

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	rows, err := csvReader.ReadAll()
	if err != nil {
		return nil, NewErrorContext("parse", f.path).Error(err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyData, f.path)
	}

	h := header(rows[0])
	if err := validateColumnNames(rows[0]); err != nil {
		return nil, NewErrorContext("parse", f.path).Error(err)
	}

	records := make([]record, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		records = append(records, record(rows[i]))
	}

	return newTable(tableFromFilePath(f.path), h, records), nil
}

// parseXLSX parses the first sheet of an Excel workbook. One file maps to
// one entity table, matching the one-file-one-table convention of the
// other formats.
func (f *file) parseXLSX() (*table, error) {
	reader, closer, err := f.openReader()
	if err != nil {
		return nil, err
	}
	defer closer()

	// excelize needs random access, so the (possibly decompressed) content
	// is read into memory first.
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	xlsxFile, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, NewErrorContext("parse", f.path).Error(err)
	}
	defer func() {
		_ = xlsxFile.Close() // Ignore close error
	}()

	sheetNames := xlsxFile.GetSheetList()
	if len(sheetNames) == 0 {
		return nil, fmt.Errorf("%w: no sheets in %s", ErrEmptyData, f.path)
	}

	rows, err := xlsxFile.GetRows(sheetNames[0])
	if err != nil {
		return nil, NewErrorContext("parse", f.path).WithTable(sheetNames[0]).Error(err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s in %s", ErrEmptyData, sheetNames[0], f.path)
	}

	h, records := convertXLSXRowsToTable(rows)
	if err := validateColumnNames(h); err != nil {
		return nil, NewErrorContext("parse", f.path).Error(err)
	}

	return newTable(tableFromFilePath(f.path), h, records), nil
}

// convertXLSXRowsToTable converts XLSX rows to a header and records.
// The first row becomes the header; shorter data rows are padded.
func convertXLSXRowsToTable(rows [][]string) (header, []record) {
	var h header
	var records []record

	if len(rows) > 0 {
		h = make(header, len(rows[0]))
		copy(h, rows[0])
	}

	if len(rows) > 1 {
		records = make([]record, len(rows)-1)
		for i, row := range rows[1:] {
			rec := make(record, len(h))
			for j := range h {
				if j < len(row) {
					rec[j] = row[j]
				} else {
					rec[j] = "" // Pad with empty string if row is shorter
				}
			}
			records[i] = rec
		}
	}

	return h, records
}

// parseParquet parses a Parquet file through the arrow reader.
func (f *file) parseParquet(ctx context.Context) (*table, error) {
	reader, closer, err := f.openReader()
	if err != nil {
		return nil, err
	}
	defer closer()

	// Parquet requires random access, so read all data into memory.
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet data: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyData, f.path)
	}

	pqReader, err := pqfile.NewParquetReader(bytes.NewReader(data))
	if err != nil {
		return nil, NewErrorContext("parse", f.path).Error(err)
	}
	defer pqReader.Close()

	arrowReader, err := pqarrow.NewFileReader(pqReader, pqarrow.ArrowReadProperties{}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create arrow reader: %w", err)
	}

	arrowTable, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	defer arrowTable.Release()

	schema := arrowTable.Schema()
	h := make(header, schema.NumFields())
	for i, field := range schema.Fields() {
		h[i] = field.Name
	}
	if err := validateColumnNames(h); err != nil {
		return nil, NewErrorContext("parse", f.path).Error(err)
	}

	tableReader := array.NewTableReader(arrowTable, 0)
	defer tableReader.Release()

	var records []record
	for tableReader.Next() {
		batch := tableReader.Record()
		numRows := batch.NumRows()
		for i := int64(0); i < numRows; i++ {
			row := make(record, batch.NumCols())
			for j, col := range batch.Columns() {
				row[j] = arrowCellString(col, int(i))
			}
			records = append(records, row)
		}
	}
	if err := tableReader.Err(); err != nil {
		return nil, fmt.Errorf("error reading table records: %w", err)
	}

	return newTable(tableFromFilePath(f.path), h, records), nil
}

// arrowCellString converts one arrow array value to its string cell form.
func arrowCellString(col arrow.Array, i int) string {
	if col.IsNull(i) {
		return ""
	}

	switch a := col.(type) {
	case *array.String:
		return a.Value(i)
	case *array.LargeString:
		return a.Value(i)
	case *array.Int8:
		return strconv.FormatInt(int64(a.Value(i)), 10)
	case *array.Int16:
		return strconv.FormatInt(int64(a.Value(i)), 10)
	case *array.Int32:
		return strconv.FormatInt(int64(a.Value(i)), 10)
	case *array.Int64:
		return strconv.FormatInt(a.Value(i), 10)
	case *array.Uint8:
		return strconv.FormatUint(uint64(a.Value(i)), 10)
	case *array.Uint16:
		return strconv.FormatUint(uint64(a.Value(i)), 10)
	case *array.Uint32:
		return strconv.FormatUint(uint64(a.Value(i)), 10)
	case *array.Uint64:
		return strconv.FormatUint(a.Value(i), 10)
	case *array.Float32:
		return strconv.FormatFloat(float64(a.Value(i)), 'f', -1, 32)
	case *array.Float64:
		return strconv.FormatFloat(a.Value(i), 'f', -1, 64)
	case *array.Boolean:
		return strconv.FormatBool(a.Value(i))
	case *array.Date32:
		return a.Value(i).ToTime().Format("2006-01-02")
	case *array.Date64:
		return a.Value(i).ToTime().Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", col.GetOneForMarshal(i))
	}
}
