package northwind

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/suyashratnaparkhi/northwind-analytics/domain/model"
)

// PipelineBuilder configures snapshot sources and report parameters
// before loading a pipeline. Use NewBuilder to create an instance, then
// chain method calls to configure it.
//
// The typical usage pattern is:
//
//	builder := northwind.NewBuilder().AddPath("data").AddFS(embeddedFS)
//	validatedBuilder, err := builder.Build(ctx)
//	if err != nil {
//		return err
//	}
//	defer validatedBuilder.Cleanup() // Clean up temporary files
//	pipeline, err := validatedBuilder.Load(ctx)
type PipelineBuilder struct {
	// paths contains regular file and directory paths
	paths []string
	// filesystems contains fs.FS instances
	filesystems []fs.FS
	// databases contains SQLite database file paths
	databases []string
	// collectedPaths contains all file paths after Build validation
	collectedPaths []string
	// tempFiles tracks temporary files created for cleanup
	tempFiles []string
	// opts contains report parameters
	opts reportOptions
}

// NewBuilder creates a new pipeline builder with default report
// parameters (top 10 products, large-order threshold 10).
func NewBuilder() *PipelineBuilder {
	return &PipelineBuilder{
		paths:          make([]string, 0),
		filesystems:    make([]fs.FS, 0),
		databases:      make([]string, 0),
		collectedPaths: make([]string, 0),
		tempFiles:      make([]string, 0),
		opts:           defaultReportOptions(),
	}
}

// AddPath adds a file or directory path to the builder.
// The path can be:
//   - A single file with a supported extension (.csv, .tsv, .xlsx,
//     .parquet, and their .gz/.bz2/.xz/.zst compressed variants)
//   - A directory (all supported files within are loaded)
//
// Returns the builder for method chaining.
func (b *PipelineBuilder) AddPath(path string) *PipelineBuilder {
	b.paths = append(b.paths, path)
	return b
}

// AddPaths adds multiple file or directory paths to the builder.
// Each path follows the same rules as AddPath.
//
// Returns the builder for method chaining.
func (b *PipelineBuilder) AddPaths(paths ...string) *PipelineBuilder {
	b.paths = append(b.paths, paths...)
	return b
}

// AddFS adds all supported files from an fs.FS filesystem to the builder.
// This is particularly useful for embedded snapshots using go:embed.
// Matching files are copied to temporary files during Build(); use
// Cleanup() to remove them when done.
//
// Example with embedded filesystem:
//
//	//go:embed data/*.csv
//	var dataFS embed.FS
//
//	subFS, _ := fs.Sub(dataFS, "data")
//	builder := northwind.NewBuilder().AddFS(subFS)
//
// Returns the builder for method chaining.
func (b *PipelineBuilder) AddFS(filesystem fs.FS) *PipelineBuilder {
	b.filesystems = append(b.filesystems, filesystem)
	return b
}

// AddDatabase adds a SQLite database file as a snapshot source. Every
// user table in the database is read; entity tables are matched by name
// exactly as for file sources. The database is read-only.
//
// Returns the builder for method chaining.
func (b *PipelineBuilder) AddDatabase(path string) *PipelineBuilder {
	b.databases = append(b.databases, path)
	return b
}

// WithTopN sets the row cutoff for the top products report.
// Returns the builder for method chaining.
func (b *PipelineBuilder) WithTopN(n int) *PipelineBuilder {
	b.opts.topN = n
	return b
}

// WithLargeOrderThreshold sets the item count above which an order is
// counted as large in the order size report.
// Returns the builder for method chaining.
func (b *PipelineBuilder) WithLargeOrderThreshold(n int) *PipelineBuilder {
	b.opts.largeOrderThreshold = n
	return b
}

// Build validates all configured inputs and prepares the builder for
// loading. It checks existence and format of all paths, and copies
// embedded filesystem files to temporary locations.
//
// Returns the same builder instance for method chaining, or an error if
// validation fails.
func (b *PipelineBuilder) Build(ctx context.Context) (*PipelineBuilder, error) {
	if len(b.paths) == 0 && len(b.filesystems) == 0 && len(b.databases) == 0 {
		return nil, errors.New("at least one input source must be provided")
	}

	// Reset collected paths
	b.collectedPaths = make([]string, 0)

	for _, path := range b.paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load file: path does not exist: %s", path)
			}
			return nil, fmt.Errorf("failed to stat path %s: %w", path, err)
		}

		if info.IsDir() {
			files, err := collectDirectoryFiles(path)
			if err != nil {
				return nil, err
			}
			b.collectedPaths = append(b.collectedPaths, files...)
			continue
		}

		if !isSupportedFile(path) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
		}
		b.collectedPaths = append(b.collectedPaths, path)
	}

	for _, filesystem := range b.filesystems {
		if filesystem == nil {
			return nil, errors.New("FS cannot be nil")
		}
		paths, err := b.processFSInput(ctx, filesystem)
		if err != nil {
			return nil, fmt.Errorf("failed to process FS input: %w", err)
		}
		b.collectedPaths = append(b.collectedPaths, paths...)
	}

	for _, path := range b.databases {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load database: path does not exist: %s", path)
			}
			return nil, fmt.Errorf("failed to stat database %s: %w", path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("database path is a directory: %s", path)
		}
	}

	if len(b.collectedPaths) == 0 && len(b.databases) == 0 {
		return nil, errors.New("no valid input files found")
	}

	return b, nil
}

// Load parses all configured sources, decodes the entity tables, and
// returns a pipeline over the resulting snapshot. Build must have been
// called first.
func (b *PipelineBuilder) Load(ctx context.Context) (*Pipeline, error) {
	if len(b.collectedPaths) == 0 && len(b.databases) == 0 {
		return nil, errors.New("no valid input files found, did you call Build()?")
	}

	var tables []*table
	for _, path := range b.collectedPaths {
		t, err := newFile(path).toTable(ctx)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	for _, path := range b.databases {
		dbTables, err := loadDatabaseTables(ctx, path)
		if err != nil {
			return nil, err
		}
		tables = append(tables, dbTables...)
	}

	snapshot, err := decodeSnapshot(tables)
	if err != nil {
		return nil, err
	}

	return newPipeline(snapshot, b.opts), nil
}

// LoadSnapshot is like Load but returns the decoded snapshot directly,
// for callers that want to drive the report functions themselves.
func (b *PipelineBuilder) LoadSnapshot(ctx context.Context) (*model.Snapshot, error) {
	p, err := b.Load(ctx)
	if err != nil {
		return nil, err
	}
	return p.Snapshot(), nil
}

// collectDirectoryFiles lists the supported files directly inside dir.
func collectDirectoryFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if isSupportedFile(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no supported files found in directory: %s", dir)
	}
	return files, nil
}

// processFSInput copies all supported files from an fs.FS to temp files.
func (b *PipelineBuilder) processFSInput(ctx context.Context, filesystem fs.FS) ([]string, error) {
	var allMatches []string
	for _, pattern := range supportedFileExtPatterns() {
		matches, err := fs.Glob(filesystem, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to search pattern %s: %w", pattern, err)
		}
		allMatches = append(allMatches, matches...)
	}

	// Also search recursively in subdirectories
	err := fs.WalkDir(filesystem, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedFile(path) {
			return nil
		}
		for _, existing := range allMatches {
			if filepath.ToSlash(existing) == filepath.ToSlash(path) {
				return nil
			}
		}
		allMatches = append(allMatches, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk filesystem: %w", err)
	}

	if len(allMatches) == 0 {
		return nil, errors.New("no supported files found in filesystem")
	}

	paths := make([]string, 0, len(allMatches))
	for _, match := range allMatches {
		tempPath, err := b.copyFSToTemp(ctx, filesystem, match)
		if err != nil {
			return nil, fmt.Errorf("failed to copy file %s: %w", match, err)
		}
		paths = append(paths, tempPath)
	}
	return paths, nil
}

// copyFSToTemp copies a file from fs.FS to a temporary file whose name
// preserves the table name and extensions.
func (b *PipelineBuilder) copyFSToTemp(_ context.Context, filesystem fs.FS, path string) (string, error) {
	src, err := filesystem.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open FS file: %w", err)
	}
	defer src.Close()

	// The temp file keeps the original base name so the table name still
	// derives from it; only the directory is temporary.
	tempDir, err := os.MkdirTemp("", "northwind-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp dir: %w", err)
	}
	tempPath := filepath.Join(tempDir, filepath.Base(path))

	dst, err := os.Create(tempPath)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		removeErr := os.RemoveAll(tempDir)
		if removeErr != nil {
			return "", errors.Join(
				fmt.Errorf("failed to copy content: %w", err),
				fmt.Errorf("failed to cleanup temp dir: %w", removeErr),
			)
		}
		return "", fmt.Errorf("failed to copy content: %w", err)
	}

	b.tempFiles = append(b.tempFiles, tempDir)
	return tempPath, nil
}

// cleanup removes temporary files and returns any errors
func (b *PipelineBuilder) cleanup() error {
	var errs []error
	for _, path := range b.tempFiles {
		if err := os.RemoveAll(path); err != nil {
			errs = append(errs, fmt.Errorf("failed to remove temp dir %s: %w", path, err))
		}
	}
	b.tempFiles = nil
	return errors.Join(errs...)
}

// Cleanup removes all temporary files created during filesystem
// processing. It's safe to call multiple times; subsequent calls have no
// effect. Multiple removal errors are joined using errors.Join.
func (b *PipelineBuilder) Cleanup() error {
	return b.cleanup()
}
