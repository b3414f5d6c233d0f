// Package northwind computes sales analytics reports over a Northwind
// snapshot loaded from CSV, TSV, XLSX, Parquet, or SQLite sources.
package northwind

import (
	"context"

	"github.com/suyashratnaparkhi/northwind-analytics/domain/model"
)

// Pipeline computes the nine sales reports over one immutable snapshot.
// Every report is a pure function of the snapshot: reports share no
// mutable state, depend on no other report's output, and may be computed
// in any order or concurrently.
type Pipeline struct {
	snapshot *model.Snapshot
	joined   []joinedLine
	opts     reportOptions
}

// reportOptions holds the tunable report parameters.
type reportOptions struct {
	// topN is the row cutoff for the top products report.
	topN int
	// largeOrderThreshold is the item count above which an order counts
	// as large in the order size report.
	largeOrderThreshold int
}

// Report parameter defaults
const (
	// DefaultTopN is the default row cutoff for the top products report
	DefaultTopN = 10
	// DefaultLargeOrderThreshold is the default large-order item threshold
	DefaultLargeOrderThreshold = 10
)

func defaultReportOptions() reportOptions {
	return reportOptions{
		topN:                DefaultTopN,
		largeOrderThreshold: DefaultLargeOrderThreshold,
	}
}

// NewPipeline creates a pipeline over the given snapshot with default
// report parameters. Use the builder to customize parameters.
func NewPipeline(snapshot *model.Snapshot) *Pipeline {
	return newPipeline(snapshot, defaultReportOptions())
}

func newPipeline(snapshot *model.Snapshot, opts reportOptions) *Pipeline {
	return &Pipeline{
		snapshot: snapshot,
		joined:   joinLines(snapshot),
		opts:     opts,
	}
}

// Snapshot returns the snapshot the pipeline computes over.
func (p *Pipeline) Snapshot() *model.Snapshot {
	return p.snapshot
}

// Open loads a snapshot from the given paths and returns a pipeline over
// it with default report parameters.
//
// Each path may be:
//   - A file in a supported format (.csv, .tsv, .xlsx, .parquet, or a
//     .gz/.bz2/.xz/.zst compressed variant)
//   - A directory (all supported files within are loaded)
//
// Table names derive from file names without extensions: "orders.csv.gz"
// becomes the orders table. The orders and order_details tables are
// required; dimension tables are matched by name (customers, products,
// categories, suppliers, employees, shippers).
//
// Example:
//
//	p, err := northwind.Open("testdata/northwind")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, r := range p.TopProducts() {
//		fmt.Printf("%s (%s): %s\n", r.ProductName, r.SupplierName, model.FormatMoney(r.TotalRevenue))
//	}
func Open(paths ...string) (*Pipeline, error) {
	return OpenContext(context.Background(), paths...)
}

// OpenContext loads a snapshot from the given paths with context support.
// See Open for path semantics. For SQLite sources or custom report
// parameters use the builder:
//
//	p, err := northwind.NewBuilder().
//		AddDatabase("northwind.db").
//		WithTopN(5).
//		Build(ctx)
//	if err != nil {
//		return err
//	}
//	pipeline, err := p.Load(ctx)
func OpenContext(ctx context.Context, paths ...string) (*Pipeline, error) {
	builder, err := NewBuilder().AddPaths(paths...).Build(ctx)
	if err != nil {
		return nil, err
	}
	defer builder.Cleanup()

	return builder.Load(ctx)
}
