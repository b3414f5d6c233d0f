// Package northwind is a sales analytics pipeline for the Northwind
// dataset. It loads an immutable snapshot of the eight entity collections
// (customers, orders, order details, products, categories, suppliers,
// employees, shippers) and computes nine derived reports: top products,
// customer lifetime value, category/country breakdown, employee
// leaderboard, supplier revenue share with dominant category, monthly
// revenue trend, order size statistics, shipper volume ranking, and
// high-value order detail.
//
// # Snapshot sources
//
//   - CSV, TSV, Excel (XLSX), and Parquet files, plus gzip, bzip2, xz,
//     and zstandard compressed variants
//   - Directories of such files
//   - Embedded filesystems (go:embed) via AddFS
//   - SQLite database files via AddDatabase
//
// Each file provides one entity table, matched by file name: "orders.csv",
// "Order_Details.tsv.gz", and an OrderDetails database table all resolve
// to their entity by normalized name.
//
// # Semantics
//
// Every report is a pure function of the snapshot. Line revenue is the
// product's current price times the line quantity; sums are carried as
// exact decimals and rounded to two places only at output. Order lines
// whose order or product is missing are excluded from every report
// (inner-join semantics), empty inputs produce empty results, and ratios
// with a zero denominator are reported as undefined rather than failing.
//
// # Basic usage
//
//	p, err := northwind.Open("data/northwind")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, r := range p.TopProducts() {
//	    fmt.Println(r.ProductName, r.TotalRevenue)
//	}
//
//	// Write all nine reports as gzip-compressed TSV files.
//	opts := northwind.NewExportOptions().
//	    WithFormat(northwind.ExportFormatTSV).
//	    WithCompression(northwind.CompressionGZ)
//	if err := p.Export("./reports", opts); err != nil {
//	    log.Fatal(err)
//	}
package northwind
