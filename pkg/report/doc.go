// Package report provides serialization types for scan results and
// treemap layouts.
//
// This package defines the canonical wire format for dumap's data,
// used for JSON files, API responses, and cross-tool interoperability.
//
// # Core Types
//
//   - [Report]: a scanned tree with identity and summary totals
//   - [Entry]: one node of the serialized tree
//   - [Layout], [Box]: a computed treemap ready for re-rendering
//
// # Report Serialization
//
// Reports use a nested JSON format keyed by entry name:
//
//	{
//	  "report_id": "7d8f…",
//	  "root": "/home/me/src",
//	  "tree": {"name": "src", "kind": "dir", "size": 123, "children": [...]}
//	}
//
// Common operations:
//
//	rep := report.New(node)                     // scan.Node → Report
//	report.WriteReportFile(rep, "usage.json")   // Report → file
//	rep, _ = report.ReadReportFile("usage.json")
//	node = rep.Tree.Node("/home/me/src")        // Entry → scan.Node
//
// Every report carries a fresh UUID so downstream consumers can tell
// re-scans of the same directory apart.
//
// # Layout Serialization
//
// [ExportLayout] flattens a [treemap.Layout] into positioned boxes that
// a renderer in any language can draw without knowing the layout
// algorithm. Round-tripping a layout preserves box order, IDs, and
// geometry.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package report
