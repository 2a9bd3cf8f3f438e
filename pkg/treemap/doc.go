// Package treemap turns a scanned directory tree into a squarified
// treemap: a set of non-overlapping rectangles whose areas are
// proportional to disk usage.
//
// The package has two layers. [Partition] and the squarified layout
// operate on a single directory level, producing one rectangle per
// slot. [Build] applies them recursively, reserving a caption strip at
// the top of every directory box and descending only while enough
// vertical room remains for another strip.
//
// Small entries below a configurable area cutoff are folded into a
// single aggregate slot per directory so deep trees stay legible at
// any output size.
package treemap
