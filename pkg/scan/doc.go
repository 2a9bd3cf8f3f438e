// Package scan builds a size-annotated model of a directory subtree.
//
// A single depth-first pass produces a tree of [Node] values annotated with
// on-disk usage. Regular files and symlinks report their allocated block
// usage divided by their hardlink count, so content reachable through
// multiple hardlinks inside the scanned tree is not counted twice.
// Directories report the sum of their children plus recursive file,
// directory, and symlink totals.
//
// Entries that cannot be read (permission errors, races with concurrent
// deletes) are skipped with a diagnostic; only a failure to list the root
// itself aborts the scan.
package scan
