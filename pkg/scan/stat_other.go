//go:build !unix

package scan

import "io/fs"

// diskUsage falls back to the apparent size on platforms without
// syscall.Stat_t; hardlink counts are not visible there.
func diskUsage(info fs.FileInfo) (size int64, nlink uint64) {
	return info.Size(), 1
}
