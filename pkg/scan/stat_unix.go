//go:build unix

package scan

import (
	"io/fs"
	"syscall"
)

// diskUsage returns the bytes attributed to one appearance of the entry and
// its hardlink count.
//
// Stat_t.Blocks is always in 512-byte units regardless of the filesystem
// block size, so blocks*512 is the allocated usage (sparse files included).
// Dividing by nlink spreads that usage evenly across every hardlink, so a
// file linked N times contributes 1/N per appearance. The division assumes
// all links lie inside the scanned tree; links outside it make the subtree
// total an undercount. That is deliberate: it matches what repeated
// appearances inside one scan should sum to.
func diskUsage(info fs.FileInfo) (size int64, nlink uint64) {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.Size(), 1
	}
	nlink = uint64(st.Nlink)
	if nlink == 0 {
		nlink = 1
	}
	return st.Blocks * 512 / int64(nlink), nlink
}
