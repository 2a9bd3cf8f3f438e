package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
)

// Kind distinguishes the filesystem entry types tracked by the scanner.
type Kind uint8

const (
	// KindDir is a directory with children.
	KindDir Kind = iota
	// KindFile is a regular file (or any non-directory, non-symlink entry).
	KindFile
	// KindSymlink is a symbolic link; its target is recorded, never followed.
	KindSymlink
)

// String returns the lowercase name of the kind, used in JSON exports.
func (k Kind) String() string {
	switch k {
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	case KindSymlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// Node is one entry in the scanned tree.
//
// Size is the on-disk usage attributed to this node: for files and symlinks
// the allocated blocks divided by the hardlink count, for directories the sum
// over Children. Directory metadata itself is never counted.
type Node struct {
	Path string
	Size int64
	Kind Kind

	// Nlink is the hardlink count for files and symlinks (>= 1).
	Nlink uint64

	// Target is the raw symlink target for KindSymlink, unresolved.
	Target string

	// Children holds a directory's immediate entries, sorted by
	// non-increasing size. Nil for files and symlinks.
	Children []*Node

	// Recursive totals over the subtree rooted here (directories only).
	// Dirs counts descendant directories, not the directory itself.
	// Symlinks are included in Files as well.
	Files    int64
	Dirs     int64
	Symlinks int64
}

// Name returns the base name of the node's path.
func (n *Node) Name() string { return filepath.Base(n.Path) }

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool { return n.Kind == KindDir }

// Ext returns the file extension (without the dot) for regular files,
// and "" otherwise. Extensions drive the render color palette.
func (n *Node) Ext() string {
	if n.Kind != KindFile {
		return ""
	}
	ext := filepath.Ext(n.Path)
	if ext == "" {
		return ""
	}
	return ext[1:]
}

// Options configures a scan.
type Options struct {
	// Logger receives one warning per skipped entry. Nil uses log.Default().
	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// Scan walks the directory at root depth-first and returns its tree.
//
// Metadata is read with lstat semantics, so symlinks are classified as
// links rather than as their targets. Unreadable entries are logged and
// skipped; only a failure to list root itself is returned as an error.
// The traversal is deliberately single-threaded: directory enumeration is
// inherently serial and the cost is I/O latency, not CPU.
func Scan(root string, opts Options) (*Node, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", root, err)
	}
	return scanDir(abs, opts.logger())
}

func scanDir(dir string, logger *log.Logger) (*Node, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	node := &Node{Path: dir, Kind: KindDir}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		// DirEntry.Info has lstat semantics: a symlink reports the
		// link itself, not its target.
		info, err := entry.Info()
		if err != nil {
			logger.Warn("skipping entry", "path", path, "err", err)
			continue
		}

		switch {
		case info.IsDir():
			sub, err := scanDir(path, logger)
			if err != nil {
				logger.Warn("skipping directory", "path", path, "err", err)
				continue
			}
			node.Dirs += sub.Dirs + 1
			node.Files += sub.Files
			node.Symlinks += sub.Symlinks
			node.Children = append(node.Children, sub)

		case info.Mode()&os.ModeSymlink != 0:
			target, err := os.Readlink(path)
			if err != nil {
				logger.Warn("skipping symlink", "path", path, "err", err)
				continue
			}
			size, nlink := diskUsage(info)
			node.Files++
			node.Symlinks++
			node.Children = append(node.Children, &Node{
				Path:   path,
				Size:   size,
				Kind:   KindSymlink,
				Nlink:  nlink,
				Target: target,
			})

		default:
			size, nlink := diskUsage(info)
			node.Files++
			node.Children = append(node.Children, &Node{
				Path:  path,
				Size:  size,
				Kind:  KindFile,
				Nlink: nlink,
			})
		}
	}

	// Stable keeps listing order for equal sizes deterministic.
	sort.SliceStable(node.Children, func(i, j int) bool {
		return node.Children[i].Size > node.Children[j].Size
	})

	for _, child := range node.Children {
		node.Size += child.Size
	}
	return node, nil
}
