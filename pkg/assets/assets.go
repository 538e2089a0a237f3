// Package assets presents a flat blob namespace as a virtual hierarchy of
// files and folders.
//
// Callers address everything by URL: absolute, root-relative, or
// container-relative, encoded or not, with or without a query string. The
// first path segment is always the container; a trailing delimiter marks a
// directory target. Folders are emulated with delimiter listings and
// zero-byte ".keep" marker objects, and move/copy operate on whole key
// prefixes with bounded concurrent fan-out.
package assets

import (
	"context"
	"io"
)

// Reader is the lookup and read capability.
type Reader interface {
	// Stat returns the record for a file URL, or an error including
	// blobstore.ErrNotFound when absent.
	Stat(ctx context.Context, url string) (*BlobRecord, error)

	// GetInfo is the best-effort form of Stat: any lookup failure,
	// transport errors included, collapses to absence.
	GetInfo(ctx context.Context, url string) (*BlobRecord, bool)

	// Exists reports whether the file URL resolves to a stored object.
	Exists(ctx context.Context, url string) bool

	// OpenRead opens the object for streaming reads.
	OpenRead(ctx context.Context, url string) (io.ReadCloser, error)
}

// Writer is the mutation capability.
type Writer interface {
	// OpenWrite opens a write-only stream that uploads on Close. The
	// target name must pass the extension policy.
	OpenWrite(ctx context.Context, url string) (io.WriteCloser, error)

	// Remove deletes each URL best-effort: files, folder subtrees, or
	// whole containers when the URL has no path remainder.
	Remove(ctx context.Context, urls ...string) error
}

// Resolver turns caller-supplied URLs and keys into canonical absolute
// URLs.
type Resolver interface {
	ResolveAbsoluteURL(input string) (string, error)
}

// Hierarchy is the virtual folder capability.
type Hierarchy interface {
	// Search lists one folder (folderURL given) or the top-level
	// containers (folderURL empty), filtering by keyword prefix.
	Search(ctx context.Context, folderURL, keyword string) (*SearchResult, error)

	// CreateFolder materializes a folder, creating the container when
	// needed and a marker object for empty directories.
	CreateFolder(ctx context.Context, folder Folder) error
}

// Transferrer moves and copies files or whole folder subtrees.
type Transferrer interface {
	Move(ctx context.Context, srcURL, dstURL string) error
	Copy(ctx context.Context, srcURL, dstURL string) error
}
