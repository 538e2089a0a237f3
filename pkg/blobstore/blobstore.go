// Package blobstore defines the seam between the virtual-hierarchy layers
// and the backend object-storage network client.
//
// Implementations bind one backend (Azure Blob Storage, an S3-compatible
// store, or the in-memory store used in tests) and expose the flat
// container/key primitives everything above is built on. Listing methods
// drain backend pagination in full before returning; partial pages are
// never exposed.
package blobstore

import (
	"context"
	"io"
	"time"
)

// Backend identifies a storage backend implementation.
type Backend string

const (
	// BackendAzure is Azure Blob Storage.
	BackendAzure Backend = "azure"

	// BackendS3 is AWS S3 or an S3-compatible store.
	BackendS3 Backend = "s3"

	// BackendMemory is the in-process store used for tests and development.
	BackendMemory Backend = "memory"
)

// String returns the string representation of the backend.
func (b Backend) String() string { return string(b) }

// PublicAccess is the access policy applied to newly created containers.
type PublicAccess string

const (
	// PublicAccessNone keeps the container private.
	PublicAccessNone PublicAccess = "none"

	// PublicAccessBlob allows anonymous read access to blobs.
	PublicAccessBlob PublicAccess = "blob"

	// PublicAccessContainer allows anonymous read access to blobs and
	// container metadata/listings.
	PublicAccessContainer PublicAccess = "container"
)

// Properties is the metadata of a single object.
type Properties struct {
	Key         string
	ContentType string
	Size        int64
	ETag        string
	CreatedAt   time.Time
	ModifiedAt  time.Time
}

// Item is one object summary from a listing.
type Item struct {
	Key         string
	ContentType string
	Size        int64
	CreatedAt   time.Time
	ModifiedAt  time.Time
}

// HierarchyListing is a fully drained delimiter listing: the objects
// directly under the prefix and the immediate child prefixes, both in
// backend listing order.
type HierarchyListing struct {
	Items    []Item
	Prefixes []string
}

// ContainerEntry is one container summary from a container listing.
type ContainerEntry struct {
	Name       string
	ModifiedAt time.Time
}

// UploadOptions carries the write-side object metadata.
type UploadOptions struct {
	ContentType  string
	CacheControl string
}

// Store is the backend object-store facade.
//
// Implementations must be safe for concurrent use; the transfer and remove
// paths fan out one goroutine per object.
type Store interface {
	// Backend identifies the implementation.
	Backend() Backend

	// EnsureContainer creates the container with the given access policy
	// if it does not already exist. Creating an existing container is a
	// no-op.
	EnsureContainer(ctx context.Context, name string, access PublicAccess) error

	// ContainerExists reports whether the container exists.
	ContainerExists(ctx context.Context, name string) (bool, error)

	// DeleteContainer removes the container and everything in it.
	// Deleting an absent container is a no-op.
	DeleteContainer(ctx context.Context, name string) error

	// GetProperties returns object metadata, or ErrNotFound.
	GetProperties(ctx context.Context, container, key string) (*Properties, error)

	// OpenRead opens the object for streaming reads, or ErrNotFound.
	OpenRead(ctx context.Context, container, key string) (io.ReadCloser, error)

	// Upload creates or overwrites the object from body.
	Upload(ctx context.Context, container, key string, body io.Reader, opts UploadOptions) error

	// Copy performs a backend-side copy and returns once the copy has
	// completed. Returns ErrNotFound when the source object is absent.
	Copy(ctx context.Context, srcContainer, srcKey, dstContainer, dstKey string) error

	// Delete removes the object, reporting whether it existed. Deleting
	// an absent object is not an error.
	Delete(ctx context.Context, container, key string) (bool, error)

	// ListFlat streams every object whose key starts with prefix to fn,
	// draining all backend pages. fn returning an error stops the listing.
	ListFlat(ctx context.Context, container, prefix string, fn func(Item) error) error

	// ListHierarchy returns the delimiter-grouped listing under prefix.
	ListHierarchy(ctx context.Context, container, prefix, delimiter string) (*HierarchyListing, error)

	// ListContainers returns the containers whose name starts with prefix.
	ListContainers(ctx context.Context, prefix string) ([]ContainerEntry, error)

	// Close releases any resources held by the store.
	Close() error
}
