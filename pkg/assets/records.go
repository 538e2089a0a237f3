package assets

import "time"

// BlobRecord describes one stored object. Records are derived on every
// query from backend metadata, never persisted by this layer.
type BlobRecord struct {
	// Name is the decoded leaf file name.
	Name string `json:"name"`

	// URL is the canonical absolute URL, CDN host applied when configured.
	URL string `json:"url"`

	// RelativeURL is the store-relative path with a single leading
	// delimiter and no query string.
	RelativeURL string `json:"relativeUrl"`

	ContentType string    `json:"contentType,omitempty"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	ModifiedAt  time.Time `json:"modifiedAt,omitzero"`
}

// FolderRecord describes one virtual folder. Non-empty folders exist only
// as a common key prefix; empty ones are held open by a marker object.
type FolderRecord struct {
	// Name is the decoded folder name without delimiters.
	Name string `json:"name"`

	// URL is the canonical absolute directory URL, trailing delimiter
	// included.
	URL string `json:"url"`

	// RelativeURL is the store-relative directory path.
	RelativeURL string `json:"relativeUrl"`

	// ParentURL is the absolute URL of the containing folder, or the
	// store base for top-level containers.
	ParentURL string `json:"parentUrl,omitempty"`

	CreatedAt  time.Time `json:"createdAt,omitzero"`
	ModifiedAt time.Time `json:"modifiedAt,omitzero"`
}

// Folder is the input to CreateFolder.
type Folder struct {
	// Name is the new folder's name. At container root (empty ParentURL)
	// the name becomes the container name.
	Name string `json:"name"`

	// ParentURL addresses the folder the new one is created under. Empty
	// means container root.
	ParentURL string `json:"parentUrl,omitempty"`
}

// SearchResult is the outcome of one Search call. Ordering follows
// backend listing order and is not re-sorted here.
type SearchResult struct {
	Blobs   []BlobRecord   `json:"blobs"`
	Folders []FolderRecord `json:"folders"`

	// TotalCount is the emitted result count after marker filtering, not
	// the raw backend page size.
	TotalCount int `json:"totalCount"`
}
