// Package azure implements blobstore.Store on Azure Blob Storage.
package azure

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"

	"github.com/seaward/blobtree/pkg/blobstore"
)

// Store implements blobstore.Store backed by Azure Blob Storage.
type Store struct {
	client   *azblob.Client
	endpoint string
	prefix   string
}

var _ blobstore.Store = (*Store)(nil)

// New constructs a Store using the provided configuration. Authentication
// uses a shared key credential or a SAS token; no custom auth logic beyond
// that.
func New(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	endpoint := cfg.ServiceURL()

	var (
		client *azblob.Client
		err    error
	)
	if cfg.SASToken != "" {
		endpointWithSAS, serr := appendSASToken(endpoint, cfg.SASToken)
		if serr != nil {
			return nil, serr
		}
		client, err = azblob.NewClientWithNoCredential(endpointWithSAS, nil)
	} else {
		cred, credErr := azblob.NewSharedKeyCredential(cfg.Account, cfg.AccountKey)
		if credErr != nil {
			return nil, fmt.Errorf("azure: build credentials: %w", credErr)
		}
		client, err = azblob.NewClientWithSharedKeyCredential(endpoint, cred, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("azure: create client: %w", err)
	}

	return &Store{
		client:   client,
		endpoint: endpoint,
		prefix:   strings.Trim(cfg.Prefix, "/"),
	}, nil
}

func appendSASToken(endpoint, sas string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("azure: parse endpoint: %w", err)
	}
	sas = strings.TrimPrefix(sas, "?")
	if u.RawQuery != "" {
		u.RawQuery = u.RawQuery + "&" + sas
	} else {
		u.RawQuery = sas
	}
	return u.String(), nil
}

// Backend identifies the implementation.
func (s *Store) Backend() blobstore.Backend { return blobstore.BackendAzure }

// Endpoint returns the service endpoint the store talks to.
func (s *Store) Endpoint() string { return s.endpoint }

func (s *Store) withPrefix(key string) string {
	if s.prefix == "" {
		return key
	}
	if key == "" {
		return s.prefix + "/"
	}
	return s.prefix + "/" + key
}

func (s *Store) trimKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return strings.TrimPrefix(key, s.prefix+"/")
}

// EnsureContainer creates the container with the given public-access policy
// if it does not already exist.
func (s *Store) EnsureContainer(ctx context.Context, name string, access blobstore.PublicAccess) error {
	opts := &azblob.CreateContainerOptions{}
	switch access {
	case blobstore.PublicAccessBlob:
		a := container.PublicAccessTypeBlob
		opts.Access = &a
	case blobstore.PublicAccessContainer:
		a := container.PublicAccessTypeContainer
		opts.Access = &a
	}
	_, err := s.client.CreateContainer(ctx, name, opts)
	if err != nil && !isContainerExists(err) {
		return s.wrapError("EnsureContainer", name, "", err)
	}
	return nil
}

// ContainerExists reports whether the container exists.
func (s *Store) ContainerExists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.ServiceClient().NewContainerClient(name).GetProperties(ctx, nil)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, s.wrapError("ContainerExists", name, "", err)
	}
	return true, nil
}

// DeleteContainer removes the container; deleting an absent container is a
// no-op.
func (s *Store) DeleteContainer(ctx context.Context, name string) error {
	_, err := s.client.DeleteContainer(ctx, name, nil)
	if err != nil && !isNotFound(err) {
		return s.wrapError("DeleteContainer", name, "", err)
	}
	return nil
}

// GetProperties returns object metadata.
func (s *Store) GetProperties(ctx context.Context, cont, key string) (*blobstore.Properties, error) {
	blobClient := s.client.ServiceClient().NewContainerClient(cont).NewBlobClient(s.withPrefix(key))
	resp, err := blobClient.GetProperties(ctx, nil)
	if err != nil {
		return nil, s.wrapError("GetProperties", cont, key, err)
	}
	props := &blobstore.Properties{Key: key}
	if resp.ContentLength != nil {
		props.Size = *resp.ContentLength
	}
	if resp.ContentType != nil {
		props.ContentType = *resp.ContentType
	}
	if resp.ETag != nil {
		props.ETag = string(*resp.ETag)
	}
	if resp.CreationTime != nil {
		props.CreatedAt = resp.CreationTime.UTC()
	}
	if resp.LastModified != nil {
		props.ModifiedAt = resp.LastModified.UTC()
	}
	return props, nil
}

// OpenRead opens the blob for streaming reads.
func (s *Store) OpenRead(ctx context.Context, cont, key string) (io.ReadCloser, error) {
	resp, err := s.client.DownloadStream(ctx, cont, s.withPrefix(key), nil)
	if err != nil {
		return nil, s.wrapError("OpenRead", cont, key, err)
	}
	return resp.Body, nil
}

// Upload creates or overwrites the blob from body.
func (s *Store) Upload(ctx context.Context, cont, key string, body io.Reader, opts blobstore.UploadOptions) error {
	uploadOpts := &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{},
	}
	if opts.ContentType != "" {
		ct := opts.ContentType
		uploadOpts.HTTPHeaders.BlobContentType = &ct
	}
	if opts.CacheControl != "" {
		cc := opts.CacheControl
		uploadOpts.HTTPHeaders.BlobCacheControl = &cc
	}
	_, err := s.client.UploadStream(ctx, cont, s.withPrefix(key), body, uploadOpts)
	if err != nil {
		return s.wrapError("Upload", cont, key, err)
	}
	return nil
}

// Copy performs a synchronous server-side copy and returns once it has
// completed.
func (s *Store) Copy(ctx context.Context, srcCont, srcKey, dstCont, dstKey string) error {
	svc := s.client.ServiceClient()
	srcURL := svc.NewContainerClient(srcCont).NewBlobClient(s.withPrefix(srcKey)).URL()
	dstClient := svc.NewContainerClient(dstCont).NewBlobClient(s.withPrefix(dstKey))
	if _, err := dstClient.CopyFromURL(ctx, srcURL, nil); err != nil {
		return s.wrapError("Copy", dstCont, dstKey, err)
	}
	return nil
}

// Delete removes the blob, reporting whether it existed.
func (s *Store) Delete(ctx context.Context, cont, key string) (bool, error) {
	_, err := s.client.DeleteBlob(ctx, cont, s.withPrefix(key), nil)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, s.wrapError("Delete", cont, key, err)
	}
	return true, nil
}

// ListFlat streams every blob under prefix to fn, draining all pages.
func (s *Store) ListFlat(ctx context.Context, cont, prefix string, fn func(blobstore.Item) error) error {
	prefixed := s.withPrefix(prefix)
	pager := s.client.NewListBlobsFlatPager(cont, &azblob.ListBlobsFlatOptions{
		Prefix: &prefixed,
	})
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if isNotFound(err) {
				return nil
			}
			return s.wrapError("ListFlat", cont, prefix, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			if err := fn(s.itemFromBlob(*item.Name, item.Properties)); err != nil {
				return err
			}
		}
	}
	return nil
}

// ListHierarchy returns the delimiter-grouped listing under prefix, fully
// drained.
func (s *Store) ListHierarchy(ctx context.Context, cont, prefix, delimiter string) (*blobstore.HierarchyListing, error) {
	prefixed := s.withPrefix(prefix)
	pager := s.client.ServiceClient().NewContainerClient(cont).NewListBlobsHierarchyPager(delimiter, &container.ListBlobsHierarchyOptions{
		Prefix: &prefixed,
	})
	listing := &blobstore.HierarchyListing{}
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			if isNotFound(err) {
				return listing, nil
			}
			return nil, s.wrapError("ListHierarchy", cont, prefix, err)
		}
		for _, bp := range page.Segment.BlobPrefixes {
			if bp.Name == nil {
				continue
			}
			listing.Prefixes = append(listing.Prefixes, s.trimKey(*bp.Name))
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			listing.Items = append(listing.Items, s.itemFromBlob(*item.Name, item.Properties))
		}
	}
	return listing, nil
}

func (s *Store) itemFromBlob(name string, props *container.BlobProperties) blobstore.Item {
	it := blobstore.Item{Key: s.trimKey(name)}
	if props == nil {
		return it
	}
	if props.ContentLength != nil {
		it.Size = *props.ContentLength
	}
	if props.ContentType != nil {
		it.ContentType = *props.ContentType
	}
	if props.CreationTime != nil {
		it.CreatedAt = props.CreationTime.UTC()
	}
	if props.LastModified != nil {
		it.ModifiedAt = props.LastModified.UTC()
	}
	return it
}

// ListContainers returns the containers whose name starts with prefix.
func (s *Store) ListContainers(ctx context.Context, prefix string) ([]blobstore.ContainerEntry, error) {
	opts := &azblob.ListContainersOptions{}
	if prefix != "" {
		opts.Prefix = &prefix
	}
	pager := s.client.NewListContainersPager(opts)
	var entries []blobstore.ContainerEntry
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, s.wrapError("ListContainers", "", "", err)
		}
		for _, item := range page.ContainerItems {
			if item.Name == nil {
				continue
			}
			entry := blobstore.ContainerEntry{Name: *item.Name}
			if item.Properties != nil && item.Properties.LastModified != nil {
				entry.ModifiedAt = item.Properties.LastModified.UTC()
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// Close satisfies blobstore.Store; the Azure client holds no resources
// that need explicit cleanup.
func (s *Store) Close() error { return nil }
