package assets

import (
	"context"
	"strings"

	"github.com/seaward/blobtree/pkg/blobstore"
	"github.com/seaward/blobtree/pkg/locator"
)

// Search lists a virtual folder or, with no folderURL, the top-level
// containers.
//
// Container-scoped: keyword is appended to the folder's key prefix
// without an extra delimiter, so it prefix-filters entries inside the
// folder rather than doing full-text search. Marker objects never appear
// in results. Store-scoped: keyword prefix-filters container names, and
// each matching container is emitted as a folder.
//
// Ordering follows the backend's listing order; TotalCount counts what
// was actually emitted after filtering.
func (p *Provider) Search(ctx context.Context, folderURL, keyword string) (*SearchResult, error) {
	if folderURL == "" {
		return p.searchContainers(ctx, keyword)
	}
	return p.searchFolder(ctx, folderURL, keyword)
}

func (p *Provider) searchContainers(ctx context.Context, keyword string) (*SearchResult, error) {
	entries, err := p.store.ListContainers(ctx, keyword)
	if err != nil {
		return nil, err
	}
	result := &SearchResult{}
	for _, entry := range entries {
		abs, rel := p.dirURLs(locator.Locator{Container: entry.Name})
		result.Folders = append(result.Folders, FolderRecord{
			Name:        entry.Name,
			URL:         abs,
			RelativeURL: rel,
			ParentURL:   p.publicBase().String(),
			ModifiedAt:  entry.ModifiedAt,
		})
	}
	result.TotalCount = len(result.Folders)
	return result, nil
}

func (p *Provider) searchFolder(ctx context.Context, folderURL, keyword string) (*SearchResult, error) {
	container, err := locator.ContainerName(folderURL)
	if err != nil {
		return nil, err
	}
	dir, err := locator.DirectoryPath(folderURL)
	if err != nil {
		return nil, err
	}

	listing, err := p.store.ListHierarchy(ctx, container, dir+keyword, locator.Delimiter)
	if err != nil {
		return nil, err
	}

	parentAbs, _ := p.dirURLs(locator.Locator{Container: container, DirectoryPath: dir})
	result := &SearchResult{}

	for _, prefix := range listing.Prefixes {
		loc := locator.Locator{Container: container, DirectoryPath: prefix}
		abs, rel := p.dirURLs(loc)
		result.Folders = append(result.Folders, FolderRecord{
			Name:        leafName(prefix),
			URL:         abs,
			RelativeURL: rel,
			ParentURL:   parentAbs,
		})
	}

	for _, item := range listing.Items {
		name := leafName(item.Key)
		// The .keep sentinel holds empty folders open; it is never a
		// result.
		if name == "" || name == MarkerName || strings.HasSuffix(item.Key, locator.Delimiter) {
			continue
		}
		result.Blobs = append(result.Blobs, p.blobFromItem(container, item))
	}

	result.TotalCount = len(result.Folders) + len(result.Blobs)
	return result, nil
}

func (p *Provider) blobFromItem(container string, item blobstore.Item) BlobRecord {
	loc := locator.Locator{Container: container, FilePath: item.Key}
	abs, rel := p.fileURLs(loc)
	return BlobRecord{
		Name:        leafName(item.Key),
		URL:         abs,
		RelativeURL: rel,
		ContentType: item.ContentType,
		Size:        item.Size,
		CreatedAt:   item.CreatedAt,
		ModifiedAt:  item.ModifiedAt,
	}
}
