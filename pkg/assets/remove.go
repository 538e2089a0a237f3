package assets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/seaward/blobtree/pkg/blobstore"
	"github.com/seaward/blobtree/pkg/events"
	"github.com/seaward/blobtree/pkg/locator"
)

// Remove deletes each URL best-effort. A directory URL removes the whole
// subtree under its prefix; a URL with no path remainder removes the
// container outright. Deleting what is already gone is not an error.
//
// One DeletedEvent is published per input URL after that URL's deletions
// complete; URLs that failed publish nothing. Failures across URLs are
// aggregated, and every URL is attempted regardless of earlier errors.
func (p *Provider) Remove(ctx context.Context, urls ...string) error {
	var errs []error
	for _, rawURL := range urls {
		if err := p.removeOne(ctx, rawURL); err != nil {
			errs = append(errs, fmt.Errorf("remove %q: %w", rawURL, err))
			continue
		}
		ev := events.NewDeletedEvent(p.store.Backend().String(), rawURL)
		if err := p.publisher.Publish(ctx, ev); err != nil {
			// Notification failure never fails the deletion itself.
			p.log.Warn("publish deleted event failed",
				zap.String("url", rawURL), zap.Error(err))
		}
	}
	return errors.Join(errs...)
}

func (p *Provider) removeOne(ctx context.Context, rawURL string) error {
	container, err := locator.ContainerName(rawURL)
	if err != nil {
		return err
	}

	var prefix string
	if locator.IsDirectory(rawURL) {
		prefix, err = locator.DirectoryPath(rawURL)
	} else {
		prefix, err = locator.FilePath(rawURL)
	}
	if err != nil {
		return err
	}

	if prefix == "" {
		p.log.Debug("removing container", zap.String("container", container))
		return p.store.DeleteContainer(ctx, container)
	}

	// Enumeration drains fully before any delete, so a key listed here is
	// attempted even if an earlier delete fails.
	var keys []string
	err = p.store.ListFlat(ctx, container, prefix, func(item blobstore.Item) error {
		keys = append(keys, item.Key)
		return nil
	})
	if err != nil {
		return err
	}

	var errs []error
	for _, key := range keys {
		if _, err := p.store.Delete(ctx, container, key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
