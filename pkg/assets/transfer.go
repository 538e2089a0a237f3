package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/seaward/blobtree/pkg/blobstore"
	"github.com/seaward/blobtree/pkg/locator"
)

// Move relocates a file or folder subtree. Each source object is deleted
// only after its copy is confirmed complete.
func (p *Provider) Move(ctx context.Context, srcURL, dstURL string) error {
	return p.transfer(ctx, srcURL, dstURL, false)
}

// Copy duplicates a file or folder subtree, leaving sources in place.
func (p *Provider) Copy(ctx context.Context, srcURL, dstURL string) error {
	return p.transfer(ctx, srcURL, dstURL, true)
}

// transfer enumerates every object under the source prefix, then fans the
// per-object work out with bounded concurrency and joins all of it before
// returning. Per-object failures are aggregated; every scheduled object is
// awaited even after a failure.
//
// The enumeration is not a snapshot: objects created under the source
// prefix after the listing has drained are not part of the batch, and a
// source that vanished between listing and copy is treated as nothing to
// do.
func (p *Provider) transfer(ctx context.Context, srcURL, dstURL string, isCopy bool) error {
	srcContainer, err := locator.ContainerName(srcURL)
	if err != nil {
		return err
	}
	dstContainer, err := locator.ContainerName(dstURL)
	if err != nil {
		return err
	}

	var oldPrefix, newPrefix string
	if locator.IsDirectory(srcURL) {
		oldPrefix, err = locator.DirectoryPath(srcURL)
		if err != nil {
			return err
		}
		newPrefix, err = locator.DirectoryPath(dstURL)
	} else {
		oldPrefix, err = locator.FilePath(srcURL)
		if err != nil {
			return err
		}
		newPrefix, err = locator.FilePath(dstURL)
	}
	if err != nil {
		return err
	}
	if oldPrefix == "" {
		return fmt.Errorf("%w: %q has no path to transfer", locator.ErrInvalidLocator, srcURL)
	}

	if err := p.store.EnsureContainer(ctx, dstContainer, p.access); err != nil {
		return err
	}

	var keys []string
	err = p.store.ListFlat(ctx, srcContainer, oldPrefix, func(item blobstore.Item) error {
		keys = append(keys, item.Key)
		return nil
	})
	if err != nil {
		return err
	}

	p.log.Debug("transferring objects",
		zap.String("src", srcContainer+locator.Delimiter+oldPrefix),
		zap.String("dst", dstContainer+locator.Delimiter+newPrefix),
		zap.Int("count", len(keys)),
		zap.Bool("copy", isCopy),
	)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	sem := make(chan struct{}, p.concurrency)
	for _, key := range keys {
		wg.Add(1)
		sem <- struct{}{}
		go func(key string) {
			defer wg.Done()
			defer func() { <-sem }()
			newKey := strings.Replace(key, oldPrefix, newPrefix, 1)
			if err := p.transferObject(ctx, srcContainer, key, dstContainer, newKey, isCopy); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				mu.Unlock()
			}
		}(key)
	}
	wg.Wait()
	return errors.Join(errs...)
}

func (p *Provider) transferObject(ctx context.Context, srcContainer, srcKey, dstContainer, dstKey string, isCopy bool) error {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	if err := p.check.Check(dstKey); err != nil {
		return err
	}

	// No overwrite: an existing destination makes this object a no-op, so
	// re-driving a partially failed batch is idempotent per object.
	_, err := p.store.GetProperties(ctx, dstContainer, dstKey)
	switch {
	case err == nil:
		p.log.Debug("destination exists, skipping",
			zap.String("container", dstContainer), zap.String("key", dstKey))
		return nil
	case !blobstore.IsNotFound(err):
		return err
	}

	if err := p.store.Copy(ctx, srcContainer, srcKey, dstContainer, dstKey); err != nil {
		// The source disappearing between listing and copy is an
		// accepted race, not a failure.
		if blobstore.IsNotFound(err) {
			return nil
		}
		return err
	}

	if isCopy {
		return nil
	}
	_, err = p.store.Delete(ctx, srcContainer, srcKey)
	return err
}
