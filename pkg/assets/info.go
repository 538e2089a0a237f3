package assets

import (
	"context"

	"go.uber.org/zap"

	"github.com/seaward/blobtree/pkg/blobstore"
	"github.com/seaward/blobtree/pkg/locator"
)

// Stat returns the record for a file URL. Absence surfaces as an error
// satisfying blobstore.IsNotFound; transport failures stay distinguishable
// from absence.
func (p *Provider) Stat(ctx context.Context, rawURL string) (*BlobRecord, error) {
	loc, err := locator.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	props, err := p.store.GetProperties(ctx, loc.Container, loc.FilePath)
	if err != nil {
		return nil, err
	}
	return p.blobRecord(loc, props), nil
}

// GetInfo is the best-effort lookup: any failure collapses to absence.
// Callers needing to tell transport errors from missing objects use Stat.
func (p *Provider) GetInfo(ctx context.Context, rawURL string) (*BlobRecord, bool) {
	rec, err := p.Stat(ctx, rawURL)
	if err != nil {
		if !blobstore.IsNotFound(err) {
			p.log.Debug("info lookup failed", zap.String("url", rawURL), zap.Error(err))
		}
		return nil, false
	}
	return rec, true
}

// Exists reports whether the URL resolves to a stored object.
func (p *Provider) Exists(ctx context.Context, rawURL string) bool {
	_, ok := p.GetInfo(ctx, rawURL)
	return ok
}

func (p *Provider) blobRecord(loc locator.Locator, props *blobstore.Properties) *BlobRecord {
	abs, rel := p.fileURLs(loc)
	return &BlobRecord{
		Name:        leafName(loc.FilePath),
		URL:         abs,
		RelativeURL: rel,
		ContentType: props.ContentType,
		Size:        props.Size,
		CreatedAt:   props.CreatedAt,
		ModifiedAt:  props.ModifiedAt,
	}
}
