package assets

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"

	"github.com/seaward/blobtree/pkg/blobstore"
	"github.com/seaward/blobtree/pkg/locator"
)

// OpenRead opens the object addressed by rawURL for streaming reads.
func (p *Provider) OpenRead(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	loc, err := locator.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if loc.FilePath == "" {
		return nil, fmt.Errorf("%w: %q is not a file URL", locator.ErrInvalidLocator, rawURL)
	}
	return p.store.OpenRead(ctx, loc.Container, loc.FilePath)
}

// OpenWrite opens a write-only stream for rawURL. Bytes are uploaded as
// they are written; Close blocks until the backend has accepted the whole
// object and returns the upload error, if any. The target name must pass
// the extension policy, and the container is created when absent.
func (p *Provider) OpenWrite(ctx context.Context, rawURL string) (io.WriteCloser, error) {
	loc, err := locator.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if loc.FilePath == "" {
		return nil, fmt.Errorf("%w: %q is not a file URL", locator.ErrInvalidLocator, rawURL)
	}
	if err := p.check.Check(loc.FilePath); err != nil {
		return nil, err
	}
	if err := p.store.EnsureContainer(ctx, loc.Container, p.access); err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	w := &uploadWriter{pw: pw, done: make(chan error, 1)}
	go func() {
		err := p.store.Upload(ctx, loc.Container, loc.FilePath, pr, blobstore.UploadOptions{
			ContentType:  contentTypeFor(loc.FilePath),
			CacheControl: p.cache,
		})
		// Unblock a writer still mid-Write when the upload fails early.
		pr.CloseWithError(err)
		w.done <- err
	}()
	return w, nil
}

// uploadWriter feeds an in-flight Upload through a pipe. Close reports
// the upload outcome.
type uploadWriter struct {
	pw   *io.PipeWriter
	done chan error
}

func (w *uploadWriter) Write(b []byte) (int, error) { return w.pw.Write(b) }

func (w *uploadWriter) Close() error {
	if err := w.pw.Close(); err != nil {
		return err
	}
	return <-w.done
}

// contentTypeFor guesses a MIME type from the key's extension.
func contentTypeFor(key string) string {
	if ct := mime.TypeByExtension(path.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
