package assets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/seaward/blobtree/pkg/blobstore"
	"github.com/seaward/blobtree/pkg/locator"
)

// CreateFolder materializes a folder. With no parent the name becomes a
// new container; under a parent the directory is held open by a zero-byte
// marker object. Re-creating an existing folder is a no-op overwrite.
func (p *Provider) CreateFolder(ctx context.Context, folder Folder) error {
	name := strings.Trim(folder.Name, locator.Delimiter)
	if name == "" {
		return fmt.Errorf("%w: folder name is empty", locator.ErrInvalidLocator)
	}
	if strings.Contains(name, locator.Delimiter) {
		return fmt.Errorf("%w: folder name %q contains a delimiter", locator.ErrInvalidLocator, folder.Name)
	}

	container := name
	dir := ""
	if folder.ParentURL != "" {
		var err error
		container, err = locator.ContainerName(folder.ParentURL)
		if err != nil {
			return err
		}
		parentDir, err := locator.DirectoryPath(folder.ParentURL)
		if err != nil {
			return err
		}
		dir = parentDir + name + locator.Delimiter
	}

	if err := p.store.EnsureContainer(ctx, container, p.access); err != nil {
		return err
	}
	if dir == "" {
		return nil
	}

	p.log.Debug("materializing folder",
		zap.String("container", container),
		zap.String("dir", dir),
	)
	return p.store.Upload(ctx, container, dir+MarkerName, strings.NewReader(""), blobstore.UploadOptions{
		ContentType: "application/octet-stream",
	})
}
