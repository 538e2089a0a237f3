package azure

import (
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/seaward/blobtree/pkg/blobstore"
)

// wrapError maps an azcore response error onto the store sentinels and
// wraps it with operation context.
func (s *Store) wrapError(op, cont, key string, err error) error {
	return &blobstore.StoreError{
		Op:        op,
		Backend:   blobstore.BackendAzure,
		Container: cont,
		Key:       key,
		Err:       mapError(err),
	}
}

func mapError(err error) error {
	var respErr *azcore.ResponseError
	if !errors.As(err, &respErr) {
		return err
	}
	switch respErr.StatusCode {
	case 404:
		if respErr.ErrorCode == string(bloberror.ContainerNotFound) {
			return errors.Join(blobstore.ErrContainerNotFound, err)
		}
		return errors.Join(blobstore.ErrNotFound, err)
	case 401:
		return errors.Join(blobstore.ErrInvalidCredentials, err)
	case 403:
		return errors.Join(blobstore.ErrAccessDenied, err)
	}
	if respErr.StatusCode >= 500 {
		return errors.Join(blobstore.ErrUnavailable, err)
	}
	return err
}

func isNotFound(err error) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == 404
}

func isContainerExists(err error) bool {
	return bloberror.HasCode(err, bloberror.ContainerAlreadyExists)
}
