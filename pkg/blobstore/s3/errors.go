package s3

import (
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/seaward/blobtree/pkg/blobstore"
)

// wrapError converts S3 errors to store errors with appropriate sentinels.
func (s *Store) wrapError(op, cont, key string, err error) error {
	wrapped := &blobstore.StoreError{
		Op:        op,
		Backend:   blobstore.BackendS3,
		Container: cont,
		Key:       key,
		Err:       err,
	}

	// Check for specific S3 error types first
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	var noSuchBucket *types.NoSuchBucket

	switch {
	case errors.As(err, &notFound), errors.As(err, &noSuchKey):
		wrapped.Err = blobstore.ErrNotFound
		return wrapped
	case errors.As(err, &noSuchBucket):
		wrapped.Err = blobstore.ErrContainerNotFound
		return wrapped
	}

	// Check smithy API errors for error codes
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			wrapped.Err = blobstore.ErrNotFound
		case "NoSuchBucket":
			wrapped.Err = blobstore.ErrContainerNotFound
		case "AccessDenied", "Forbidden":
			wrapped.Err = blobstore.ErrAccessDenied
		case "InvalidAccessKeyId", "SignatureDoesNotMatch":
			wrapped.Err = blobstore.ErrInvalidCredentials
		case "ServiceUnavailable", "InternalError", "SlowDown":
			wrapped.Err = blobstore.ErrUnavailable
		}
		return wrapped
	}

	// Fallback: check error message for common cases
	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "NoSuchKey") || strings.Contains(errMsg, "NotFound") || strings.Contains(errMsg, "404"):
		wrapped.Err = blobstore.ErrNotFound
	case strings.Contains(errMsg, "NoSuchBucket"):
		wrapped.Err = blobstore.ErrContainerNotFound
	case strings.Contains(errMsg, "AccessDenied") || strings.Contains(errMsg, "Forbidden") || strings.Contains(errMsg, "403"):
		wrapped.Err = blobstore.ErrAccessDenied
	case strings.Contains(errMsg, "InvalidAccessKeyId") || strings.Contains(errMsg, "SignatureDoesNotMatch"):
		wrapped.Err = blobstore.ErrInvalidCredentials
	case strings.Contains(errMsg, "ServiceUnavailable") || strings.Contains(errMsg, "503"):
		wrapped.Err = blobstore.ErrUnavailable
	}

	return wrapped
}

// isBucketExists reports whether err means the bucket already exists and
// is owned by this account, which EnsureContainer treats as success.
func isBucketExists(err error) bool {
	var owned *types.BucketAlreadyOwnedByYou
	if errors.As(err, &owned) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "BucketAlreadyOwnedByYou"
}
