package azure

import (
	"errors"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seaward/blobtree/pkg/blobstore"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing account",
			cfg:     Config{AccountKey: "key"},
			wantErr: "azure config: Account: account name is required",
		},
		{
			name:    "missing credentials",
			cfg:     Config{Account: "acct"},
			wantErr: "azure config: AccountKey: account key or SAS token required",
		},
		{
			name: "shared key",
			cfg:  Config{Account: "acct", AccountKey: "key"},
		},
		{
			name: "sas only",
			cfg:  Config{Account: "acct", SASToken: "sv=2024"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestConfigServiceURL(t *testing.T) {
	cfg := Config{Account: "acct", AccountKey: "key"}
	assert.Equal(t, "https://acct.blob.core.windows.net", cfg.ServiceURL())

	cfg.Endpoint = "http://127.0.0.1:10000/devstoreaccount1"
	assert.Equal(t, "http://127.0.0.1:10000/devstoreaccount1", cfg.ServiceURL())
}

func TestAppendSASToken(t *testing.T) {
	got, err := appendSASToken("https://acct.blob.core.windows.net", "?sv=2024&sig=abc")
	require.NoError(t, err)
	assert.Equal(t, "https://acct.blob.core.windows.net?sv=2024&sig=abc", got)

	got, err = appendSASToken("https://acct.blob.core.windows.net?timeout=5", "sv=2024")
	require.NoError(t, err)
	assert.Equal(t, "https://acct.blob.core.windows.net?timeout=5&sv=2024", got)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{
			name:     "blob not found",
			err:      &azcore.ResponseError{StatusCode: 404, ErrorCode: string(bloberror.BlobNotFound)},
			sentinel: blobstore.ErrNotFound,
		},
		{
			name:     "container not found",
			err:      &azcore.ResponseError{StatusCode: 404, ErrorCode: string(bloberror.ContainerNotFound)},
			sentinel: blobstore.ErrContainerNotFound,
		},
		{
			name:     "forbidden",
			err:      &azcore.ResponseError{StatusCode: 403, ErrorCode: string(bloberror.AuthorizationFailure)},
			sentinel: blobstore.ErrAccessDenied,
		},
		{
			name:     "unauthorized",
			err:      &azcore.ResponseError{StatusCode: 401},
			sentinel: blobstore.ErrInvalidCredentials,
		},
		{
			name:     "server error",
			err:      &azcore.ResponseError{StatusCode: 503, ErrorCode: string(bloberror.ServerBusy)},
			sentinel: blobstore.ErrUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := mapError(tt.err)
			assert.ErrorIs(t, mapped, tt.sentinel)

			var respErr *azcore.ResponseError
			assert.True(t, errors.As(mapped, &respErr), "original error must stay reachable")
		})
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	plain := errors.New("dial tcp: connection refused")
	assert.Equal(t, plain, mapError(plain))

	teapot := &azcore.ResponseError{StatusCode: 418}
	assert.Equal(t, error(teapot), mapError(teapot))
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&azcore.ResponseError{StatusCode: 404}))
	assert.False(t, isNotFound(&azcore.ResponseError{StatusCode: 409}))
	assert.False(t, isNotFound(errors.New("other")))
}

func TestIsContainerExists(t *testing.T) {
	err := &azcore.ResponseError{StatusCode: 409, ErrorCode: string(bloberror.ContainerAlreadyExists)}
	assert.True(t, isContainerExists(err))
	assert.False(t, isContainerExists(&azcore.ResponseError{StatusCode: 409, ErrorCode: string(bloberror.BlobAlreadyExists)}))
}

func TestPrefixKeys(t *testing.T) {
	s := &Store{prefix: "assets"}
	assert.Equal(t, "assets/catalog/a.txt", s.withPrefix("catalog/a.txt"))
	assert.Equal(t, "assets/", s.withPrefix(""))
	assert.Equal(t, "catalog/a.txt", s.trimKey("assets/catalog/a.txt"))

	bare := &Store{}
	assert.Equal(t, "catalog/a.txt", bare.withPrefix("catalog/a.txt"))
	assert.Equal(t, "catalog/a.txt", bare.trimKey("catalog/a.txt"))
}
