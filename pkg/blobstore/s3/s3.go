package s3

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/seaward/blobtree/pkg/blobstore"
)

// Store implements blobstore.Store for AWS S3 and S3-compatible storage.
// Containers map to buckets.
type Store struct {
	client *s3.Client
	prefix string
}

var _ blobstore.Store = (*Store)(nil)

// New creates a new S3 store with the given configuration.
//
// The store uses AWS SDK v2's default credential chain unless explicit
// credentials are provided in the config.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, &blobstore.StoreError{
			Op:      "New",
			Backend: blobstore.BackendS3,
			Err:     err,
		}
	}

	s3Opts := []func(*s3.Options){
		func(o *s3.Options) {
			if cfg.ForcePathStyle {
				o.UsePathStyle = true
			}
		},
	}

	// Custom endpoint for S3-compatible stores
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}

	return &Store{
		client: s3.NewFromConfig(awsCfg, s3Opts...),
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// loadAWSConfig builds the AWS configuration with appropriate credentials.
func loadAWSConfig(ctx context.Context, cfg Config) (aws.Config, error) {
	var opts []func(*config.LoadOptions) error

	// Only apply explicit region if user set one in config.
	// Let SDK resolve from env/profile first.
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		staticCreds := credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"", // session token (empty for long-term credentials)
		)
		opts = append(opts, config.WithCredentialsProvider(staticCreds))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, err
	}

	awsCfg.Region = resolveRegion(cfg.Endpoint, awsCfg.Region)

	return awsCfg, nil
}

// resolveRegion applies the fallback default after SDK config loading.
// The SDK has already incorporated explicit config, environment, and
// profile resolution; only AWS S3 without a custom endpoint gets the
// us-east-1 default.
func resolveRegion(endpoint, sdkRegion string) string {
	if sdkRegion != "" {
		return sdkRegion
	}
	if endpoint == "" {
		return DefaultAWSRegion
	}
	// S3-compatible: no default, endpoint may not need a region
	return ""
}

// Backend identifies the implementation.
func (s *Store) Backend() blobstore.Backend { return blobstore.BackendS3 }

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

// EnsureContainer creates the bucket if it does not already exist. S3 has
// no per-bucket public-access type equivalent to Azure containers; the
// access argument is accepted for interface parity and otherwise ignored.
func (s *Store) EnsureContainer(ctx context.Context, name string, _ blobstore.PublicAccess) error {
	_, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(name)})
	if err != nil && !isBucketExists(err) {
		return s.wrapError("EnsureContainer", name, "", err)
	}
	return nil
}

// ContainerExists reports whether the bucket exists.
func (s *Store) ContainerExists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(name)})
	if err != nil {
		wrapped := s.wrapError("ContainerExists", name, "", err)
		if blobstore.IsNotFound(wrapped) {
			return false, nil
		}
		return false, wrapped
	}
	return true, nil
}

// DeleteContainer removes the bucket; deleting an absent bucket is a no-op.
// The bucket must already be empty, matching S3 semantics.
func (s *Store) DeleteContainer(ctx context.Context, name string) error {
	_, err := s.client.DeleteBucket(ctx, &s3.DeleteBucketInput{Bucket: aws.String(name)})
	if err != nil {
		wrapped := s.wrapError("DeleteContainer", name, "", err)
		if blobstore.IsNotFound(wrapped) {
			return nil
		}
		return wrapped
	}
	return nil
}

// GetProperties returns object metadata.
func (s *Store) GetProperties(ctx context.Context, cont, key string) (*blobstore.Properties, error) {
	output, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(cont),
		Key:    aws.String(s.withPrefix(key)),
	})
	if err != nil {
		return nil, s.wrapError("GetProperties", cont, key, err)
	}
	return &blobstore.Properties{
		Key:         key,
		ContentType: aws.ToString(output.ContentType),
		Size:        aws.ToInt64(output.ContentLength),
		ETag:        cleanETag(aws.ToString(output.ETag)),
		ModifiedAt:  aws.ToTime(output.LastModified).UTC(),
		// S3 does not track creation time separately from modification.
		CreatedAt: aws.ToTime(output.LastModified).UTC(),
	}, nil
}

// OpenRead opens the object for streaming reads.
func (s *Store) OpenRead(ctx context.Context, cont, key string) (io.ReadCloser, error) {
	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(cont),
		Key:    aws.String(s.withPrefix(key)),
	})
	if err != nil {
		return nil, s.wrapError("OpenRead", cont, key, err)
	}
	return output.Body, nil
}

// Upload creates or overwrites the object from body.
func (s *Store) Upload(ctx context.Context, cont, key string, body io.Reader, opts blobstore.UploadOptions) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(cont),
		Key:    aws.String(s.withPrefix(key)),
		Body:   body,
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if opts.CacheControl != "" {
		input.CacheControl = aws.String(opts.CacheControl)
	}
	_, err := s.client.PutObject(ctx, input)
	if err != nil {
		return s.wrapError("Upload", cont, key, err)
	}
	return nil
}

// Copy performs a server-side copy. The copy source must be URL-encoded
// per the S3 API.
func (s *Store) Copy(ctx context.Context, srcCont, srcKey, dstCont, dstKey string) error {
	source := srcCont + "/" + s.withPrefix(srcKey)
	_, err := s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(dstCont),
		Key:        aws.String(s.withPrefix(dstKey)),
		CopySource: aws.String(escapeCopySource(source)),
	})
	if err != nil {
		return s.wrapError("Copy", dstCont, dstKey, err)
	}
	return nil
}

func escapeCopySource(source string) string {
	parts := strings.Split(source, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// Delete removes the object, reporting whether it existed. S3's
// DeleteObject succeeds for absent keys, so existence is probed first.
func (s *Store) Delete(ctx context.Context, cont, key string) (bool, error) {
	fullKey := s.withPrefix(key)
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(cont),
		Key:    aws.String(fullKey),
	})
	if err != nil {
		wrapped := s.wrapError("Delete", cont, key, err)
		if blobstore.IsNotFound(wrapped) {
			return false, nil
		}
		return false, wrapped
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(cont),
		Key:    aws.String(fullKey),
	})
	if err != nil {
		return false, s.wrapError("Delete", cont, key, err)
	}
	return true, nil
}

// ListFlat streams every object under prefix to fn, draining all pages.
func (s *Store) ListFlat(ctx context.Context, cont, prefix string, fn func(blobstore.Item) error) error {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(cont),
		Prefix: aws.String(s.withPrefix(prefix)),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			wrapped := s.wrapError("ListFlat", cont, prefix, err)
			if blobstore.IsNotFound(wrapped) {
				return nil
			}
			return wrapped
		}
		for _, obj := range page.Contents {
			if err := fn(s.itemFromObject(obj)); err != nil {
				return err
			}
		}
	}
	return nil
}

// ListHierarchy returns the delimiter-grouped listing under prefix, fully
// drained.
func (s *Store) ListHierarchy(ctx context.Context, cont, prefix, delimiter string) (*blobstore.HierarchyListing, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(cont),
		Prefix:    aws.String(s.withPrefix(prefix)),
		Delimiter: aws.String(delimiter),
	})
	listing := &blobstore.HierarchyListing{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			wrapped := s.wrapError("ListHierarchy", cont, prefix, err)
			if blobstore.IsNotFound(wrapped) {
				return listing, nil
			}
			return nil, wrapped
		}
		for _, cp := range page.CommonPrefixes {
			listing.Prefixes = append(listing.Prefixes, s.trimKey(aws.ToString(cp.Prefix)))
		}
		for _, obj := range page.Contents {
			listing.Items = append(listing.Items, s.itemFromObject(obj))
		}
	}
	return listing, nil
}

func (s *Store) itemFromObject(obj types.Object) blobstore.Item {
	return blobstore.Item{
		Key:        s.trimKey(aws.ToString(obj.Key)),
		Size:       aws.ToInt64(obj.Size),
		ModifiedAt: aws.ToTime(obj.LastModified).UTC(),
		CreatedAt:  aws.ToTime(obj.LastModified).UTC(),
	}
}

// ListContainers returns the buckets whose name starts with prefix. The
// S3 API has no server-side name filter, so filtering happens here.
func (s *Store) ListContainers(ctx context.Context, prefix string) ([]blobstore.ContainerEntry, error) {
	output, err := s.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, s.wrapError("ListContainers", "", "", err)
	}
	var entries []blobstore.ContainerEntry
	for _, b := range output.Buckets {
		name := aws.ToString(b.Name)
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		entries = append(entries, blobstore.ContainerEntry{
			Name:       name,
			ModifiedAt: aws.ToTime(b.CreationDate).UTC(),
		})
	}
	return entries, nil
}

// Close releases any resources held by the store.
// The S3 client doesn't require explicit cleanup, but this satisfies the interface.
func (s *Store) Close() error { return nil }

// cleanETag removes surrounding quotes from an ETag value.
// S3 returns ETags with quotes, e.g., "d41d8cd98f00b204e9800998ecf8427e".
func cleanETag(etag string) string {
	return strings.Trim(etag, "\"")
}
