package cloud

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/antinvestor/service-ocr/apps/default/service/storage"
	"github.com/pitabwire/util"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

// ProviderCloud stores temporary uploads in any bucket gocloud can open from a URL.
type ProviderCloud struct {
	name          string
	bucketURL     string
	publicBaseURL string

	bucket *blob.Bucket
}

func (provider *ProviderCloud) Name() string {
	return provider.name
}

func (provider *ProviderCloud) BucketURL() string {
	return provider.bucketURL
}

// Setup creates the backing directory for file:// buckets and opens the bucket.
func (provider *ProviderCloud) Setup(ctx context.Context) error {

	u, err := url.Parse(provider.bucketURL)
	if err != nil {
		return fmt.Errorf("invalid temp storage url %q: %w", provider.bucketURL, err)
	}

	if u.Scheme == "file" {
		err = os.MkdirAll(u.Path, 0755)
		if err != nil {
			return err
		}
	}

	bucket, err := blob.OpenBucket(ctx, provider.bucketURL)
	if err != nil {
		return err
	}

	provider.UseBucket(bucket)
	return nil
}

// UseBucket swaps in an already opened bucket, the provider takes ownership of it.
func (provider *ProviderCloud) UseBucket(bucket *blob.Bucket) {
	provider.bucket = bucket
}

func (provider *ProviderCloud) Close() error {
	if provider.bucket == nil {
		return nil
	}
	return provider.bucket.Close()
}

func (provider *ProviderCloud) Save(ctx context.Context, filename string, contentType string, contents []byte) (string, error) {

	key := storage.NewTempKey(filename)

	err := provider.bucket.WriteAll(ctx, key, contents, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}

	return key, nil
}

func (provider *ProviderCloud) URL(key string) string {
	return strings.TrimRight(provider.publicBaseURL, "/") + "/" + url.PathEscape(key)
}

func (provider *ProviderCloud) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {

	r, err := provider.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, "", storage.ErrNotFound
		}
		return nil, "", err
	}

	return r, r.ContentType(), nil
}

func (provider *ProviderCloud) Exists(ctx context.Context, key string) (bool, error) {
	return provider.bucket.Exists(ctx, key)
}

func (provider *ProviderCloud) Delete(ctx context.Context, key string) error {

	err := provider.bucket.Delete(ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		util.Log(ctx).WithError(err).WithField("key", key).Warn("could not remove temporary upload")
		return err
	}

	return nil
}

func NewProvider(name, bucketURL, publicBaseURL string) *ProviderCloud {
	return &ProviderCloud{
		name:          name,
		bucketURL:     bucketURL,
		publicBaseURL: publicBaseURL,
	}
}
