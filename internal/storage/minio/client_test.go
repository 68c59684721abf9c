package minio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	minioLib "github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMinio implements minioAPI for testing without network.
type fakeMinio struct {
	bucketExists    bool
	bucketExistsErr error
	makeBucketErr   error
	madeBucket      string

	putInfo minioLib.UploadInfo
	putErr  error

	gotKey  string
	gotSize int64
	gotOpts minioLib.PutObjectOptions
	gotBody []byte
}

func (f *fakeMinio) BucketExists(_ context.Context, _ string) (bool, error) {
	return f.bucketExists, f.bucketExistsErr
}
func (f *fakeMinio) MakeBucket(_ context.Context, bucket string, _ minioLib.MakeBucketOptions) error {
	f.madeBucket = bucket
	return f.makeBucketErr
}
func (f *fakeMinio) PutObject(_ context.Context, _ string, key string, r io.Reader, size int64, opts minioLib.PutObjectOptions) (minioLib.UploadInfo, error) {
	f.gotKey = key
	f.gotSize = size
	f.gotOpts = opts
	f.gotBody, _ = io.ReadAll(r)
	return f.putInfo, f.putErr
}

func TestNewClientWithAPI_BucketExists(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: true}
	c, err := NewClientWithAPI(ctx, api, "b")
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Equal(t, "b", c.bucket)
	assert.Empty(t, api.madeBucket)
}

func TestNewClientWithAPI_CreateBucket(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: false}
	c, err := NewClientWithAPI(ctx, api, "bucket")
	require.NoError(t, err)
	assert.Equal(t, "bucket", c.bucket)
	assert.Equal(t, "bucket", api.madeBucket)
}

func TestNewClientWithAPI_BucketExistsError(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExistsErr: errors.New("boom")}
	c, err := NewClientWithAPI(ctx, api, "bucket")
	assert.Nil(t, c)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure bucket exists")
}

func TestNewClientWithAPI_MakeBucketError(t *testing.T) {
	ctx := context.Background()
	api := &fakeMinio{bucketExists: false, makeBucketErr: errors.New("fail")}
	c, err := NewClientWithAPI(ctx, api, "bucket")
	assert.Nil(t, c)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure bucket exists")
}

func TestClient_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		api := &fakeMinio{}
		c := &Client{api: api, bucket: "b"}
		err := c.Upload(ctx, "exports/1/x.csv", bytes.NewReader([]byte("data")), 4, "text/csv")
		require.NoError(t, err)
		assert.Equal(t, "exports/1/x.csv", api.gotKey)
		assert.Equal(t, int64(4), api.gotSize)
		assert.Equal(t, "text/csv", api.gotOpts.ContentType)
		assert.Equal(t, []byte("data"), api.gotBody)
	})

	t.Run("error", func(t *testing.T) {
		api := &fakeMinio{putErr: errors.New("put-fail")}
		c := &Client{api: api, bucket: "b"}
		err := c.Upload(ctx, "k", bytes.NewReader([]byte("data")), 4, "application/json")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to upload object")
	})
}

func TestClient_Ping(t *testing.T) {
	ctx := context.Background()

	t.Run("exists", func(t *testing.T) {
		c := &Client{api: &fakeMinio{bucketExists: true}, bucket: "b"}
		assert.NoError(t, c.Ping(ctx))
	})

	t.Run("missing bucket", func(t *testing.T) {
		c := &Client{api: &fakeMinio{bucketExists: false}, bucket: "b"}
		assert.Error(t, c.Ping(ctx))
	})

	t.Run("error", func(t *testing.T) {
		c := &Client{api: &fakeMinio{bucketExistsErr: errors.New("down")}, bucket: "b"}
		err := c.Ping(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to check bucket existence")
	})
}
