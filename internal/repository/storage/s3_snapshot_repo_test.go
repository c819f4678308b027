package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dafibh/spendsense/spendsense-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 is an in-memory S3API
type fakeS3 struct {
	buckets       map[string]bool
	objects       map[string][]byte
	contentTypes  map[string]string
	headErr       error
	createdBucket string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{
		buckets:      make(map[string]bool),
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (f *fakeS3) HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if f.headErr != nil {
		return nil, f.headErr
	}
	if !f.buckets[aws.ToString(params.Bucket)] {
		return nil, &types.NotFound{}
	}
	return &s3.HeadBucketOutput{}, nil
}

func (f *fakeS3) CreateBucket(ctx context.Context, params *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error) {
	f.createdBucket = aws.ToString(params.Bucket)
	f.buckets[f.createdBucket] = true
	return &s3.CreateBucketOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)
	f.objects[key] = data
	f.contentTypes[key] = aws.ToString(params.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func TestS3SnapshotRepository_Key(t *testing.T) {
	assert.Equal(t, "state.json", NewS3SnapshotRepositoryWithClient(newFakeS3(), "b", "").key)
	assert.Equal(t, "spendsense/state.json", NewS3SnapshotRepositoryWithClient(newFakeS3(), "b", "spendsense/").key)
}

func TestS3SnapshotRepository_LoadMissing(t *testing.T) {
	repo := NewS3SnapshotRepositoryWithClient(newFakeS3(), "spendsense-state", "")

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestS3SnapshotRepository_SaveAndLoad(t *testing.T) {
	client := newFakeS3()
	repo := NewS3SnapshotRepositoryWithClient(client, "spendsense-state", "prod")

	require.NoError(t, repo.Save(context.Background(), []byte(`{"budget":"100"}`)))
	assert.Equal(t, "application/json", client.contentTypes["spendsense-state/prod/state.json"])

	payload, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.JSONEq(t, `{"budget":"100"}`, string(payload))
}

func TestS3SnapshotRepository_EnsureBucket(t *testing.T) {
	client := newFakeS3()
	repo := NewS3SnapshotRepositoryWithClient(client, "spendsense-state", "")

	require.NoError(t, repo.ensureBucket(context.Background()))
	assert.Equal(t, "spendsense-state", client.createdBucket)

	// Existing bucket is left alone
	client.createdBucket = ""
	require.NoError(t, repo.ensureBucket(context.Background()))
	assert.Empty(t, client.createdBucket)
}

func TestS3SnapshotRepository_EnsureBucket_PermissionDenied(t *testing.T) {
	client := newFakeS3()
	client.headErr = errors.New("forbidden")
	repo := NewS3SnapshotRepositoryWithClient(client, "spendsense-state", "")

	err := repo.ensureBucket(context.Background())
	assert.Error(t, err)
	assert.Empty(t, client.createdBucket)
}
