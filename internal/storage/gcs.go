package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/janus/apiserver/config"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// gcsBackend stores archives in a Google Cloud Storage bucket.
type gcsBackend struct {
	client    *storage.Client
	bucket    string
	projectID string
}

func newGCSBackend(ctx context.Context, cfg config.GCSConfig) (*gcsBackend, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("gcs bucket is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &gcsBackend{client: client, bucket: cfg.Bucket, projectID: cfg.ProjectID}, nil
}

// EnsureBucket creates the bucket when missing, which needs a project id.
func (g *gcsBackend) EnsureBucket(ctx context.Context) error {
	_, err := g.client.Bucket(g.bucket).Attrs(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrBucketNotExist) {
		return err
	}
	if strings.TrimSpace(g.projectID) == "" {
		return errors.New("gcs project id is required to create bucket")
	}
	return g.client.Bucket(g.bucket).Create(ctx, g.projectID, nil)
}

func (g *gcsBackend) Put(ctx context.Context, obj Object) error {
	// Cancelling the writer's context before Close aborts the upload, so a
	// body that fails midway never becomes a visible object.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Exports are never rewritten, so refuse to overwrite an existing key.
	handle := g.client.Bucket(g.bucket).Object(obj.Key).If(storage.Conditions{DoesNotExist: true})
	writer := handle.NewWriter(ctx)
	writer.ContentType = obj.ContentType
	writer.Metadata = obj.Metadata
	writer.ChunkSize = gcsChunkSize(obj.Size)

	if _, err := io.Copy(writer, obj.Body); err != nil {
		cancel()
		_ = writer.Close()
		return err
	}
	return writer.Close()
}

func (g *gcsBackend) Bucket() string {
	return g.bucket
}

// gcsChunkSize uploads small exports in a single request. Bodies of unknown
// length are sent in resumable chunks.
func gcsChunkSize(size int64) int {
	if size >= 0 && size < googleapi.DefaultUploadChunkSize {
		return 0
	}
	return googleapi.DefaultUploadChunkSize
}
