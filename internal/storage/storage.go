package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/janus/apiserver/config"
)

const (
	BackendMinio = "minio"
	BackendGCS   = "gcs"
)

// ErrNoBackend is returned when no archive backend is configured.
var ErrNoBackend = errors.New("no archive backend configured")

// SizeUnknown marks an Object whose body length is not known up front.
const SizeUnknown int64 = -1

// Object is one archive file. Body is read to EOF by the backend.
type Object struct {
	Key         string
	Body        io.Reader
	Size        int64
	ContentType string
	// Metadata is stored as object user metadata on both backends.
	Metadata map[string]string
}

// Backend is the object store an Archive writes to.
type Backend interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, obj Object) error
	Bucket() string
}

// Archive is the write-only sink for audit exports.
type Archive struct {
	backend Backend
}

func NewArchive(backend Backend) *Archive {
	return &Archive{backend: backend}
}

// New builds the Archive selected by cfg.Backend.
func New(ctx context.Context, cfg config.ArchiveConfig) (*Archive, error) {
	var (
		backend Backend
		err     error
	)
	switch cfg.Backend {
	case "":
		return nil, ErrNoBackend
	case BackendMinio:
		backend, err = newMinioBackend(cfg.Minio)
	case BackendGCS:
		backend, err = newGCSBackend(ctx, cfg.GCS)
	default:
		return nil, fmt.Errorf("unsupported archive backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("init %s archive: %w", cfg.Backend, err)
	}
	return NewArchive(backend), nil
}

// Upload makes sure the bucket exists and writes obj.
func (a *Archive) Upload(ctx context.Context, obj Object) error {
	if obj.Key == "" {
		return errors.New("archive object key is empty")
	}
	if obj.Body == nil {
		return errors.New("archive object body is nil")
	}
	if err := a.backend.EnsureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket %s: %w", a.backend.Bucket(), err)
	}
	if err := a.backend.Put(ctx, obj); err != nil {
		return fmt.Errorf("put %s/%s: %w", a.backend.Bucket(), obj.Key, err)
	}
	return nil
}

func (a *Archive) Bucket() string {
	return a.backend.Bucket()
}
