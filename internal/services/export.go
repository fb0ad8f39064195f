package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/janus/apiserver/internal/pagination"
	"github.com/janus/apiserver/internal/storage"
	"github.com/janus/apiserver/types"
)

const (
	exportPageSize    = pagination.MaxPerPage
	exportContentType = "application/x-ndjson"
)

// ArchiveWriter is the sink an export is uploaded to.
type ArchiveWriter interface {
	Upload(ctx context.Context, obj storage.Object) error
	Bucket() string
}

// ExportResult describes a finished audit export.
type ExportResult struct {
	Bucket  string
	Key     string
	Entries int
}

// AuditExporter copies audit entries to the archive as newline-delimited JSON.
// It only reads the audit trail.
type AuditExporter struct {
	repo    AuditRepository
	archive ArchiveWriter
	now     func() time.Time
}

func NewAuditExporter(repo AuditRepository, archive ArchiveWriter) *AuditExporter {
	return &AuditExporter{repo: repo, archive: archive, now: time.Now}
}

// DefaultKey returns the object key used when none is given.
func (e *AuditExporter) DefaultKey() string {
	return "audit/" + e.now().UTC().Format("20060102T150405Z") + ".ndjson"
}

// Export pages through every entry matching filter and streams them into one
// object under key. At most one page of entries is held in memory.
func (e *AuditExporter) Export(ctx context.Context, filter types.AuditFilter, key string) (ExportResult, error) {
	if key == "" {
		key = e.DefaultKey()
	}
	filter = trimFilter(filter)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pr, pw := io.Pipe()
	type written struct {
		count int
		err   error
	}
	done := make(chan written, 1)
	go func() {
		count, err := e.writeEntries(ctx, filter, pw)
		_ = pw.CloseWithError(err)
		done <- written{count: count, err: err}
	}()

	uploadErr := e.archive.Upload(ctx, storage.Object{
		Key:         key,
		Body:        pr,
		Size:        storage.SizeUnknown,
		ContentType: exportContentType,
		Metadata: map[string]string{
			"filter-user":   filter.Username,
			"filter-action": filter.Action,
			"filter-type":   filter.ResourceType,
		},
	})
	if uploadErr != nil {
		// Unblock the writer if the backend stopped reading early.
		_ = pr.CloseWithError(uploadErr)
		cancel()
	}
	res := <-done

	if uploadErr != nil {
		if res.err != nil && errors.Is(uploadErr, res.err) {
			return ExportResult{}, res.err
		}
		return ExportResult{}, uploadErr
	}
	if res.err != nil {
		return ExportResult{}, res.err
	}
	return ExportResult{Bucket: e.archive.Bucket(), Key: key, Entries: res.count}, nil
}

func (e *AuditExporter) writeEntries(ctx context.Context, filter types.AuditFilter, w io.Writer) (int, error) {
	enc := json.NewEncoder(w)
	count := 0

	for page := 1; ; page++ {
		p := pagination.Params{Page: page, PerPage: exportPageSize}
		if err := p.Validate(); err != nil {
			return count, err
		}

		entries, _, err := e.repo.List(ctx, filter, p.Offset(), p.Limit())
		if err != nil {
			return count, fmt.Errorf("read audit page %d: %w", page, err)
		}
		for _, entry := range entries {
			if err := enc.Encode(entry); err != nil {
				return count, fmt.Errorf("encode audit entry %d: %w", entry.ID, err)
			}
		}
		count += len(entries)
		if len(entries) < p.PerPage {
			return count, nil
		}
	}
}
