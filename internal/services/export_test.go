package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/janus/apiserver/internal/storage"
	"github.com/janus/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportWritesOneLinePerEntryAcrossPages(t *testing.T) {
	repo := &fakeAuditRepo{}
	for i := 0; i < 250; i++ {
		seedAudit(repo, "LOGIN")
	}
	seedAudit(repo, "CREATE")
	archive := &fakeArchive{}
	exporter := NewAuditExporter(repo, archive)

	result, err := exporter.Export(context.Background(), types.AuditFilter{Action: "LOGIN"}, "audit/test.ndjson")
	require.NoError(t, err)
	assert.Equal(t, 250, result.Entries)
	assert.Equal(t, "audit/test.ndjson", result.Key)
	assert.Equal(t, "janus-audit", result.Bucket)
	assert.Len(t, repo.listCalls, 3)

	require.Len(t, archive.objects, 1)
	obj := archive.objects[0]
	assert.Equal(t, "application/x-ndjson", obj.ContentType)
	assert.Equal(t, "LOGIN", obj.Metadata["filter-action"])
	assert.Equal(t, storage.SizeUnknown, obj.Size)

	lines := 0
	scanner := bufio.NewScanner(bytes.NewReader(archive.bodies[0]))
	for scanner.Scan() {
		var entry types.AuditEntry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		assert.Equal(t, "LOGIN", entry.Action)
		lines++
	}
	assert.Equal(t, 250, lines)
}

func TestExportEmptyTrailStillUploads(t *testing.T) {
	archive := &fakeArchive{}
	exporter := NewAuditExporter(&fakeAuditRepo{}, archive)
	exporter.now = func() time.Time { return time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC) }

	result, err := exporter.Export(context.Background(), types.AuditFilter{}, "")
	require.NoError(t, err)
	assert.Zero(t, result.Entries)
	assert.Equal(t, "audit/20260301T123000Z.ndjson", result.Key)
	require.Len(t, archive.objects, 1)
	assert.Empty(t, archive.bodies[0])
}

func TestExportUploadFailure(t *testing.T) {
	exporter := NewAuditExporter(&fakeAuditRepo{}, &fakeArchive{err: errBoom})

	_, err := exporter.Export(context.Background(), types.AuditFilter{}, "k")
	assert.ErrorIs(t, err, errBoom)
}

func TestExportReadFailureAbortsUpload(t *testing.T) {
	repo := &fakeAuditRepo{failListOn: 2}
	for i := 0; i < 150; i++ {
		seedAudit(repo, "LOGIN")
	}
	archive := &fakeArchive{}

	_, err := NewAuditExporter(repo, archive).Export(context.Background(), types.AuditFilter{}, "k")
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorContains(t, err, "read audit page 2")
	assert.Empty(t, archive.objects)
}

func TestExportTrimsFilter(t *testing.T) {
	repo := &fakeAuditRepo{}
	seedAudit(repo, "LOGIN")
	seedAudit(repo, "CREATE")
	archive := &fakeArchive{}

	result, err := NewAuditExporter(repo, archive).Export(context.Background(), types.AuditFilter{Action: " LOGIN\t"}, "k")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Entries)
	require.NotEmpty(t, repo.listCalls)
	assert.Equal(t, "LOGIN", repo.listCalls[0].Action)
	assert.Equal(t, "LOGIN", archive.objects[0].Metadata["filter-action"])
}
