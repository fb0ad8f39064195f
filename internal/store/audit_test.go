package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/janus/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var auditColumnNames = []string{
	"id", "user_id", "username", "action", "resource_type", "resource_id",
	"details", "ip_address", "user_agent", "created_at",
}

func TestAuditListSharesPredicate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAuditRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(1) FROM audit_log WHERE (username = $1 AND action = $2)")).
		WithArgs("alice", "LOGIN").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("FROM audit_log WHERE (username = $1 AND action = $2) ORDER BY created_at DESC, id DESC LIMIT 20 OFFSET 0")).
		WithArgs("alice", "LOGIN").
		WillReturnRows(sqlmock.NewRows(auditColumnNames).
			AddRow(2, 1, "alice", "LOGIN", "user", 1, nil, "10.0.0.1", "curl", now).
			AddRow(1, 1, "alice", "LOGIN", "user", 1, nil, "10.0.0.1", "curl", now.Add(-time.Hour)))

	entries, total, err := repo.List(context.Background(), types.AuditFilter{Username: "alice", Action: "LOGIN"}, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "LOGIN", e.Action)
	}
	assert.Equal(t, 2, entries[0].ID)
}

func TestAuditListWithoutFilters(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAuditRepository(db)

	mock.ExpectQuery(`^SELECT COUNT\(1\) FROM audit_log$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`FROM audit_log ORDER BY created_at DESC, id DESC LIMIT 10 OFFSET 30$`).
		WillReturnRows(sqlmock.NewRows(auditColumnNames))

	entries, total, err := repo.List(context.Background(), types.AuditFilter{}, 30, 10)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, entries)
}

func TestAuditPredicate(t *testing.T) {
	assert.Empty(t, auditPredicate(types.AuditFilter{}))
	assert.Len(t, auditPredicate(types.AuditFilter{ResourceType: "vendor"}), 1)
	assert.Len(t, auditPredicate(types.AuditFilter{Username: "a", Action: "b", ResourceType: "c"}), 3)
}

func TestAuditCreate(t *testing.T) {
	db, mock := newMock(t)
	repo := NewAuditRepository(db)
	now := time.Now()
	userID, resourceID := 1, 12
	details := "fields: email"

	mock.ExpectQuery("INSERT INTO audit_log").
		WithArgs(userID, "alice", "UPDATE", "personnel", resourceID, details, nil, nil).
		WillReturnRows(sqlmock.NewRows(auditColumnNames).
			AddRow(40, userID, "alice", "UPDATE", "personnel", resourceID, details, nil, nil, now))

	entry, err := repo.Create(context.Background(), types.AuditEntryInput{
		UserID:       &userID,
		Username:     "alice",
		Action:       "UPDATE",
		ResourceType: "personnel",
		ResourceID:   &resourceID,
		Details:      &details,
	})
	require.NoError(t, err)
	assert.Equal(t, 40, entry.ID)
	require.NotNil(t, entry.ResourceID)
	assert.Equal(t, 12, *entry.ResourceID)
	assert.Nil(t, entry.IPAddress)
}
