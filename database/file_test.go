package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrantFilePermissionUpserts(t *testing.T) {
	DB := newTestDB(t)
	alice := newTestUser(t, DB, "alice")
	bob := newTestUser(t, DB, "bob")
	file := newTestFile(t, DB, alice, "notes.txt")

	require.NoError(t, GrantFilePermission(DB, file.ID, bob.ID, PermissionView))
	require.NoError(t, GrantFilePermission(DB, file.ID, bob.ID, PermissionEdit))

	var perms []FilePermission
	require.NoError(t, DB.Where("file_id = ?", file.ID).Find(&perms).Error)
	require.Len(t, perms, 1)
	assert.Equal(t, PermissionEdit, perms[0].Permission)
}

func TestGrantAfterRevokeRestoresAccess(t *testing.T) {
	DB := newTestDB(t)
	alice := newTestUser(t, DB, "alice")
	bob := newTestUser(t, DB, "bob")
	file := newTestFile(t, DB, alice, "notes.txt")

	require.NoError(t, GrantFilePermission(DB, file.ID, bob.ID, PermissionDownload))
	require.NoError(t, RevokeFilePermission(DB, file.ID, bob.ID))

	// re-granting must revive the soft-deleted pair, not update a dead row
	require.NoError(t, GrantFilePermission(DB, file.ID, bob.ID, PermissionDownload))

	ok, err := CanAccess(DB, file, bob, PermissionDownload)
	require.NoError(t, err)
	assert.True(t, ok)

	perms, err := ListFilePermissions(DB, file.ID)
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.Equal(t, PermissionDownload, perms[0].Permission)
}

func TestRevokeFilePermission(t *testing.T) {
	DB := newTestDB(t)
	alice := newTestUser(t, DB, "alice")
	bob := newTestUser(t, DB, "bob")
	file := newTestFile(t, DB, alice, "notes.txt")

	require.NoError(t, GrantFilePermission(DB, file.ID, bob.ID, PermissionDownload))
	require.NoError(t, RevokeFilePermission(DB, file.ID, bob.ID))

	// back to invisible
	_, err := CanAccess(DB, file, bob, PermissionDownload)
	assert.ErrorIs(t, err, ErrFileNotFound)

	// revoking again is a no-op
	require.NoError(t, RevokeFilePermission(DB, file.ID, bob.ID))
}

func TestListFilePermissions(t *testing.T) {
	DB := newTestDB(t)
	alice := newTestUser(t, DB, "alice")
	bob := newTestUser(t, DB, "bob")
	carol := newTestUser(t, DB, "carol")
	file := newTestFile(t, DB, alice, "notes.txt")

	require.NoError(t, GrantFilePermission(DB, file.ID, bob.ID, PermissionView))
	require.NoError(t, GrantFilePermission(DB, file.ID, carol.ID, PermissionEdit))

	perms, err := ListFilePermissions(DB, file.ID)
	require.NoError(t, err)
	require.Len(t, perms, 2)
	for _, perm := range perms {
		assert.NotEmpty(t, perm.User.Email, "user should be preloaded")
	}
}

func TestShareLinkRoundtrip(t *testing.T) {
	DB := newTestDB(t)
	alice := newTestUser(t, DB, "alice")
	file := newTestFile(t, DB, alice, "notes.txt")

	link, err := CreateShareLink(DB, file.ID, nil)
	require.NoError(t, err)
	assert.Len(t, link.Token, 32) // 16 random bytes, hex encoded

	got, err := ResolveShareLink(DB, link.Token)
	require.NoError(t, err)
	assert.Equal(t, file.ID, got.ID)

	_, err = ResolveShareLink(DB, "ffffffffffffffffffffffffffffffff")
	assert.ErrorIs(t, err, ErrShareLinkNotFound)
}

func TestShareLinkExpiry(t *testing.T) {
	DB := newTestDB(t)
	alice := newTestUser(t, DB, "alice")
	file := newTestFile(t, DB, alice, "notes.txt")

	past := time.Now().Add(-time.Minute)
	link, err := CreateShareLink(DB, file.ID, &past)
	require.NoError(t, err)

	_, err = ResolveShareLink(DB, link.Token)
	assert.ErrorIs(t, err, ErrShareLinkNotFound)

	future := time.Now().Add(time.Hour)
	link, err = CreateShareLink(DB, file.ID, &future)
	require.NoError(t, err)

	_, err = ResolveShareLink(DB, link.Token)
	assert.NoError(t, err)
}

func TestDeleteFileRecords(t *testing.T) {
	DB := newTestDB(t)
	alice := newTestUser(t, DB, "alice")
	bob := newTestUser(t, DB, "bob")
	keep := newTestFile(t, DB, alice, "keep.txt")
	gone := newTestFile(t, DB, alice, "gone.txt")

	require.NoError(t, GrantFilePermission(DB, gone.ID, bob.ID, PermissionView))
	_, err := CreateShareLink(DB, gone.ID, nil)
	require.NoError(t, err)

	count, err := DeleteFileRecords(DB, []uint{gone.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var permCount, linkCount int64
	DB.Model(&FilePermission{}).Where("file_id = ?", gone.ID).Count(&permCount)
	DB.Model(&ShareLink{}).Where("file_id = ?", gone.ID).Count(&linkCount)
	assert.Equal(t, int64(0), permCount)
	assert.Equal(t, int64(0), linkCount)

	// the untouched file survives
	var file File
	assert.NoError(t, DB.First(&file, "id = ?", keep.ID).Error)

	count, err = DeleteFileRecords(DB, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestTagListColumnRoundtrip(t *testing.T) {
	DB := newTestDB(t)
	alice := newTestUser(t, DB, "alice")
	file := newTestFile(t, DB, alice, "notes.txt")

	file.Tags = TagList{"invoice", "2024"}
	require.NoError(t, DB.Save(file).Error)

	var got File
	require.NoError(t, DB.First(&got, "id = ?", file.ID).Error)
	assert.Equal(t, TagList{"invoice", "2024"}, got.Tags)
}
