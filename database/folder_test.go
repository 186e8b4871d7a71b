package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateFolder(t *testing.T) {
	DB := newTestDB(t)
	alice := newTestUser(t, DB, "alice")

	folder, err := CreateFolder(DB, alice, "Documents", "")
	require.NoError(t, err)
	assert.NotEmpty(t, folder.UUID)
	assert.Nil(t, folder.ParentId)

	child, err := CreateFolder(DB, alice, "Invoices", folder.UUID)
	require.NoError(t, err)
	require.NotNil(t, child.ParentId)
	assert.Equal(t, folder.ID, *child.ParentId)
}

func TestCreateFolderEmptyName(t *testing.T) {
	DB := newTestDB(t)
	alice := newTestUser(t, DB, "alice")

	_, err := CreateFolder(DB, alice, "", "")
	assert.ErrorIs(t, err, ErrFolderName)
}

func TestCreateFolderForeignParent(t *testing.T) {
	DB := newTestDB(t)
	alice := newTestUser(t, DB, "alice")
	bob := newTestUser(t, DB, "bob")

	bobsFolder, err := CreateFolder(DB, bob, "Private", "")
	require.NoError(t, err)

	// another user's folder is as good as missing
	_, err = CreateFolder(DB, alice, "Sneaky", bobsFolder.UUID)
	assert.ErrorIs(t, err, ErrFolderNotFound)
}

func TestListFoldersAttachesFiles(t *testing.T) {
	DB := newTestDB(t)
	alice := newTestUser(t, DB, "alice")
	bob := newTestUser(t, DB, "bob")

	folder, err := CreateFolder(DB, alice, "Documents", "")
	require.NoError(t, err)
	file := newTestFile(t, DB, alice, "notes.txt")
	require.NoError(t, DB.Model(file).Update("folder_id", folder.ID).Error)

	_, err = CreateFolder(DB, bob, "Bobs", "")
	require.NoError(t, err)

	folders, err := ListFolders(DB, alice)
	require.NoError(t, err)
	require.Len(t, folders, 1)
	require.Len(t, folders[0].Files, 1)
	assert.Equal(t, "notes.txt", folders[0].Files[0].Filename)
}

func TestIsAncestor(t *testing.T) {
	DB := newTestDB(t)
	alice := newTestUser(t, DB, "alice")

	root, err := CreateFolder(DB, alice, "root", "")
	require.NoError(t, err)
	mid, err := CreateFolder(DB, alice, "mid", root.UUID)
	require.NoError(t, err)
	leaf, err := CreateFolder(DB, alice, "leaf", mid.UUID)
	require.NoError(t, err)

	ok, err := IsAncestor(DB, leaf, root.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsAncestor(DB, root, leaf.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMoveFolder(t *testing.T) {
	DB := newTestDB(t)
	alice := newTestUser(t, DB, "alice")
	bob := newTestUser(t, DB, "bob")

	root, err := CreateFolder(DB, alice, "root", "")
	require.NoError(t, err)
	mid, err := CreateFolder(DB, alice, "mid", root.UUID)
	require.NoError(t, err)
	leaf, err := CreateFolder(DB, alice, "leaf", mid.UUID)
	require.NoError(t, err)

	// re-parent leaf directly under root
	require.NoError(t, MoveFolder(DB, alice, leaf, root.UUID))
	moved, err := GetOwnedFolder(DB, leaf.UUID, alice)
	require.NoError(t, err)
	require.NotNil(t, moved.ParentId)
	assert.Equal(t, root.ID, *moved.ParentId)

	// empty parent moves back to the root
	require.NoError(t, MoveFolder(DB, alice, moved, ""))
	moved, err = GetOwnedFolder(DB, leaf.UUID, alice)
	require.NoError(t, err)
	assert.Nil(t, moved.ParentId)

	// a folder cannot become its own parent or land in its own subtree
	assert.ErrorIs(t, MoveFolder(DB, alice, root, root.UUID), ErrFolderCycle)
	assert.ErrorIs(t, MoveFolder(DB, alice, root, mid.UUID), ErrFolderCycle)

	bobsFolder, err := CreateFolder(DB, bob, "Private", "")
	require.NoError(t, err)
	assert.ErrorIs(t, MoveFolder(DB, alice, root, bobsFolder.UUID), ErrFolderNotFound)
}

func TestDeleteFolderTree(t *testing.T) {
	DB := newTestDB(t)
	alice := newTestUser(t, DB, "alice")
	bob := newTestUser(t, DB, "bob")

	root, err := CreateFolder(DB, alice, "root", "")
	require.NoError(t, err)
	sub, err := CreateFolder(DB, alice, "sub", root.UUID)
	require.NoError(t, err)

	rootFile := newTestFile(t, DB, alice, "root.txt")
	require.NoError(t, DB.Model(rootFile).Update("folder_id", root.ID).Error)
	subFile := newTestFile(t, DB, alice, "sub.txt")
	require.NoError(t, DB.Model(subFile).Update("folder_id", sub.ID).Error)
	loose := newTestFile(t, DB, alice, "loose.txt")

	require.NoError(t, GrantFilePermission(DB, subFile.ID, bob.ID, PermissionView))
	_, err = CreateShareLink(DB, subFile.ID, nil)
	require.NoError(t, err)

	var purged []string
	err = DB.Transaction(func(tx *gorm.DB) error {
		return DeleteFolderTree(tx, alice, root, func(file File) {
			purged = append(purged, file.Filename)
		})
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"root.txt", "sub.txt"}, purged)

	var folderCount, fileCount, permCount, linkCount int64
	DB.Model(&Folder{}).Where("owner_id = ?", alice.ID).Count(&folderCount)
	DB.Model(&File{}).Where("owner_id = ?", alice.ID).Count(&fileCount)
	DB.Model(&FilePermission{}).Count(&permCount)
	DB.Model(&ShareLink{}).Count(&linkCount)
	assert.Equal(t, int64(0), folderCount)
	assert.Equal(t, int64(1), fileCount, "files outside the tree survive")
	assert.Equal(t, int64(0), permCount)
	assert.Equal(t, int64(0), linkCount)

	var file File
	assert.NoError(t, DB.First(&file, "id = ?", loose.ID).Error)
}
