package database

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return SetupDatabase("sqlite", filepath.Join(t.TempDir(), "test.db"), false)
}

func newTestUser(t *testing.T, DB *gorm.DB, name string) *User {
	t.Helper()
	user, err := RegisterUser(DB, name, fmt.Sprintf("%s@example.com", name), []byte("password"))
	require.NoError(t, err)
	return user
}

func newTestFile(t *testing.T, DB *gorm.DB, owner *User, filename string) *File {
	t.Helper()
	file := File{
		Filename:    filename,
		StoragePath: fmt.Sprintf("blob-%s-%s", owner.Name, filename),
		MimeType:    "text/plain",
		Size:        42,
		OwnerId:     owner.ID,
	}
	require.NoError(t, DB.Create(&file).Error)
	return &file
}

func TestSetupDatabaseMigratesAllTables(t *testing.T) {
	DB := newTestDB(t)

	for _, table := range Tabels {
		require.True(t, DB.Migrator().HasTable(table), "missing table for %T", table)
	}
}
