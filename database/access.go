package database

import (
	"errors"

	"gorm.io/gorm"
)

// ErrFileNotFound covers both "no such file" and "file invisible to the
// caller". Users holding no grant on a file never learn it exists.
var ErrFileNotFound = errors.New("file not found")

// ErrForbidden is returned only when the caller provably knows the file
// exists (holds some grant) but the grant does not satisfy the requirement.
var ErrForbidden = errors.New("access denied")

// CanAccess reports whether user may act on file with one of the allowed
// permission levels. The owner passes every check. Levels are not ordered;
// each endpoint lists the levels it accepts.
func CanAccess(DB *gorm.DB, file *File, user *User, allowed ...string) (bool, error) {
	if file.OwnerId == user.ID {
		return true, nil
	}

	var perm FilePermission
	if err := DB.First(&perm, "file_id = ? AND user_id = ?", file.ID, user.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrFileNotFound
		}
		return false, err
	}

	for _, level := range allowed {
		if perm.Permission == level {
			return true, nil
		}
	}

	return false, ErrForbidden
}

// GetFileForUser loads a file by UUID and checks access in one step.
// Passing no allowed levels restricts the operation to the owner.
func GetFileForUser(DB *gorm.DB, fileUUID string, user *User, allowed ...string) (*File, error) {
	var file File
	if err := DB.First(&file, "uuid = ?", fileUUID).Error; err != nil {
		return nil, ErrFileNotFound
	}

	if _, err := CanAccess(DB, &file, user, allowed...); err != nil {
		return nil, err
	}

	return &file, nil
}
