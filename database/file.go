package database

import (
	"crypto/rand"
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	PermissionView     = "view"
	PermissionDownload = "download"
	PermissionEdit     = "edit"

	// CategoryUnanalyzed is the category of a file before any analysis ran,
	// and of a file whose content yielded no extractable text.
	CategoryUnanalyzed = "unknown"
	// CategoryFallback is assigned when every classification attempt failed.
	CategoryFallback = "Other"
)

var ErrShareLinkNotFound = errors.New("share link not found")

// TagList is stored as a JSON array in a single column so the tag set keeps
// its order and works the same on sqlite and postgres.
type TagList []string

func (t TagList) Value() (driver.Value, error) {
	if t == nil {
		t = TagList{}
	}
	return json.Marshal(t)
}

func (t *TagList) Scan(value interface{}) error {
	if value == nil {
		*t = TagList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	}
	return fmt.Errorf("unsupported tag column type %T", value)
}

type File struct {
	Model
	Filename      string  `json:"filename"`
	StoragePath   string  `json:"-" gorm:"unique"`
	MimeType      string  `json:"mimetype"`
	Size          int64   `json:"size"`
	ThumbnailPath *string `json:"thumbnail_path,omitempty"`
	TextExtract   *string `json:"-"`
	Tags          TagList `json:"tags" gorm:"type:text"`
	Category      string  `json:"category" gorm:"default:'unknown'"`
	Analyzing     bool    `json:"-" gorm:"default:false"`
	OwnerId       uint    `json:"-" gorm:"index"`
	Owner         User    `json:"-" gorm:"foreignKey:OwnerId;references:ID;constraint:OnUpdate:CASCADE,OnDelete:NO ACTION;"`
	FolderId      *uint   `json:"-" gorm:"index"`
	FolderUUID    *string `json:"folder_uuid,omitempty" gorm:"-"`
}

// AttachFolderUUID fills the transient FolderUUID field for API responses.
func (f *File) AttachFolderUUID(DB *gorm.DB) {
	if f.FolderId == nil {
		return
	}
	var folder Folder
	if err := DB.First(&folder, "id = ?", *f.FolderId).Error; err != nil {
		return
	}
	f.FolderUUID = &folder.UUID
}

type FilePermission struct {
	Model
	FileId     uint   `json:"-" gorm:"index;uniqueIndex:idx_file_permission_file_user"`
	File       File   `json:"-" gorm:"foreignKey:FileId;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserId     uint   `json:"-" gorm:"uniqueIndex:idx_file_permission_file_user"`
	User       User   `json:"user" gorm:"foreignKey:UserId;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Permission string `json:"permission"`
}

type ShareLink struct {
	Model
	Token     string     `json:"token" gorm:"unique"`
	FileId    uint       `json:"-" gorm:"index"`
	File      File       `json:"-" gorm:"foreignKey:FileId;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// GrantFilePermission upserts the permission level for a (file, user) pair.
// The unique index still covers soft-deleted rows, so the conflict update
// clears deleted_at as well: granting after a revoke revives the pair.
func GrantFilePermission(DB *gorm.DB, fileId uint, userId uint, permission string) error {
	perm := FilePermission{
		FileId:     fileId,
		UserId:     userId,
		Permission: permission,
	}
	return DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "file_id"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"permission": permission,
			"updated_at": time.Now(),
			"deleted_at": nil,
		}),
	}).Create(&perm).Error
}

func RevokeFilePermission(DB *gorm.DB, fileId uint, userId uint) error {
	return DB.Where("file_id = ? AND user_id = ?", fileId, userId).
		Delete(&FilePermission{}).Error
}

func ListFilePermissions(DB *gorm.DB, fileId uint) ([]FilePermission, error) {
	var permissions []FilePermission
	if err := DB.Preload("User").Where("file_id = ?", fileId).Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

// NewShareToken returns 16 random bytes, hex encoded.
func NewShareToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func CreateShareLink(DB *gorm.DB, fileId uint, expiresAt *time.Time) (*ShareLink, error) {
	token, err := NewShareToken()
	if err != nil {
		return nil, err
	}

	link := ShareLink{
		Token:     token,
		FileId:    fileId,
		ExpiresAt: expiresAt,
	}

	if r := DB.Create(&link); r.Error != nil {
		return nil, r.Error
	}

	return &link, nil
}

// ResolveShareLink returns the file behind a share token. Unknown and expired
// tokens are indistinguishable to the caller.
func ResolveShareLink(DB *gorm.DB, token string) (*File, error) {
	var link ShareLink
	if err := DB.Preload("File").First(&link, "token = ?", token).Error; err != nil {
		return nil, ErrShareLinkNotFound
	}

	if link.ExpiresAt != nil && time.Now().After(*link.ExpiresAt) {
		return nil, ErrShareLinkNotFound
	}

	return &link.File, nil
}

// DeleteFileRecords removes the given files together with their permissions
// and share links in one transaction. Blob cleanup is the caller's concern.
func DeleteFileRecords(DB *gorm.DB, fileIds []uint) (int64, error) {
	if len(fileIds) == 0 {
		return 0, nil
	}

	var count int64
	err := DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("file_id IN ?", fileIds).Delete(&FilePermission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("file_id IN ?", fileIds).Delete(&ShareLink{}).Error; err != nil {
			return err
		}
		r := tx.Where("id IN ?", fileIds).Delete(&File{})
		if r.Error != nil {
			return r.Error
		}
		count = r.RowsAffected
		return nil
	})
	return count, err
}
