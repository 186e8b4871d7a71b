package database

import (
	"errors"

	"gorm.io/gorm"
)

var ErrFolderNotFound = errors.New("folder not found")
var ErrFolderName = errors.New("folder name is required")
var ErrFolderCycle = errors.New("folder cannot be moved into its own subtree")

type Folder struct {
	Model
	Name     string  `json:"name"`
	OwnerId  uint    `json:"-" gorm:"index"`
	Owner    User    `json:"-" gorm:"foreignKey:OwnerId;references:ID;constraint:OnUpdate:CASCADE,OnDelete:NO ACTION;"`
	ParentId *uint   `json:"-" gorm:"index"`
	Files    []File  `json:"files" gorm:"foreignKey:FolderId"`
}

// CreateFolder creates a folder for owner. A parent, when given, must be a
// folder owned by the same user.
func CreateFolder(DB *gorm.DB, owner *User, name string, parentUUID string) (*Folder, error) {
	if name == "" {
		return nil, ErrFolderName
	}

	var parentId *uint
	if parentUUID != "" {
		parent, err := GetOwnedFolder(DB, parentUUID, owner)
		if err != nil {
			return nil, err
		}
		parentId = &parent.ID
	}

	folder := Folder{
		Name:     name,
		OwnerId:  owner.ID,
		ParentId: parentId,
	}

	if r := DB.Create(&folder); r.Error != nil {
		return nil, r.Error
	}

	return &folder, nil
}

// ListFolders returns all folders of owner with their files eagerly attached.
func ListFolders(DB *gorm.DB, owner *User) ([]Folder, error) {
	var folders []Folder
	if err := DB.Preload("Files").Where("owner_id = ?", owner.ID).Find(&folders).Error; err != nil {
		return nil, err
	}
	return folders, nil
}

func GetOwnedFolder(DB *gorm.DB, folderUUID string, owner *User) (*Folder, error) {
	var folder Folder
	if err := DB.First(&folder, "uuid = ? AND owner_id = ?", folderUUID, owner.ID).Error; err != nil {
		return nil, ErrFolderNotFound
	}
	return &folder, nil
}

// IsAncestor walks the parent chain of folder and reports whether candidate
// appears in it. Used to refuse edges that would close a cycle.
func IsAncestor(DB *gorm.DB, folder *Folder, candidateId uint) (bool, error) {
	parentId := folder.ParentId
	for parentId != nil {
		if *parentId == candidateId {
			return true, nil
		}
		var parent Folder
		if err := DB.First(&parent, "id = ?", *parentId).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return false, nil
			}
			return false, err
		}
		parentId = parent.ParentId
	}
	return false, nil
}

// MoveFolder re-parents folder under the folder named by newParentUUID, or
// back to the root when it is empty. The new parent must be owned by the same
// user and must not be the folder itself or one of its descendants.
func MoveFolder(DB *gorm.DB, owner *User, folder *Folder, newParentUUID string) error {
	if newParentUUID == "" {
		return DB.Model(folder).Update("parent_id", nil).Error
	}

	parent, err := GetOwnedFolder(DB, newParentUUID, owner)
	if err != nil {
		return err
	}

	if parent.ID == folder.ID {
		return ErrFolderCycle
	}
	cyclic, err := IsAncestor(DB, parent, folder.ID)
	if err != nil {
		return err
	}
	if cyclic {
		return ErrFolderCycle
	}

	return DB.Model(folder).Update("parent_id", parent.ID).Error
}

// DeleteFolderTree removes a folder with every descendant file and subfolder.
// Files of a folder are purged before its subfolders, and each level's rows
// (file rows, permissions, share links, then the folder row itself) commit in
// one transaction. purge is called for every deleted file so the caller can
// drop the backing blob; blob failures must not abort the deletion.
//
// The tree walk itself is only as atomic as the DB handle passed in: callers
// wanting whole-subtree atomicity wrap the call in DB.Transaction. With a
// plain handle a crash mid-recursion can leave subfolders whose parent row is
// already gone; the scheduler's orphan sweep picks those up.
func DeleteFolderTree(DB *gorm.DB, owner *User, folder *Folder, purge func(File)) error {
	var subfolders []Folder
	if err := DB.Where("parent_id = ? AND owner_id = ?", folder.ID, owner.ID).Find(&subfolders).Error; err != nil {
		return err
	}

	var files []File
	if err := DB.Where("folder_id = ? AND owner_id = ?", folder.ID, owner.ID).Find(&files).Error; err != nil {
		return err
	}

	for _, file := range files {
		purge(file)
	}

	err := DB.Transaction(func(tx *gorm.DB) error {
		fileIds := make([]uint, 0, len(files))
		for _, file := range files {
			fileIds = append(fileIds, file.ID)
		}
		if len(fileIds) > 0 {
			if err := tx.Where("file_id IN ?", fileIds).Delete(&FilePermission{}).Error; err != nil {
				return err
			}
			if err := tx.Where("file_id IN ?", fileIds).Delete(&ShareLink{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", fileIds).Delete(&File{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, subfolder := range subfolders {
		if err := DeleteFolderTree(DB, owner, &subfolder, purge); err != nil {
			return err
		}
	}

	return DB.Delete(folder).Error
}
