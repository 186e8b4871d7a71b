package scheduler

import (
	"backend/database"
	"gorm.io/gorm"
	"log"
	"time"
)

// Task represents a scheduled task
type Task struct {
	Name        string
	Description string
	Schedule    string
	Enabled     bool
	Handler     func() error
}

// DataMaintenanceTasks returns tasks related to data maintenance
func DataMaintenanceTasks(DB *gorm.DB) []Task {
	return []Task{
		{
			Name:        "prune_old_sessions",
			Description: "Remove expired sessions",
			Schedule:    "0 4 * * *", // 4 AM every day
			Enabled:     true,
			Handler: func() error {
				result := DB.Where("expiry < ?", time.Now()).Delete(&database.Session{})
				if result.Error != nil {
					return result.Error
				}
				log.Printf("Pruned %d expired sessions", result.RowsAffected)
				return nil
			},
		},
		{
			Name:        "prune_expired_share_links",
			Description: "Remove share links past their expiry",
			Schedule:    "30 4 * * *", // 4:30 AM every day
			Enabled:     true,
			Handler: func() error {
				result := DB.Where("expires_at IS NOT NULL AND expires_at < ?", time.Now()).Delete(&database.ShareLink{})
				if result.Error != nil {
					return result.Error
				}
				log.Printf("Pruned %d expired share links", result.RowsAffected)
				return nil
			},
		},
		{
			Name:        "reattach_orphaned_folders",
			Description: "Move folders whose parent row is gone back to the root",
			Schedule:    "0 5 * * *", // 5 AM every day
			Enabled:     true,
			Handler: func() error {
				// A crash mid folder-tree deletion can leave subfolders whose
				// parent row was already removed. Surface them at the root
				// instead of hiding them forever.
				result := DB.Model(&database.Folder{}).
					Where("parent_id IS NOT NULL AND parent_id NOT IN (?)",
						DB.Model(&database.Folder{}).Select("id")).
					Update("parent_id", nil)
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected > 0 {
					log.Printf("Reattached %d orphaned folders to the root", result.RowsAffected)
				}
				return nil
			},
		},
		{
			Name:        "release_stale_analysis_claims",
			Description: "Unstick files whose analysis run never finished",
			Schedule:    "*/30 * * * *", // Every 30 minutes
			Enabled:     true,
			Handler: func() error {
				// An analysis run holding its claim for over an hour is
				// assumed dead (crashed worker, lost connection).
				cutoff := time.Now().Add(-1 * time.Hour)
				result := DB.Model(&database.File{}).
					Where("analyzing = ? AND updated_at < ?", true, cutoff).
					Update("analyzing", false)
				if result.Error != nil {
					return result.Error
				}
				if result.RowsAffected > 0 {
					log.Printf("Released %d stale analysis claims", result.RowsAffected)
				}
				return nil
			},
		},
	}
}
