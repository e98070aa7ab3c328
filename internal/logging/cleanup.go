package logging

import (
	"context"
	"time"

	"github.com/woningspotters/woningspotters-api/internal/models"
	"gorm.io/gorm"
)

// Cleanup deletes system_logs older than retentionDays and returns the
// number of rows removed.
func Cleanup(ctx context.Context, db *gorm.DB, retentionDays int, now time.Time) (int64, error) {
	cutoff := now.AddDate(0, 0, -retentionDays)
	result := db.WithContext(ctx).Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
