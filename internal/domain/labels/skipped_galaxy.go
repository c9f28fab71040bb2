package labels

import "time"

// SkippedGalaxy records that a user set a galaxy aside. Unskipping deletes the row.
type SkippedGalaxy struct {
	ID          uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID      uint      `gorm:"not null;column:user_id;index:idx_skipped_user_galaxy,priority:1" json:"user_id"`
	GalaxyID    string    `gorm:"not null;column:galaxy_id;index:idx_skipped_user_galaxy,priority:2" json:"galaxy_id"`
	DateSkipped time.Time `gorm:"column:date_skipped" json:"date_skipped"`
	Comments    string    `gorm:"column:comments" json:"comments"`
}

func (SkippedGalaxy) TableName() string { return "skipped_galaxies" }
