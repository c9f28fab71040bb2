package labels

import "time"

// SkyBkgMasked is the only background mode the classifier offers.
const SkyBkgMasked = "masked"

// Classification is a user's label for one galaxy. There is at most one row
// per (user_id, galaxy_id); writers enforce it by looking up before writing.
type Classification struct {
	ID             uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	UserID         uint      `gorm:"not null;column:user_id;index:idx_classification_user_galaxy,priority:1" json:"user_id"`
	GalaxyID       string    `gorm:"not null;column:galaxy_id;index:idx_classification_user_galaxy,priority:2" json:"galaxy_id"`
	LSBClass       int       `gorm:"not null;column:lsb_class" json:"lsb_class"`
	Morphology     int       `gorm:"not null;column:morphology" json:"morphology"`
	Comments       string    `gorm:"column:comments" json:"comments"`
	SkyBkg         string    `gorm:"column:sky_bkg" json:"sky_bkg"`
	DateClassified time.Time `gorm:"column:date_classified;index" json:"date_classified"`
	AwesomeFlag    bool      `gorm:"column:awesome_flag;default:false" json:"awesome_flag"`
	ValidRedshift  bool      `gorm:"column:valid_redshift;default:false" json:"valid_redshift"`
}

func (Classification) TableName() string { return "classifications" }
