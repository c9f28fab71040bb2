package user

// User is keyed by a normalized username; rows are created on first login and never deleted.
type User struct {
	ID       uint   `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Username string `gorm:"uniqueIndex;not null;column:username" json:"username"`
}

func (User) TableName() string { return "users" }
