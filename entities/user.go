package entities

// User rows are written by the authentication service. The catalog only
// reads them to resolve authors and subscription targets.
type User struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Username  string `gorm:"size:150;not null;uniqueIndex" json:"username"`
	FirstName string `gorm:"size:150" json:"first_name"`
	LastName  string `gorm:"size:150" json:"last_name"`

	Timestamp
}
