package model

import "time"

// Roles held by a user. WARGA residents create submissions; ADMIN_RW reviews
// them and manages announcements.
const (
	RoleWarga   = "WARGA"
	RoleAdminRW = "ADMIN_RW"
)

// User maps to the users table.
type User struct {
	UserID       string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string    `gorm:"type:varchar(20);not null;default:'WARGA'"      json:"role"`
	FullName     string    `gorm:"type:varchar(255)"                              json:"full_name"`
	PhoneNumber  string    `gorm:"type:varchar(50)"                               json:"phone_number"`
	NIK          string    `gorm:"type:varchar(16)"                               json:"nik"`
	KKNumber     string    `gorm:"type:varchar(16)"                               json:"kk_number"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName sets the table name.
func (User) TableName() string { return "users" }

// ProfileComplete reports whether every profile field required before
// creating a submission is present.
func (u *User) ProfileComplete() bool {
	return u.FullName != "" && u.PhoneNumber != "" && u.NIK != "" && u.KKNumber != ""
}
