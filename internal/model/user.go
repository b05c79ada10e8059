package model

import "time"

type User struct {
	ID           string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email        string     `gorm:"not null;uniqueIndex;size:255" json:"email"`
	PasswordHash *string    `gorm:"size:255" json:"-"`
	FullName     string     `gorm:"size:255" json:"fullName"`
	AvatarURL    string     `json:"avatarUrl"`
	Role         string     `gorm:"not null;default:'PUBLIC';size:30" json:"role"`
	AuthProvider string     `gorm:"not null;default:'EMAIL';size:20" json:"authProvider"`
	ProviderID   string     `gorm:"size:255" json:"-"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// Role constants, lowest to highest privilege
const (
	RolePublic          = "PUBLIC"
	RoleFieldResearcher = "FIELD_RESEARCHER"
	RoleEditor          = "EDITOR"
	RoleSeniorEditor    = "SENIOR_EDITOR"
	RoleEditorInChief   = "EDITOR_IN_CHIEF"
	RoleAdmin           = "ADMIN"
	RoleSuperAdmin      = "SUPER_ADMIN"
)

// Auth provider constants
const (
	ProviderEmail  = "EMAIL"
	ProviderGoogle = "GOOGLE"
)

func IsAdminRole(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

func IsEditorRole(role string) bool {
	return role == RoleEditor || role == RoleSeniorEditor || role == RoleEditorInChief
}
