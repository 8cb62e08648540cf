package models

import "time"

// Rôles autorisés, aucune autre valeur n'est acceptée à la frontière HTTP.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole vérifie qu'un rôle appartient à l'énumération fermée {user, admin}.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	FullName  *string   `gorm:"size:100" json:"full_name"`
	Role      string    `gorm:"size:20;not null;default:user" json:"role"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}
