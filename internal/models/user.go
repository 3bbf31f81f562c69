package models

import "time"

// User roles. The set is closed and enforced at the storage layer.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleAuthor = "author"
)

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleEditor, RoleAuthor:
		return true
	}
	return false
}

// User is an admin-console account. Email is unique. PhotoURL and Bio are
// optional and serialize as null when unset.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	PhotoURL  *string   `json:"photoUrl"`
	Bio       *string   `json:"bio"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserPatch carries a partial user update; nil fields keep the stored value.
type UserPatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Role     *string `json:"role"`
	PhotoURL *string `json:"photoUrl"`
	Bio      *string `json:"bio"`
}

// IsEmpty reports whether no field is set.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Role == nil &&
		p.PhotoURL == nil && p.Bio == nil
}
