package entity

import "time"

// User mirrors an account at the external identity provider. The provider id
// is the primary key; profile attributes are refreshed from verified token
// claims on authenticated requests. Role is the single source of truth for
// authorization decisions.
type User struct {
	ID        string    // External identity-provider user id. Immutable.
	Email     string    // Synced from the identity provider.
	Name      string    // Synced from the identity provider.
	Avatar    string    // Synced from the identity provider.
	Role      Role      // Defaults to RoleUser.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
