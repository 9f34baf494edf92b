package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleClerk  = "clerk"
	RolePicker = "picker"
	RoleSales  = "sales"
)

var Roles = []string{RoleAdmin, RoleClerk, RolePicker, RoleSales}

// SelfSignupRoles are the roles an anonymous caller may sign up with.
// Admins grant the others.
var SelfSignupRoles = []string{RolePicker, RoleSales}

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}

	return false
}
