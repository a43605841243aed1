package entity

import "strings"

type User struct {
	ID             int     `json:"id"`
	Name           string  `json:"name,omitempty"`
	FirstName      string  `json:"first_name,omitempty"`
	LastName       string  `json:"last_name,omitempty"`
	Email          string  `json:"email"`
	Role           Role    `json:"role"`
	NIS            *string `json:"nis,omitempty"`
	Grade          *int    `json:"grade,omitempty"`
	ClassID        *int    `json:"class_id,omitempty"`
	ClassName      *string `json:"class_name,omitempty"`
	RegionID       *int    `json:"region_id,omitempty"`
	Status         string  `json:"status,omitempty"`
	ProfilePicture *string `json:"profile_picture,omitempty"`
}

// DisplayName prefers the full name and falls back to first + last, then email.
func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	return u.Email
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasAnyRole reports whether the user holds one of roles. A nil user holds none.
func HasAnyRole(u *User, roles ...Role) bool {
	if u == nil {
		return false
	}
	for _, role := range roles {
		if u.Role == role {
			return true
		}
	}
	return false
}

type UserFilter struct {
	Role     Role   `form:"role"`
	RegionID *int   `form:"region_id"`
	ClassID  *int   `form:"class_id"`
	Search   string `form:"search"`
	Skip     int    `form:"skip"`
	Limit    int    `form:"limit"`
}

// Profile carries the personal fields shared by students and teachers.
type Profile struct {
	Gender     string `json:"gender,omitempty"`
	DOB        Date   `json:"dob"`
	BirthPlace string `json:"birth_place,omitempty"`
	Religion   string `json:"religion,omitempty"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

type Student struct {
	User
	Profile
	ParentName *string `json:"parent_name,omitempty"`
}

type Teacher struct {
	User
	Profile
}
