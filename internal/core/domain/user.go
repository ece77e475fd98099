package domain

import "time"

// Avatar points to a user's profile picture.
type Avatar struct {
	Title    string `json:"title,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// User models an account on the press-release platform.
//
// ID is serialized as "_id" because existing clients address users that way.
type User struct {
	ID                  string    `json:"_id"`
	Username            string    `json:"username"`
	Email               string    `json:"email"`
	PasswordHash        string    `json:"-"`
	Role                Role      `json:"role"`
	Avatar              *Avatar   `json:"avatar,omitempty"`
	PhoneNumber         string    `json:"phoneNumber,omitempty"`
	IsSubscriptionValid bool      `json:"isSubscriptionValid"`
	IsVerified          bool      `json:"isVerified"`
	AuthCode            string    `json:"-"`
	City                string    `json:"city,omitempty"`
	Country             string    `json:"country,omitempty"`
	Region              string    `json:"region,omitempty"`
	Language            string    `json:"language,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// NewUser builds a user with the default profile flags. An empty role falls
// back to DefaultRole.
func NewUser(username, email, passwordHash string, role Role, now time.Time) *User {
	if role == "" {
		role = DefaultRole
	}
	return &User{
		Username:            username,
		Email:               email,
		PasswordHash:        passwordHash,
		Role:                role,
		IsSubscriptionValid: true,
		IsVerified:          false,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}

// IsAdmin reports whether the user holds the Admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Session is the result of a successful signup or login: the user plus the
// signed token that proves their identity until ExpiresAt.
type Session struct {
	User      *User
	Token     string
	ExpiresAt time.Time
}
