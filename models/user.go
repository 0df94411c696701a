package models

import "time"

// User is an account. The role is fixed at sign-up.
type User struct {
	ID           string    `json:"id" bson:"-" firestore:"-"`
	Email        string    `json:"email" bson:"email" firestore:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash" firestore:"passwordHash"`
	Role         Role      `json:"role" bson:"role" firestore:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt" firestore:"createdAt"`
}

// UserDetails is the role-specific profile stored next to the user document.
type UserDetails struct {
	FirstName   string `json:"firstName" bson:"firstName" firestore:"firstName"`
	LastName    string `json:"lastName" bson:"lastName" firestore:"lastName"`
	PhoneNumber string `json:"phoneNumber" bson:"phoneNumber" firestore:"phoneNumber"`
}

// EmailClaim reserves an email address for a single user.
type EmailClaim struct {
	UserID string `json:"userId" bson:"userId" firestore:"userId"`
}

// SignUpRequest is the payload for account creation.
type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	UserID      string      `json:"userId"`
	Email       string      `json:"email"`
	Role        Role        `json:"role"`
	Details     UserDetails `json:"details"`
	AccessToken string      `json:"accessToken"`
}

// RevokedToken records a signed-out token. Entries are never pruned.
type RevokedToken struct {
	Token     string    `json:"token" bson:"token" firestore:"token"`
	RevokedAt time.Time `json:"revokedAt" bson:"revokedAt" firestore:"revokedAt"`
}
