package models

import "time"

// User is a stored operator account. Passwords are kept in plain text on
// purpose: the system is a single-device offline tool and credential
// hardening is out of scope.
type User struct {
	ID       int64  `bson:"id" json:"id"`
	Username string `bson:"username" json:"username"`
	Password string `bson:"password" json:"password"`
	Role     string `bson:"role" json:"role"`
	Name     string `bson:"name" json:"name"`
}

// Session is the single currently-authenticated user. Its presence in the
// session slot means "logged in".
type Session struct {
	Token      string    `bson:"token" json:"token"`
	User       User      `bson:"user" json:"user"`
	LoggedInAt time.Time `bson:"logged_in_at" json:"loggedInAt"`
}
