package models

// User is a row of the users collection. Password is never serialised to JSON.
type User struct {
	Email    string `json:"email" bson:"email"`
	Password string `json:"-" bson:"password"`
	Name     string `json:"name,omitempty" bson:"name,omitempty"`
}

// LoginRequest is the body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required"`
	Password string `json:"password" binding:"required" validate:"required"`
}
