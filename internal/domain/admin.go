package domain

// Admin is a back-office operator record. PK realm: ADMIN, SK: email.
// Admins are provisioned out of band; this API only authenticates them.
type Admin struct {
	Email        string `json:"email" dynamodbav:"email"`
	PasswordHash string `json:"-" dynamodbav:"password"`
	Role         string `json:"role" dynamodbav:"role"`
}

// RoleAdmin gates the catalog mutation routes.
const RoleAdmin = "admin"

// AdminLoginRequest is the boundary input for admin login.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
