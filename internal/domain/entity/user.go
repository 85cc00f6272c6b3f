package entity

// Roles de usuario del backend.
const (
	RoleAdmin      = "admin"
	RoleOperator   = "operator"
	RoleAccountant = "accountant"
)

// User usuario autenticado en el backend.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// Credentials cuerpo de login.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
