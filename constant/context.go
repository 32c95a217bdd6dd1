package constant

type ContextKey string

const (
	UserIDKey   ContextKey = "user_id"
	UserRoleKey ContextKey = "user_role"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)
