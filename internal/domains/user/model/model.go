package model

const (
	TableName  = "users"
	EntityName = "user"

	FieldID       = "id"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldName     = "name"
	FieldRole     = "role"
	FieldImage    = "image"
)

const (
	AccountTableName = "accounts"

	ProviderGoogle = "google"
)

// User is an account holder. Password is null for users provisioned through
// an OAuth provider; they can only sign in through that provider.
type User struct {
	ID       int64   `db:"id"`
	Email    string  `db:"email"`
	Password *string `db:"password"`
	Name     *string `db:"name"`
	Role     string  `db:"role"`
	Image    *string `db:"image"`
}

// Account links a user to an external identity provider.
type Account struct {
	ID                int64  `db:"id"`
	UserID            int64  `db:"user_id"`
	Provider          string `db:"provider"`
	ProviderAccountID string `db:"provider_account_id"`
}
