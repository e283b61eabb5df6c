package model

// User represents an admin account as stored in the `users` table.
// Only admins have accounts; participants never log in.  The json
// tags are omitted because these structs are used internally by the
// repository layer; handlers never return user records.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
type User struct {
	ID           int    // users.id
	Username     string // users.username
	PasswordHash string // users.password_hash
}
