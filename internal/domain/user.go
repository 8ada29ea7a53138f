package domain

// User represents an application account.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Phone        string
	Admin        bool
}

// Session carries the identity of an authenticated caller. It is passed
// explicitly into every operation; nothing reads ambient session state.
type Session struct {
	Username string
	Admin    bool
}
