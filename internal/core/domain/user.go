package domain

// AuthProvider identifies how a user account authenticates.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// User represents an authenticated owner of a set of books.
type User struct {
	UserID         string       `json:"userID"` // Primary Key (e.g., UUID)
	Name           string       `json:"name"`
	Email          string       `json:"email"` // Unique login identifier
	PasswordHash   string       `json:"-"`     // Never expose the hash in JSON responses; empty for OAuth accounts
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID string       `json:"-"` // Provider's stable subject identifier, empty for local accounts
	BusinessName   string       `json:"businessName"`
	BusinessState  string       `json:"businessState"` // GST registration state of the business
	AuditFields
}
