package domain

import "fmt"

type AccountID string

type AuthMethod string

const (
	AuthMethodToken AuthMethod = "token"
)

// Account is one controllable participant on the chat platform: roster
// metadata plus a reference to the credential token in the secret store.
// Accounts are owned by the caller and treated as immutable for the
// duration of an operation.
type Account struct {
	ID    AccountID
	Name  string
	Email string
	User  UserRef
	Auth  Auth
}

type Auth struct {
	Method    AuthMethod
	SecretRef string
}

// UserRef identifies a platform user. Username and discriminator together
// form the human-readable tag used in log lines.
type UserRef struct {
	ID            string
	Username      string
	Discriminator string
}

func (u UserRef) Tag() string {
	if u.Discriminator == "" {
		return u.Username
	}

	return fmt.Sprintf("%s#%s", u.Username, u.Discriminator)
}

// Profile is the self-lookup payload returned by the platform. A successful
// fetch is what "good standing" means; the fields beyond User are
// informational.
type Profile struct {
	User    UserRef
	Bio     string
	Premium bool
}
