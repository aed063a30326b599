package users

// User is a registered account, keyed internally by an integer id and
// externally by the identity provider's subject.
type User struct {
	ID             int64   `json:"id"`
	Email          string  `json:"email"`
	Name           string  `json:"name"`
	PhotoURL       *string `json:"photoUrl"`
	ExternalAuthID string  `json:"firebaseId"`
}

// NewUser is the input to Repo.Create.
type NewUser struct {
	Email          string
	Name           string
	PhotoURL       *string
	ExternalAuthID string
}
