package anonym

import (
	"fmt"

	"github.com/ledantec/dbscrub/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// User holds the placeholder identity written over a scrubbed user row.
type User struct {
	ID              int
	DomainID        int
	FirstName       string
	LastName        string
	Email           string
	Login           string
	PlainPassword   string
	CryptedPassword string
	Company         string
}

// NewUser builds the placeholder identity for the user with the given id.
// The crypted password is a bcrypt hash of the plaintext placeholder; min
// cost keeps large runs fast, the credentials protect nothing real.
func NewUser(id, domainID int, tpl shared.UserTemplates) (*User, error) {
	first := orDefault(tpl.FirstName, "Firstname")
	last := orDefault(tpl.LastName, "Lastname")
	firstName := fmt.Sprintf("%s%d", first, id)
	lastName := fmt.Sprintf("%s%d", last, id)
	plain := orDefault(tpl.Password, "password")

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	return &User{
		ID:              id,
		DomainID:        domainID,
		FirstName:       firstName,
		LastName:        lastName,
		Email:           orDefault(tpl.Email, "anonymous@example.org"),
		Login:           firstName + "." + lastName,
		PlainPassword:   plain,
		CryptedPassword: string(hash),
		Company:         orDefault(tpl.Company, "ACME"),
	}, nil
}

// IsPlatformAdmin reports whether the user is the platform administrator,
// which keeps its identity during a run. User id 0 is the administrator.
func (u *User) IsPlatformAdmin() bool {
	return u.ID == 0
}
