package domain

import (
	"net/mail"
	"strings"
	"time"

	domerr "github.com/opst/mealplanner/pkg/domain/errors"
)

type User struct {
	Id        int64
	Name      string
	Email     string
	Admin     bool
	CreatedAt time.Time
}

func (u User) Equal(o User) bool {
	return u.Id == o.Id &&
		u.Name == o.Name &&
		u.Email == o.Email &&
		u.Admin == o.Admin &&
		u.CreatedAt.Equal(o.CreatedAt)
}

// Owner returns a scope of records owned by the user.
//
// Admin users also get just their own scope;
// the back-office switches to AnyOwner explicitly.
func (u User) Owner() Owner {
	return OwnedBy(u.Id)
}

type UserParam struct {
	Name  string
	Email string
	Admin bool
}

// Validate normalizes and checks the parameter.
func (p UserParam) Validate() (UserParam, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))

	if p.Name == "" {
		return UserParam{}, domerr.NewInvalidParam("name", "should not be empty")
	}
	addr, err := mail.ParseAddress(p.Email)
	if err != nil || addr.Address != p.Email {
		return UserParam{}, domerr.NewInvalidParam("email", "should be an email address")
	}
	return p, nil
}
