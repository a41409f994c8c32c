package accessor

import (
	"errors"
	"strings"
)

type Audit struct {
	CreatedBy string
	revision  int
}

type user struct {
	*Audit
	ID       int64
	email    string
	name     string
	active   bool
	verified bool
	password string
	Tags     map[string]string
}

func (u *user) GetName() string   { return strings.ToUpper(u.name) }
func (u user) Email() string      { return u.email }
func (u *user) IsActive() bool    { return u.active }
func (u *user) HasVerified() bool { return u.verified }
func (u *user) SetEmail(e string) { u.email = e }
func (u *user) Password() (string, error) {
	return "", errors.New("sealed")
}

func (u *user) SetName(n string) error {
	if n == "" {
		return errors.New("empty name")
	}
	u.name = n
	return nil
}

type product struct {
	SKU   string
	Price float64
	Stock int8
	cost  int
}
