package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// User is an operator account.
type User struct {
	Username string `json:"username"`
	Company  string `json:"company"`
	Role     string `json:"role"`
}

// Account declares a user together with its secret. PasswordHash takes
// precedence over Password when both are set.
type Account struct {
	User
	Password     string
	PasswordHash string
}

type entry struct {
	user User
	hash []byte
}

// Directory authenticates users against bcrypt password hashes.
type Directory struct {
	users map[string]entry
	// dummy is compared against when the user is unknown so both paths cost
	// one bcrypt comparison.
	dummy []byte
}

// NewDirectory hashes plain passwords with the given bcrypt cost. A cost of
// zero uses bcrypt.DefaultCost.
func NewDirectory(accounts []Account, cost int) (*Directory, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	d := &Directory{users: make(map[string]entry, len(accounts))}
	for _, a := range accounts {
		if a.Username == "" {
			return nil, fmt.Errorf("account without username")
		}
		hash := []byte(a.PasswordHash)
		if len(hash) == 0 {
			var err error
			hash, err = bcrypt.GenerateFromPassword([]byte(a.Password), cost)
			if err != nil {
				return nil, fmt.Errorf("hash password for %s: %w", a.Username, err)
			}
		} else if _, err := bcrypt.Cost(hash); err != nil {
			return nil, fmt.Errorf("password hash for %s: %w", a.Username, err)
		}
		d.users[a.Username] = entry{user: a.User, hash: hash}
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("fleetcompute"), cost)
	if err != nil {
		return nil, err
	}
	d.dummy = dummy
	return d, nil
}

// Authenticate returns the user when password matches.
func (d *Directory) Authenticate(username, password string) (User, error) {
	e, ok := d.users[username]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(d.dummy, []byte(password))
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(e.hash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, fmt.Errorf("compare password: %w", err)
	}
	return e.user, nil
}

// Len returns the number of known users.
func (d *Directory) Len() int { return len(d.users) }
