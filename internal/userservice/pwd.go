package userservice

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher turns plaintext passwords into stored hashes and checks them.
type PasswordHasher interface {
	Hash(plain string) ([]byte, error)
	Verify(hash []byte, plain string) (bool, error)
}

// BcryptHasher is the PasswordHasher used in production.
type BcryptHasher struct {
	Cost int
}

func NewBcryptHasher(cost int) BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{Cost: cost}
}

func (h BcryptHasher) Hash(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), h.Cost)
}

// Verify compares in constant time. A mismatch is (false, nil); only a
// malformed hash is an error.
func (h BcryptHasher) Verify(hash []byte, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword(hash, []byte(plain))
	if err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, err
		}
	}

	return true, nil
}

func (p *Password) set(h PasswordHasher, pwd string) error {
	hash, err := h.Hash(pwd)
	if err != nil {
		return err
	}

	p.Plain = pwd
	p.hash = hash

	return nil
}

func (p *Password) compare(h PasswordHasher, pwd string) (bool, error) {
	return h.Verify(p.hash, pwd)
}
