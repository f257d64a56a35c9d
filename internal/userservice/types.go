package userservice

import (
	"database/sql"
	"log/slog"

	"github.com/sushihentaime/blogplatform/internal/common"
)

type UserService struct {
	m      *DBModel
	mb     common.MessageProducer
	hasher PasswordHasher
	logger *slog.Logger
}

type DBModel struct {
	db *sql.DB
}

type User struct {
	ID        string           `json:"id"`
	Login     string           `json:"login"`
	Email     string           `json:"email"`
	Password  Password         `json:"-"`
	CreatedAt common.Timestamp `json:"createdAt"`
}

type Password struct {
	Plain string `json:"-"`
	hash  []byte `json:"-"`
}

// UserInput is the body of POST /users. Field order is the order errors are
// reported in.
type UserInput struct {
	Login    string `json:"login" validate:"required,min=3,max=10,login"`
	Password string `json:"password" validate:"required,min=6,max=20"`
	Email    string `json:"email" validate:"required,email"`
}

// LoginInput is the body of POST /auth/login.
type LoginInput struct {
	LoginOrEmail string `json:"loginOrEmail" validate:"required"`
	Password     string `json:"password" validate:"required"`
}

// UserQuery filters users whose login or email contains the given terms.
// With both terms set a user matching either one is included.
type UserQuery struct {
	common.ListQuery
	SearchLoginTerm string
	SearchEmailTerm string
}
