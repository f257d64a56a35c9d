package userservice

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/sushihentaime/blogplatform/internal/common"
)

var (
	ErrAuthenticationFailure = errors.New("invalid credentials")
)

// NewUserService wires the user store. mb may be nil, in which case no
// user.created events are published.
func NewUserService(db *sql.DB, hasher PasswordHasher, mb common.MessageProducer, logger *slog.Logger) *UserService {
	return &UserService{
		m:      newUserModel(db),
		mb:     mb,
		hasher: hasher,
		logger: logger,
	}
}

// CreateUser validates and stores a new user, then publishes a user.created
// event. Publishing is best effort: a broker failure is logged and the user is
// still returned.
func (s *UserService) CreateUser(ctx context.Context, in *UserInput) (*User, error) {
	v := common.NewValidator()
	if err := validateUserInput(v, in); err != nil {
		return nil, err
	}
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	u := User{
		Login:     in.Login,
		Email:     in.Email,
		CreatedAt: common.Now(),
	}

	err := u.Password.set(s.hasher, in.Password)
	if err != nil {
		return nil, err
	}

	err = s.m.insertUser(ctx, &u)
	if err != nil {
		return nil, err
	}

	created, err := s.m.getUserByID(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	s.publishUserCreated(ctx, created)

	return created, nil
}

func (s *UserService) publishUserCreated(ctx context.Context, u *User) {
	if s.mb == nil {
		return
	}

	msg, err := common.UserCreatedEvent{ID: u.ID, Login: u.Login, Email: u.Email, CreatedAt: u.CreatedAt.Time}.Encode()
	if err == nil {
		err = s.mb.Publish(ctx, msg, common.UserCreatedKey, common.UserExchange)
	}
	if err != nil {
		s.logger.Warn("could not publish user.created", slog.String("user_id", u.ID), slog.String("error", err.Error()))
	}
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*User, error) {
	if !common.ValidID(id) {
		return nil, common.ErrRecordNotFound
	}

	return s.m.getUserByID(ctx, id)
}

func (s *UserService) GetUsers(ctx context.Context, q UserQuery) (common.Page[User], error) {
	q.ListQuery = q.ListQuery.Normalize()

	users, total, err := s.m.getUsers(ctx, q)
	if err != nil {
		return common.Page[User]{}, err
	}

	return common.NewPage(users, total, q.ListQuery), nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if !common.ValidID(id) {
		return common.ErrRecordNotFound
	}

	return s.m.deleteUser(ctx, id)
}

// Authenticate checks a login-or-email and password pair. It returns a
// ValidationError for missing fields and ErrAuthenticationFailure when no user
// matches or the password is wrong.
func (s *UserService) Authenticate(ctx context.Context, in *LoginInput) error {
	v := common.NewValidator()
	if err := validateLoginInput(v, in); err != nil {
		return err
	}
	if !v.Valid() {
		return v.ValidationError()
	}

	u, err := s.m.getUserByLoginOrEmail(ctx, in.LoginOrEmail)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrRecordNotFound):
			return ErrAuthenticationFailure
		default:
			return err
		}
	}

	match, err := u.Password.compare(s.hasher, in.Password)
	if err != nil {
		return err
	}
	if !match {
		return ErrAuthenticationFailure
	}

	return nil
}

func (s *UserService) DeleteAll(ctx context.Context) error {
	return s.m.deleteAll(ctx)
}
