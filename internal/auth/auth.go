package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"todo_service/internal/config"
	"todo_service/internal/lib/jwt"
	sl "todo_service/internal/lib/logger"
	"todo_service/internal/models"
	"todo_service/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

type Auth struct {
	log         *slog.Logger
	usrSaver    UserSaver
	usrProvider UserProvider
	publisher   Publisher
	secret      []byte
	tokenTTL    time.Duration
	passCost    int
	now         func() time.Time
}

type UserSaver interface {
	SaveUser(ctx context.Context, name, email string, passHash []byte) (uid string, err error)
}

type UserProvider interface {
	User(ctx context.Context, email string) (models.User, error)
}

// Publisher receives account events. A nil Publisher disables them.
type Publisher interface {
	SendMessage(ctx context.Context, msg models.Message) error
}

func New(
	log *slog.Logger,
	userSaver UserSaver,
	userProvider UserProvider,
	publisher Publisher,
	tokens config.Tokens,
) *Auth {
	cost := tokens.PasswordCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &Auth{
		log:         log,
		usrSaver:    userSaver,
		usrProvider: userProvider,
		publisher:   publisher,
		secret:      []byte(tokens.Secret),
		tokenTTL:    tokens.AccessTokenTTL,
		passCost:    cost,
		now:         time.Now,
	}
}

// RegisterNewUser stores a user with a bcrypt hash of pass. No token is issued.
func (a *Auth) RegisterNewUser(
	ctx context.Context,
	name string,
	email string,
	pass string,
) (string, error) {
	const op = "auth.RegisterNewUser"

	log := a.log.With(
		slog.String("op", op),
	)

	log.Info("Registering new user")

	_, err := a.usrProvider.User(ctx, email)
	switch {
	case err == nil:
		log.Warn("User already exists")

		return "", fmt.Errorf("%s: %w", op, ErrUserExists)
	case !errors.Is(err, storage.ErrUserNotFound):
		log.Error("failed to look up user", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, err)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(pass), a.passCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, err)
	}

	id, err := a.usrSaver.SaveUser(ctx, name, email, passHash)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("User already exists")

			return "", fmt.Errorf("%s: %w", op, ErrUserExists)
		}

		log.Error("Failed to save user", sl.Err(err))

		return "", fmt.Errorf("%s: %w", op, err)
	}

	a.publishWelcome(ctx, log, name, email)

	log.Info("User registered", slog.String("uid", id))

	return id, nil
}

func (a *Auth) publishWelcome(ctx context.Context, log *slog.Logger, name, email string) {
	if a.publisher == nil {
		return
	}

	msg := models.Message{
		Email:   email,
		Name:    name,
		Purpose: models.PurposeWelcome,
	}

	if err := a.publisher.SendMessage(ctx, msg); err != nil {
		log.Error("failed to publish welcome message", sl.Err(err))
	}
}

// Login checks the credentials and returns a session token with the public profile.
func (a *Auth) Login(
	ctx context.Context,
	email, password string,
) (string, models.PublicUser, error) {
	const op = "auth.Login"

	log := a.log.With(slog.String("op", op))

	user, err := a.usrProvider.User(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found")

			return "", models.PublicUser{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		log.Error("failed to get user", sl.Err(err))

		return "", models.PublicUser{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))

		return "", models.PublicUser{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := jwt.NewToken(user.ID, a.secret, a.now(), a.tokenTTL)
	if err != nil {
		log.Error("failed to generate token", sl.Err(err))

		return "", models.PublicUser{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in successfully", slog.String("uid", user.ID))

	return token, user.Public(), nil
}

// VerifyToken returns the user id carried by a valid, unexpired token.
func (a *Auth) VerifyToken(token string) (string, error) {
	const op = "auth.VerifyToken"

	if token == "" {
		return "", fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	uid, err := jwt.ParseToken(token, a.secret, a.now())
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrUnauthenticated, err)
	}

	return uid, nil
}
