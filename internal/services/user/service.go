// Package user handles student registration. Creating a user also
// creates their wallet; authentication itself lives in the upstream
// gateway.
package user

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"campuspay/internal/errors"
	"campuspay/internal/models"
	"campuspay/internal/repositories"
)

const minPasswordLength = 8

var (
	ErrEmailTaken          = errors.ErrEmailTaken
	ErrInvalidRegistration = errors.ErrInvalidRegistration
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Email     string
	Password  string
	Name      string
	StudentID string
}

// Service creates user accounts and their wallets.
type Service struct {
	store  repositories.Store
	logger zerolog.Logger
}

func NewService(store repositories.Store, logger zerolog.Logger) *Service {
	if store == nil {
		panic("store is required")
	}
	return &Service{store: store, logger: logger}
}

// Register creates the user and their empty wallet with default
// limits as one unit of work.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || !strings.Contains(in.Email, "@") || in.Name == "" {
		return nil, ErrInvalidRegistration
	}
	if len(in.Password) < minPasswordLength {
		return nil, ErrInvalidRegistration
	}

	if _, err := s.store.Users().GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:     in.Email,
		Password:  string(hash),
		Name:      in.Name,
		StudentID: in.StudentID,
		Role:      models.RoleStudent,
		Status:    "active",
	}

	create := func(st repositories.Store) error {
		if err := st.Users().Create(ctx, user); err != nil {
			if stderrors.Is(err, repositories.ErrDuplicateKey) {
				return ErrEmailTaken
			}
			return err
		}
		wallet := &models.Wallet{UserID: user.ID, Currency: "IDR", IsActive: true}
		if err := st.Wallets().Create(ctx, wallet); err != nil {
			return err
		}
		user.Wallet = wallet
		return nil
	}

	err = s.store.ExecuteInTransaction(create)
	if stderrors.Is(err, repositories.ErrAtomicityNotSupported) {
		err = create(s.store)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("user_id", user.ID).Str("email", user.Email).Msg("user registered")
	return user, nil
}

// VerifyPassword checks a password against the stored hash.
func VerifyPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) == nil
}
