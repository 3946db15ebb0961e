package auth

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/stridehq/stride/internal/apierr"
	"github.com/stridehq/stride/internal/domain"
	"github.com/stridehq/stride/internal/service/featureflag"
)

// Username and password constraints for new accounts.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 30
	MinPasswordLength = 8
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service implements sign-in and sign-up. Stateless; safe for concurrent use.
type Service struct {
	repo     Repository
	flags    FlagSource
	contexts ContextProvisioner
	gateFlag string
}

// NewService creates an auth service. gateFlag is the slug of the feature
// flag that controls whether sign-ups are open; an empty slug or a missing
// flag leaves sign-ups open.
func NewService(repo Repository, flags FlagSource, contexts ContextProvisioner, gateFlag string) *Service {
	return &Service{repo: repo, flags: flags, contexts: contexts, gateFlag: gateFlag}
}

// SignInRequest carries the sign-in form fields.
type SignInRequest struct {
	EmailOrUsername string
	Password        string
}

// SignUpRequest carries the sign-up form fields.
type SignUpRequest struct {
	Email    string
	Username string
	Password string
}

func validateEmail(email string) *apierr.Error {
	if email == "" {
		return apierr.NewField("Email is required.", http.StatusUnprocessableEntity, "email")
	}
	if !emailRe.MatchString(email) {
		return apierr.NewField("Invalid email address.", http.StatusUnprocessableEntity, "email")
	}
	return nil
}

func validateUsername(username string) *apierr.Error {
	if username == "" {
		return apierr.NewField("Username is required.", http.StatusUnprocessableEntity, "username")
	}
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return apierr.NewField(
			fmt.Sprintf("Username must be between %d and %d characters.", MinUsernameLength, MaxUsernameLength),
			http.StatusUnprocessableEntity, "username")
	}
	return nil
}

func validatePassword(password string) *apierr.Error {
	if password == "" {
		return apierr.NewField("Password is required.", http.StatusUnprocessableEntity, "password")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if len(password) < MinPasswordLength || !hasLetter || !hasDigit {
		return apierr.NewField(
			fmt.Sprintf("Password must be at least %d characters and contain at least one letter and one number.", MinPasswordLength),
			http.StatusUnprocessableEntity, "password")
	}
	return nil
}

// ValidateSignUp collects every violation in a sign-up request.
func ValidateSignUp(req SignUpRequest) apierr.List {
	var errs apierr.List
	if err := validateEmail(req.Email); err != nil {
		errs = append(errs, err)
	}
	if err := validateUsername(req.Username); err != nil {
		errs = append(errs, err)
	}
	if err := validatePassword(req.Password); err != nil {
		errs = append(errs, err)
	}
	return errs
}

// SignIn verifies the credential and returns the matching user. Unknown
// principals and wrong passwords are indistinguishable to the caller.
func (s *Service) SignIn(ctx context.Context, req SignInRequest) (*domain.User, error) {
	invalid := apierr.New("Invalid credentials.", http.StatusUnauthorized)
	if req.EmailOrUsername == "" || req.Password == "" {
		return nil, invalid
	}

	user, err := s.repo.GetByEmailOrUsername(ctx, req.EmailOrUsername)
	if err != nil {
		if err == ErrNotFound {
			return nil, invalid
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, invalid
	}
	return user, nil
}

// signupOpen consults the gate flag. A missing flag means sign-ups are open.
func (s *Service) signupOpen(ctx context.Context) (bool, error) {
	if s.gateFlag == "" {
		return true, nil
	}
	flag, err := s.flags.GetBySlug(ctx, s.gateFlag)
	if err != nil {
		if err == featureflag.ErrNotFound {
			return true, nil
		}
		return false, err
	}
	return flag.IsEnabled, nil
}

// SignUp validates the request, checks the sign-up gate, and creates the user
// together with their default contexts. The password is bcrypt-hashed before
// it touches storage.
func (s *Service) SignUp(ctx context.Context, req SignUpRequest) (*domain.User, error) {
	if errs := ValidateSignUp(req); len(errs) > 0 {
		return nil, errs
	}

	open, err := s.signupOpen(ctx)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, apierr.New("Sign ups are currently closed.", http.StatusForbidden)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		switch err {
		case ErrEmailTaken:
			return nil, apierr.NewField("Email is already in use.", http.StatusConflict, "email")
		case ErrUsernameTaken:
			return nil, apierr.NewField("Username is already in use.", http.StatusConflict, "username")
		}
		return nil, err
	}

	if err := s.contexts.CreateDefaults(ctx, user.ID); err != nil {
		// The account exists; the first inbox access will report the gap.
		log.Printf("[auth.Service] failed to provision default contexts for %s: %v", user.ID, err)
	}
	return user, nil
}
