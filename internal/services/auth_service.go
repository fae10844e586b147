package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"reviewhub/internal/models"
	"reviewhub/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"gorm.io/gorm"
)

// ConfirmationMailer delivers confirmation codes over an external channel.
// The AMQP client in pkg/rabbitmq implements it; tests substitute a mock.
type ConfirmationMailer interface {
	PublishConfirmationEmail(email, username, code string) error
}

// AuthService handles the account lifecycle: signup with confirmation codes
// and the code-for-token exchange.
type AuthService struct {
	userRepo   repositories.UserRepository
	codes      ConfirmationCodes
	mailer     ConfirmationMailer
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewAuthService creates a new AuthService. mailer may be nil, in which case
// codes are generated but not delivered anywhere.
func NewAuthService(userRepo repositories.UserRepository, mailer ConfirmationMailer, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		mailer:     mailer,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// SignUp registers the (username, email) pair and sends a confirmation code.
// Repeating an identical pair is an idempotent resend; a pair where only the
// username or only the email is already taken is a conflict. The returned
// user echoes username and email; the code itself travels only by mail.
func (s *AuthService) SignUp(username, email string) (*models.User, error) {
	if err := models.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	user, err := s.lookupOrCreate(username, email)
	if err != nil {
		return nil, err
	}

	code, err := s.codes.Issue(user)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(user); err != nil {
		return nil, dataErr(err)
	}

	if s.mailer != nil {
		if err := s.mailer.PublishConfirmationEmail(user.Email, user.Username, code); err != nil {
			// Delivery is asynchronous best-effort; the user can always
			// sign up again to get a fresh code.
			log.Printf("Warning: failed to publish confirmation email for %s: %v", user.Username, err)
		}
	} else {
		log.Printf("Mailer is not configured, confirmation code for %s not delivered", user.Username)
	}

	return user, nil
}

func (s *AuthService) lookupOrCreate(username, email string) (*models.User, error) {
	byName, nameErr := s.userRepo.GetByUsername(username)
	if nameErr != nil && !errors.Is(nameErr, gorm.ErrRecordNotFound) {
		return nil, nameErr
	}
	byEmail, emailErr := s.userRepo.GetByEmail(email)
	if emailErr != nil && !errors.Is(emailErr, gorm.ErrRecordNotFound) {
		return nil, emailErr
	}

	switch {
	case byName != nil && byEmail != nil && byName.ID == byEmail.ID:
		// Both match the same account: an idempotent resend.
		return byName, nil
	case byName != nil || byEmail != nil:
		return nil, fmt.Errorf("%w: user with this username or email already registered", ErrConflict)
	}

	user := &models.User{Username: username, Email: email, Role: models.RoleUser}
	if err := s.userRepo.Create(user); err != nil {
		// A concurrent signup may have taken the pair between lookup and
		// insert; the unique indexes are the real guard.
		return nil, dataErr(err)
	}
	return user, nil
}

// ObtainToken exchanges a confirmation code for a signed access token.
// An unknown username is NotFound; a code that does not verify for that
// account is a validation failure with a uniform client-facing message.
func (s *AuthService) ObtainToken(username, code string) (string, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return "", dataErr(err)
	}

	if !s.codes.Verify(user, code) {
		// Logged with the username so bad-code and unknown-user failures
		// stay distinguishable server-side.
		log.Printf("Confirmation code verification failed for user %s", username)
		return "", fmt.Errorf("%w: invalid confirmation code", ErrValidation)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// UserFromToken validates an access token and loads the account it names.
func (s *AuthService) UserFromToken(tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid user_id claim")
	}
	user, err := s.userRepo.GetByID(uint(userID))
	if err != nil {
		return nil, fmt.Errorf("token user no longer exists: %w", err)
	}
	return user, nil
}
