package services_test

import (
	"fmt"
	"testing"

	"reviewhub/internal/models"
	"reviewhub/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(search string) ([]models.User, error) {
	args := m.Called(search)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) Save(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(username string) error {
	args := m.Called(username)
	return args.Error(0)
}

// MockMailer is a mock implementation of services.ConfirmationMailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) PublishConfirmationEmail(email, username, code string) error {
	args := m.Called(email, username, code)
	return args.Error(0)
}

func notFound() error {
	return fmt.Errorf("no row: %w", gorm.ErrRecordNotFound)
}

func TestAuthService_SignUp_NewUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	service := services.NewAuthService(mockRepo, mockMailer, "test_secret")

	mockRepo.On("GetByUsername", "newbie").Return(nil, notFound()).Once()
	mockRepo.On("GetByEmail", "newbie@example.com").Return(nil, notFound()).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	mockRepo.On("Save", mock.AnythingOfType("*models.User")).Return(nil).Once()
	mockMailer.On("PublishConfirmationEmail", "newbie@example.com", "newbie", mock.AnythingOfType("string")).Return(nil).Once()

	user, err := service.SignUp("newbie", "newbie@example.com")

	require.NoError(t, err)
	assert.Equal(t, "newbie", user.Username)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEmpty(t, user.ConfirmationCode, "a code hash must be stored on the account")
	mockRepo.AssertExpectations(t)
	mockMailer.AssertExpectations(t)
}

func TestAuthService_SignUp_IdempotentResend(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockMailer := new(MockMailer)
	service := services.NewAuthService(mockRepo, mockMailer, "test_secret")

	existing := &models.User{ID: 7, Username: "repeat", Email: "repeat@example.com", Role: models.RoleUser}
	mockRepo.On("GetByUsername", "repeat").Return(existing, nil).Once()
	mockRepo.On("GetByEmail", "repeat@example.com").Return(existing, nil).Once()
	mockRepo.On("Save", existing).Return(nil).Once()
	mockMailer.On("PublishConfirmationEmail", "repeat@example.com", "repeat", mock.AnythingOfType("string")).Return(nil).Once()

	user, err := service.SignUp("repeat", "repeat@example.com")

	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_SignUp_UsernameTakenByOtherEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, nil, "test_secret")

	existing := &models.User{ID: 7, Username: "taken", Email: "other@example.com"}
	mockRepo.On("GetByUsername", "taken").Return(existing, nil).Once()
	mockRepo.On("GetByEmail", "fresh@example.com").Return(nil, notFound()).Once()

	_, err := service.SignUp("taken", "fresh@example.com")

	assert.ErrorIs(t, err, services.ErrConflict)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_SignUp_EmailTakenByOtherUsername(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, nil, "test_secret")

	existing := &models.User{ID: 7, Username: "someone", Email: "used@example.com"}
	mockRepo.On("GetByUsername", "fresh").Return(nil, notFound()).Once()
	mockRepo.On("GetByEmail", "used@example.com").Return(existing, nil).Once()

	_, err := service.SignUp("fresh", "used@example.com")

	assert.ErrorIs(t, err, services.ErrConflict)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestAuthService_SignUp_RejectsBadUsernames(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, nil, "test_secret")

	for _, username := range []string{"me", "bad username!"} {
		_, err := service.SignUp(username, "x@example.com")
		assert.ErrorIs(t, err, services.ErrValidation, "username %q", username)
	}
	mockRepo.AssertNotCalled(t, "GetByUsername", mock.Anything)
}

func TestAuthService_ObtainToken_UnknownUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, nil, "test_secret")

	mockRepo.On("GetByUsername", "ghost").Return(nil, notFound()).Once()

	_, err := service.ObtainToken("ghost", "whatever")

	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestAuthService_ObtainToken_BadCode(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, nil, "test_secret")

	user := &models.User{ID: 3, Username: "alice"}
	var codes services.ConfirmationCodes
	_, err := codes.Issue(user)
	require.NoError(t, err)

	mockRepo.On("GetByUsername", "alice").Return(user, nil).Once()

	_, err = service.ObtainToken("alice", "not-the-code")

	assert.ErrorIs(t, err, services.ErrValidation)
}

func TestAuthService_ObtainToken_Success(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := services.NewAuthService(mockRepo, nil, "test_secret")

	user := &models.User{ID: 3, Username: "alice"}
	var codes services.ConfirmationCodes
	code, err := codes.Issue(user)
	require.NoError(t, err)

	mockRepo.On("GetByUsername", "alice").Return(user, nil).Twice()

	tokenString, err := service.ObtainToken("alice", code)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	// The token names the account it was issued for.
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("test_secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(3), claims["user_id"])
	assert.Equal(t, "alice", claims["username"])

	// The same code verifies again: codes are not consumed on use.
	_, err = service.ObtainToken("alice", code)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestConfirmationCodes_BoundToAccount(t *testing.T) {
	var codes services.ConfirmationCodes

	alice := &models.User{ID: 1, Username: "alice"}
	bob := &models.User{ID: 2, Username: "bob"}

	aliceCode, err := codes.Issue(alice)
	require.NoError(t, err)
	_, err = codes.Issue(bob)
	require.NoError(t, err)

	assert.True(t, codes.Verify(alice, aliceCode))
	assert.False(t, codes.Verify(bob, aliceCode), "a code must not verify for another account")
	assert.False(t, codes.Verify(alice, "forged"))
	assert.False(t, codes.Verify(&models.User{ID: 3}, "anything"), "no code issued means nothing verifies")
}

func TestConfirmationCodes_ReissueInvalidatesOldCode(t *testing.T) {
	var codes services.ConfirmationCodes

	user := &models.User{ID: 1, Username: "alice"}
	first, err := codes.Issue(user)
	require.NoError(t, err)
	second, err := codes.Issue(user)
	require.NoError(t, err)

	assert.False(t, codes.Verify(user, first))
	assert.True(t, codes.Verify(user, second))
}
