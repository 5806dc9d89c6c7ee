package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/recipe-share/internal/logger"
	"github.com/sbilibin2017/recipe-share/internal/models"
)

// Error variables
var (
	ErrCredentialsRequired = errors.New("username and password are required")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid username or password")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, passwordHash string) (int64, error)
}

// AuthService handles registration, login, and current-user resolution.
type AuthService struct {
	reader    UserReader
	writer    UserWriter
	dummyHash []byte
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter) *AuthService {
	// Hashed once up front so Login can run a comparison even when the
	// username is unknown, keeping both failure paths the same shape.
	dummyHash, _ := bcrypt.GenerateFromPassword([]byte("recipe-share-dummy"), bcrypt.DefaultCost)
	return &AuthService{
		reader:    reader,
		writer:    writer,
		dummyHash: dummyHash,
	}
}

// Register creates a new user and returns its id. The username is
// trimmed, the password is hashed with bcrypt and never stored as given.
func (svc *AuthService) Register(ctx context.Context, username, password string) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return 0, ErrCredentialsRequired
	}

	existing, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check username", "err", err)
		return 0, err
	}
	if existing != nil {
		logger.Log.Warnw("username already taken", "username", username)
		return 0, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return 0, err
	}

	id, err := svc.writer.Save(ctx, username, string(hashedPassword))
	if err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return 0, err
	}

	return id, nil
}

// Login authenticates a user and returns it. Unknown usernames and wrong
// passwords produce the same error.
func (svc *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}

	// One bcrypt comparison runs on every attempt so an unknown username
	// costs the same as a wrong password.
	hash := svc.dummyHash
	if user != nil {
		hash = []byte(user.PasswordHash)
	}
	compareErr := bcrypt.CompareHashAndPassword(hash, []byte(password))
	if user == nil || compareErr != nil {
		logger.Log.Warnw("invalid credentials", "username", username)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// CurrentUser resolves a session's user id to the stored user. An
// anonymous or stale id yields nil without an error.
func (svc *AuthService) CurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	if userID == 0 {
		return nil, nil
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}

	return user, nil
}
