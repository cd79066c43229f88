package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/asre459/menna/internal/events"
	"github.com/asre459/menna/internal/models"
	"github.com/asre459/menna/internal/repository"
)

const (
	lockKeyPrefix      = "donation-service-lock-user-"
	lockDuration       = 10 * time.Minute
	maxFailedAttempts  = 10
	rapidRetryWindowMs = 1000
)

// UserStore is the persistence surface the user service needs. It is
// satisfied by repository.UserRepository.
type UserStore interface {
	FindByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	FindAll(ctx context.Context, page, limit int) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	DeleteByID(ctx context.Context, id bson.ObjectID) (bool, error)
}

type UserService struct {
	userRepo            UserStore
	redisRepo           *repository.RedisRepo
	eventPublisher      events.Publisher
	mu                  sync.Mutex
	failedLoginAttempts map[string]*failedLoginAttempt
}

type failedLoginAttempt struct {
	failedAt     int64
	failedNumber int
}

func NewUserService(userRepo UserStore, redisRepo *repository.RedisRepo, eventPublisher events.Publisher) *UserService {
	return &UserService{
		userRepo:            userRepo,
		redisRepo:           redisRepo,
		eventPublisher:      eventPublisher,
		failedLoginAttempts: make(map[string]*failedLoginAttempt),
	}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Login verifies credentials. Unknown usernames and wrong passwords fail the
// same way so the response never reveals which accounts exist. Repeated or
// rapid failures lock the username for a while when Redis is configured.
func (us *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if us.redisRepo.GetInt(ctx, lockKeyPrefix+username) != 0 {
		return nil, ErrUserLocked
	}

	user, err := us.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error finding username: %s", err)
	}

	if user == nil || !CheckPassword(password, user.PasswordHash) {
		us.recordFailedLogin(ctx, username)
		return nil, ErrInvalidCredentials
	}

	us.mu.Lock()
	delete(us.failedLoginAttempts, username)
	us.mu.Unlock()

	return user, nil
}

func (us *UserService) recordFailedLogin(ctx context.Context, username string) {
	loginTime := time.Now().UnixMilli()

	us.mu.Lock()
	attempt := us.failedLoginAttempts[username]
	if attempt == nil {
		attempt = &failedLoginAttempt{}
		us.failedLoginAttempts[username] = attempt
	}
	lastFailedAt := attempt.failedAt
	attempt.failedAt = loginTime
	attempt.failedNumber++
	failedNums := attempt.failedNumber
	us.mu.Unlock()

	if lastFailedAt != 0 && loginTime-lastFailedAt < rapidRetryWindowMs {
		log.Printf("WARN: Suspicious activity detected for user: %s. Instant lock activated", username)
		us.redisRepo.SaveInt(ctx, lockKeyPrefix+username, loginTime, lockDuration)
	}
	if failedNums > maxFailedAttempts {
		log.Printf("User %s login failed %v times. Locked for %v", username, failedNums, lockDuration)
		us.redisRepo.SaveInt(ctx, lockKeyPrefix+username, loginTime, lockDuration)
	}
}

// Register creates an account for the admin back office. The register route
// defaults to the admin role so a fresh deployment can bootstrap itself.
func (us *UserService) Register(ctx context.Context, username, password, role string) (*models.User, error) {
	if role == "" {
		role = models.RoleAdmin
	}
	return us.create(ctx, username, password, role)
}

// Create adds a user on behalf of an authenticated admin. Role defaults to
// editor.
func (us *UserService) Create(ctx context.Context, username, password, role string) (*models.User, error) {
	if role == "" {
		role = models.RoleEditor
	}
	return us.create(ctx, username, password, role)
}

func (us *UserService) create(ctx context.Context, username, password, role string) (*models.User, error) {
	if !models.IsValidRole(role) {
		return nil, ErrInvalidRole
	}

	existing, err := us.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %s", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %s", err)
	}

	user := &models.User{
		ID:           bson.NewObjectID(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now(),
	}

	if err := us.userRepo.Insert(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %s", err)
	}
	log.Printf("New user created: %s (role: %s)", user.Username, user.Role)

	if err := us.eventPublisher.PublishUserCreated(ctx, user.ID.Hex(), user.Username, user.Role); err != nil {
		log.Printf("Warning: Failed to publish user created event: %v", err)
	}

	return user, nil
}

func (us *UserService) List(ctx context.Context, page, limit int) ([]*models.User, int64, error) {
	users, err := us.userRepo.FindAll(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := us.userRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Delete removes a user. Callers may not delete themselves, and the last
// remaining admin account cannot be deleted.
func (us *UserService) Delete(ctx context.Context, callerID string, id bson.ObjectID) error {
	if callerID == id.Hex() {
		return ErrSelfDelete
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if user.Role == models.RoleAdmin {
		admins, err := us.userRepo.CountByRole(ctx, models.RoleAdmin)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}

	deleted, err := us.userRepo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (us *UserService) Count(ctx context.Context) (int64, error) {
	return us.userRepo.Count(ctx)
}
