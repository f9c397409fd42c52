package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"errors"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound = errors.New("user not found")
)

// LogFilter carries the optional query parameters of a log request.
// Limit is nil when absent or unparseable.
type LogFilter struct {
	From  string
	To    string
	Limit *int
}

// UserLog is the shaped result of a log request. Count is the length of the
// log after the limit cut but before from/to filtering; the returned Log can
// therefore be shorter than Count. This mirrors the long-standing behavior of
// the API and clients depend on it.
type UserLog struct {
	UserID   string
	Username string
	Log      []domain.Exercise
	Count    int
}

type UserService interface {
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	AddExercise(ctx context.Context, userID, description, duration, date string) (*domain.User, domain.Exercise, error)
	GetUserLog(ctx context.Context, userID string, filter LogFilter) (*UserLog, error)
}

// userService implements the UserService interface.
type userService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// CreateUser persists a new user with an empty log. The write is awaited, so
// a persistence failure reaches the caller instead of being dropped.
func (s *userService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	user := &domain.User{
		Username: username,
		Log:      []domain.Exercise{},
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID
	return user, nil
}

// ListUsers returns every user in full, log arrays included.
func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

// AddExercise appends one entry to the user's log. The duration arrives as
// text (form input) and must parse to an integer; the date defaults to the
// server's current date when omitted.
func (s *userService) AddExercise(ctx context.Context, userID, description, duration, date string) (*domain.User, domain.Exercise, error) {
	minutes, err := strconv.Atoi(duration)
	if err != nil {
		return nil, domain.Exercise{}, repository.ValidationError("duration must be a number")
	}

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		// A malformed id can never match a stored user.
		return nil, domain.Exercise{}, ErrUserNotFound
	}

	exercise := domain.Exercise{
		Description: description,
		Duration:    minutes,
		Date:        NormalizeDate(date, s.now()),
	}

	user, err := s.userRepo.AppendExercise(ctx, id, exercise)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.Exercise{}, ErrUserNotFound
		}
		return nil, domain.Exercise{}, err
	}
	return user, exercise, nil
}

// GetUserLog looks up a user and shapes their log. The pipeline order is
// fixed: limit truncates first, Count is taken from that slice, and only then
// do the from/to bounds (both exclusive) prune the returned entries.
func (s *userService) GetUserLog(ctx context.Context, userID string, filter LogFilter) (*UserLog, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	log := user.Log
	if log == nil {
		log = []domain.Exercise{}
	}

	if filter.Limit != nil && *filter.Limit >= 0 && *filter.Limit < len(log) {
		log = log[:*filter.Limit]
	}

	count := len(log)

	if filter.From != "" {
		from, ok := parseDate(filter.From)
		log = filterLog(log, func(t time.Time) bool {
			return ok && t.After(from)
		})
	}
	if filter.To != "" {
		to, ok := parseDate(filter.To)
		log = filterLog(log, func(t time.Time) bool {
			return ok && t.Before(to)
		})
	}

	return &UserLog{
		UserID:   user.ID.Hex(),
		Username: user.Username,
		Log:      log,
		Count:    count,
	}, nil
}

// filterLog keeps the entries whose (parseable) date satisfies keep.
func filterLog(log []domain.Exercise, keep func(time.Time) bool) []domain.Exercise {
	filtered := []domain.Exercise{}
	for _, e := range log {
		t, ok := parseDate(e.Date)
		if ok && keep(t) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
