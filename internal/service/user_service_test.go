package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memoryUserRepository is an in-memory stand-in for the mongo repository. It
// enforces the same write-time schema rules so validation paths can be tested
// without a database.
type memoryUserRepository struct {
	users []domain.User
}

func (r *memoryUserRepository) Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error) {
	if user.Username == "" {
		return primitive.NilObjectID, repository.ValidationError("username is required")
	}
	user.ID = primitive.NewObjectID()
	if user.Log == nil {
		user.Log = []domain.Exercise{}
	}
	r.users = append(r.users, *user)
	return user.ID, nil
}

func (r *memoryUserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	return append([]domain.User{}, r.users...), nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryUserRepository) AppendExercise(ctx context.Context, id primitive.ObjectID, exercise domain.Exercise) (*domain.User, error) {
	if exercise.Description == "" {
		return nil, repository.ValidationError("description is required")
	}
	for i := range r.users {
		if r.users[i].ID == id {
			r.users[i].Log = append(r.users[i].Log, exercise)
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

// newTestService wires a userService around the memory repository with a
// fixed clock.
func newTestService(repo *memoryUserRepository, now time.Time) *userService {
	return &userService{
		userRepo: repo,
		now:      func() time.Time { return now },
	}
}

func seedUser(t *testing.T, repo *memoryUserRepository, username string, log []domain.Exercise) domain.User {
	t.Helper()
	user := domain.User{Username: username, Log: log}
	id, err := repo.Create(context.Background(), &user)
	if err != nil {
		t.Fatalf("failed to seed user %q: %v", username, err)
	}
	user.ID = id
	return user
}

func TestNormalizeDate(t *testing.T) {
	now := time.Date(2020, 3, 5, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want string
	}{
		{"supplied date passes through unmodified", "2020-01-01", "2020-01-01"},
		{"supplied date is not validated", "not-a-date", "not-a-date"},
		{"empty date formats now with zero padding", "", "2020-03-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDate(tt.date, now); got != tt.want {
				t.Errorf("NormalizeDate(%q) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestCreateUser(t *testing.T) {
	repo := &memoryUserRepository{}
	svc := newTestService(repo, time.Now())

	first, err := svc.CreateUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if first.ID.IsZero() {
		t.Error("expected a non-zero id")
	}
	if len(first.Log) != 0 {
		t.Errorf("expected empty log, got %d entries", len(first.Log))
	}

	// Duplicate usernames are allowed and get distinct ids.
	second, err := svc.CreateUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("CreateUser (duplicate): %v", err)
	}
	if first.ID == second.ID {
		t.Error("expected distinct ids for duplicate usernames")
	}

	users, err := svc.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("expected 2 users, got %d", len(users))
	}
}

func TestCreateUserEmptyUsername(t *testing.T) {
	repo := &memoryUserRepository{}
	svc := newTestService(repo, time.Now())

	_, err := svc.CreateUser(context.Background(), "")
	var validationErr repository.ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestAddExercise(t *testing.T) {
	now := time.Date(2020, 3, 5, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		duration    string
		date        string
		wantMinutes int
		wantDate    string
	}{
		{"numeric string duration and defaulted date", "30", "", 30, "2020-03-05"},
		{"explicit date echoed unmodified", "45", "2020-01-01", 45, "2020-01-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryUserRepository{}
			svc := newTestService(repo, now)
			user := seedUser(t, repo, "alice", nil)

			owner, exercise, err := svc.AddExercise(context.Background(), user.ID.Hex(), "jogging", tt.duration, tt.date)
			if err != nil {
				t.Fatalf("AddExercise: %v", err)
			}
			if owner.Username != "alice" {
				t.Errorf("owner = %q, want alice", owner.Username)
			}
			if exercise.Duration != tt.wantMinutes {
				t.Errorf("duration = %d, want %d", exercise.Duration, tt.wantMinutes)
			}
			if exercise.Date != tt.wantDate {
				t.Errorf("date = %q, want %q", exercise.Date, tt.wantDate)
			}
			if len(owner.Log) != 1 {
				t.Errorf("expected 1 log entry after append, got %d", len(owner.Log))
			}
		})
	}
}

func TestAddExerciseFailures(t *testing.T) {
	repo := &memoryUserRepository{}
	svc := newTestService(repo, time.Now())
	user := seedUser(t, repo, "alice", nil)

	tests := []struct {
		name        string
		userID      string
		description string
		duration    string
		wantErr     error
	}{
		{"non-numeric duration", user.ID.Hex(), "jogging", "soon", repository.ValidationError("")},
		{"unknown user id", primitive.NewObjectID().Hex(), "jogging", "30", ErrUserNotFound},
		{"malformed user id", "nope", "jogging", "30", ErrUserNotFound},
		{"empty description", user.ID.Hex(), "", "30", repository.ValidationError("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.AddExercise(context.Background(), tt.userID, tt.description, tt.duration, "")
			if err == nil {
				t.Fatal("expected an error")
			}
			var validationErr repository.ValidationError
			switch tt.wantErr.(type) {
			case repository.ValidationError:
				if !errors.As(err, &validationErr) {
					t.Errorf("expected ValidationError, got %v", err)
				}
			default:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
			}
		})
	}
}

func intPtr(n int) *int { return &n }

func TestGetUserLog(t *testing.T) {
	log := []domain.Exercise{
		{Description: "run", Duration: 30, Date: "2020-01-01"},
		{Description: "swim", Duration: 45, Date: "2020-01-15"},
		{Description: "lift", Duration: 20, Date: "2020-02-01"},
	}

	tests := []struct {
		name      string
		filter    LogFilter
		wantDates []string
		wantCount int
	}{
		{
			name:      "no filter returns full log",
			filter:    LogFilter{},
			wantDates: []string{"2020-01-01", "2020-01-15", "2020-02-01"},
			wantCount: 3,
		},
		{
			// Count is taken before the date filters run, so it can exceed
			// the length of the returned log.
			name:      "from/to bounds are exclusive and count stays pre-filter",
			filter:    LogFilter{From: "2020-01-10", To: "2020-01-31"},
			wantDates: []string{"2020-01-15"},
			wantCount: 3,
		},
		{
			name:      "limit truncates in insertion order before count",
			filter:    LogFilter{Limit: intPtr(1)},
			wantDates: []string{"2020-01-01"},
			wantCount: 1,
		},
		{
			name:      "limit larger than log is a no-op",
			filter:    LogFilter{Limit: intPtr(10)},
			wantDates: []string{"2020-01-01", "2020-01-15", "2020-02-01"},
			wantCount: 3,
		},
		{
			name:      "negative limit is ignored",
			filter:    LogFilter{Limit: intPtr(-1)},
			wantDates: []string{"2020-01-01", "2020-01-15", "2020-02-01"},
			wantCount: 3,
		},
		{
			name:      "limit applies before the date filters",
			filter:    LogFilter{Limit: intPtr(2), From: "2020-01-10"},
			wantDates: []string{"2020-01-15"},
			wantCount: 2,
		},
		{
			name:      "boundary dates are excluded",
			filter:    LogFilter{From: "2020-01-01", To: "2020-02-01"},
			wantDates: []string{"2020-01-15"},
			wantCount: 3,
		},
		{
			name:      "unparseable from excludes everything",
			filter:    LogFilter{From: "soon"},
			wantDates: []string{},
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryUserRepository{}
			svc := newTestService(repo, time.Now())
			user := seedUser(t, repo, "alice", append([]domain.Exercise{}, log...))

			got, err := svc.GetUserLog(context.Background(), user.ID.Hex(), tt.filter)
			if err != nil {
				t.Fatalf("GetUserLog: %v", err)
			}

			if got.UserID != user.ID.Hex() {
				t.Errorf("userId = %q, want %q", got.UserID, user.ID.Hex())
			}
			if got.Count != tt.wantCount {
				t.Errorf("count = %d, want %d", got.Count, tt.wantCount)
			}
			if len(got.Log) != len(tt.wantDates) {
				t.Fatalf("log length = %d, want %d", len(got.Log), len(tt.wantDates))
			}
			for i, wantDate := range tt.wantDates {
				if got.Log[i].Date != wantDate {
					t.Errorf("log[%d].date = %q, want %q", i, got.Log[i].Date, wantDate)
				}
			}
		})
	}
}

func TestGetUserLogNotFound(t *testing.T) {
	repo := &memoryUserRepository{}
	svc := newTestService(repo, time.Now())

	_, err := svc.GetUserLog(context.Background(), primitive.NewObjectID().Hex(), LogFilter{})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	_, err = svc.GetUserLog(context.Background(), "not-a-hex-id", LogFilter{})
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound for malformed id, got %v", err)
	}
}
