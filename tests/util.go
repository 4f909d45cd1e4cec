package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/assessment"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/user"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/storage/database"
)

// NewConfig returns a TEST config backed by a sqlite file in a temp dir.
func NewConfig(t *testing.T) *core.Config {
	t.Helper()
	return &core.Config{
		AppName:   "MindWell",
		Env:       "TEST",
		TestMode:  true,
		SecretKey: "test-secret",
		Server: core.ServerConfig{
			Address:                   ":0",
			ShutdownTimeout:           time.Second,
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 4 * time.Hour,
		},
		Database: core.DatabaseConfig{
			Engine: database.EngineSQLite,
			Path:   filepath.Join(t.TempDir(), "mindwell.db"),
		},
		VideoHost:     "https://www.youtube.com",
		AvatarService: "https://ui-avatars.com/api/",
	}
}

// PrepareDB opens a migrated sqlite database that is closed when the test ends.
func PrepareDB(t *testing.T) (*sqlx.DB, *core.Config) {
	t.Helper()
	conf := NewConfig(t)
	if err := database.CreateIfNotExist(conf); err != nil {
		t.Fatalf("CreateIfNotExist() failed: %v", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err = database.Migrate(context.Background(), db, conf.Database.Engine); err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	return db, conf
}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	fullName, email, pwd string,
	roles []string,
	isActive bool,
	createdAt ...time.Time,
) user.User {
	t.Helper()
	tstamp := time.Now().UTC().Truncate(time.Microsecond)
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	if roles == nil {
		roles = []string{user.RoleStudent}
	}
	usr := user.User{
		ID:        uuid.NewString(),
		FullName:  fullName,
		Email:     email,
		Roles:     roles,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(context.Background(), usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}

// CreateResponse stores a scored questionnaire for userID completed at `at`.
func CreateResponse(t *testing.T, repo assessment.Repository, userID string, kind assessment.Kind, answers []int, at time.Time) assessment.Response {
	t.Helper()
	total, severity, err := assessment.Evaluate(kind, answers)
	if err != nil {
		t.Fatalf("CreateResponse() failed: %v", err)
	}
	resp, err := repo.CreateResponse(context.Background(), assessment.Response{
		ID:            uuid.NewString(),
		UserID:        userID,
		Kind:          kind,
		Answers:       answers,
		TotalScore:    total,
		SeverityLevel: severity,
		CompletedAt:   at.UTC(),
	})
	if err != nil {
		t.Fatalf("CreateResponse() failed: %v", err)
	}
	return resp
}
