package app

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"placement-prep/internal/config"
	"placement-prep/internal/database"
	"placement-prep/internal/delivery/http/middleware"
	"placement-prep/internal/domain/user"
	"placement-prep/internal/pkg/jwt"
	"placement-prep/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errNoDB = errors.New("no database in tests")

type fakeDB struct{}

func (fakeDB) Ping(context.Context) error { return nil }
func (fakeDB) Close() error               { return nil }
func (fakeDB) SQLDB() *sql.DB             { return nil }

func (fakeDB) Exec(context.Context, string, ...any) (int64, error) {
	return 0, errNoDB
}

func (fakeDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errNoDB
}

func (fakeDB) QueryRow(context.Context, string, ...any) database.Row {
	return errRow{}
}

func (fakeDB) Begin(context.Context) (database.Tx, error) {
	return nil, errNoDB
}

type errRow struct{}

func (errRow) Scan(...any) error { return errNoDB }

func testContainer() *Container {
	return &Container{
		Config: config.Config{
			App: config.AppConfig{AppName: "placement-test"},
			JWT: config.JWTConfig{
				AccessSecret:     "access",
				RefreshSecret:    "refresh",
				AccessExpiresIn:  time.Hour,
				RefreshExpiresIn: time.Hour,
			},
			Upload: config.UploadConfig{MaxResumeBytes: 1024},
		},
		Logger: zap.NewNop(),
		DB:     fakeDB{},
		Hub:    ws.NewHub(nil),
	}
}

func TestBootstrap_RequiresDB(t *testing.T) {
	_, _, err := Bootstrap(&Container{})
	assert.Error(t, err)
}

func TestNew_HealthAndGuards(t *testing.T) {
	a, cleanup, err := Bootstrap(testContainer())
	require.NoError(t, err)
	defer func() { _ = cleanup() }()

	resp, err := a.Fiber.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.HeaderRequestID))

	var env struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, true, env.Data["database_healthy"])
	assert.Equal(t, false, env.Data["redis_healthy"])

	svc := jwt.NewHMACService("access", "refresh", time.Hour, time.Hour)
	student, err := svc.GenerateAccessToken(uuid.New(), "s@example.com", user.RoleStudent)
	require.NoError(t, err)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		status int
	}{
		{"chat needs a token", "POST", "/api/chat", "", 401},
		{"admin route rejects students", "POST", "/api/slots", student, 403},
		{"course writes are admin only", "DELETE", "/api/courses/" + uuid.NewString(), student, 403},
		{"unknown route", "GET", "/api/nope", "", 404},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set(middleware.HeaderAuthToken, tt.token)
			}
			resp, err := a.Fiber.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestBodyLimit(t *testing.T) {
	assert.Equal(t, defaultBodyLimit, bodyLimit(config.UploadConfig{MaxResumeBytes: 1024}))
	assert.Equal(t, 9*1024*1024, bodyLimit(config.UploadConfig{MaxResumeBytes: 8 * 1024 * 1024}))
}

func TestListenAddr(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"8080", ":8080", false},
		{":9000", ":9000", false},
		{" ", "", true},
	}
	for _, tt := range tests {
		got, err := ListenAddr(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("ListenAddr(%q) = %q, %v", tt.in, got, err)
		}
	}
}
