package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/epkadmin/internal/models"
	"github.com/example/epkadmin/internal/services"
	"github.com/example/epkadmin/internal/store"
)

type mockAuth struct{ mock.Mock }

func (m *mockAuth) Signup(ctx context.Context, in services.SignupInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *mockAuth) VerifyEmail(ctx context.Context, email, otp string) error {
	return m.Called(ctx, email, otp).Error(0)
}

func (m *mockAuth) Login(ctx context.Context, identifier, password string) (*services.Session, error) {
	args := m.Called(ctx, identifier, password)
	session, _ := args.Get(0).(*services.Session)
	return session, args.Error(1)
}

func (m *mockAuth) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuth) ResetPassword(ctx context.Context, in services.ResetPasswordInput) error {
	return m.Called(ctx, in).Error(0)
}

func (m *mockAuth) ValidateOtp(ctx context.Context, email, otp string) error {
	return m.Called(ctx, email, otp).Error(0)
}

type mockEPKs struct{ mock.Mock }

func (m *mockEPKs) List(ctx context.Context, q store.EPKQuery) ([]models.EPK, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.EPK), args.Get(1).(int64), args.Error(2)
}

func (m *mockEPKs) Get(ctx context.Context, id string) (*models.EPK, error) {
	args := m.Called(ctx, id)
	epk, _ := args.Get(0).(*models.EPK)
	return epk, args.Error(1)
}

func (m *mockEPKs) GetBySlug(ctx context.Context, slug string) (*models.EPK, error) {
	args := m.Called(ctx, slug)
	epk, _ := args.Get(0).(*models.EPK)
	return epk, args.Error(1)
}

func (m *mockEPKs) Create(ctx context.Context, in services.CreateEPKInput) (*models.EPK, error) {
	args := m.Called(ctx, in)
	epk, _ := args.Get(0).(*models.EPK)
	return epk, args.Error(1)
}

func (m *mockEPKs) Update(ctx context.Context, id string, patch []byte) (*models.EPK, error) {
	args := m.Called(ctx, id, patch)
	epk, _ := args.Get(0).(*models.EPK)
	return epk, args.Error(1)
}

func (m *mockEPKs) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockEPKs) TogglePublish(ctx context.Context, id string) (*models.EPK, error) {
	args := m.Called(ctx, id)
	epk, _ := args.Get(0).(*models.EPK)
	return epk, args.Error(1)
}

func (m *mockEPKs) BulkUpdate(ctx context.Context, ids []string, updates map[string]interface{}) (int64, error) {
	args := m.Called(ctx, ids, updates)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEPKs) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEPKs) Import(ctx context.Context, rows []services.ImportRow) services.ImportResult {
	return m.Called(ctx, rows).Get(0).(services.ImportResult)
}

func (m *mockEPKs) Stats(ctx context.Context) (*store.EPKStats, error) {
	args := m.Called(ctx)
	stats, _ := args.Get(0).(*store.EPKStats)
	return stats, args.Error(1)
}

func (m *mockEPKs) Template() services.ImportTemplate {
	return m.Called().Get(0).(services.ImportTemplate)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) List(ctx context.Context, q store.ListQuery) ([]models.AppUser, int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]models.AppUser), args.Get(1).(int64), args.Error(2)
}

func (m *mockUsers) Get(ctx context.Context, id string) (*models.AppUser, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.AppUser)
	return user, args.Error(1)
}

func (m *mockUsers) Create(ctx context.Context, body []byte) (*models.AppUser, error) {
	args := m.Called(ctx, body)
	user, _ := args.Get(0).(*models.AppUser)
	return user, args.Error(1)
}

func (m *mockUsers) Update(ctx context.Context, id string, patch []byte) (*models.AppUser, error) {
	args := m.Called(ctx, id, patch)
	user, _ := args.Get(0).(*models.AppUser)
	return user, args.Error(1)
}

func (m *mockUsers) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUsers) BulkUpdate(ctx context.Context, ids []string, updates map[string]interface{}) (int64, error) {
	args := m.Called(ctx, ids, updates)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUsers) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func newTestApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}
