package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/notes-api-nosql/internal/application/auth"
	"github.com/notes-api-nosql/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) RequestOTP(ctx context.Context, req auth.RequestOTPRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAuthService) SignUp(ctx context.Context, req auth.SignUpRequest) (*domain.Account, string, error) {
	args := m.Called(ctx, req)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func (m *mockAuthService) SignIn(ctx context.Context, req auth.SignInRequest) (*domain.Account, string, error) {
	args := m.Called(ctx, req)
	if a, _ := args.Get(0).(*domain.Account); a != nil {
		return a, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestRequestOTP_Success(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("RequestOTP", mock.Anything, auth.RequestOTPRequest{Email: "a@x.com"}).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/request-otp",
		strings.NewReader(`{"email":"a@x.com"}`))
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).RequestOTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, msgOTPSent, body["message"])
	svc.AssertExpectations(t)
}

func TestRequestOTP_InvalidEmail_ServiceNotCalled(t *testing.T) {
	svc := &mockAuthService{}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/request-otp",
		strings.NewReader(`{"email":"not-an-email"}`))
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).RequestOTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "RequestOTP", mock.Anything, mock.Anything)
}

func TestRequestOTP_DeliveryFailure(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("RequestOTP", mock.Anything, mock.Anything).
		Return(fmt.Errorf("smtp down: %w", domain.ErrUnavailable))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/request-otp",
		strings.NewReader(`{"email":"a@x.com"}`))
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).RequestOTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, msgOTPDeliveryFailed, body["message"])
}

func TestSignUp_Success(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("SignUp", mock.Anything, auth.SignUpRequest{
		Name: "Alice", Email: "a@x.com", DateOfBirth: "1990-05-01", OTP: "123456",
	}).Return(&domain.Account{UserID: "u1", Name: "Alice", Email: "a@x.com"}, "tok123", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(
		`{"name":"Alice","email":"a@x.com","dateOfBirth":"1990-05-01","otp":"123456"}`))
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).SignUp(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, msgAccountCreated, body["message"])
	assert.Equal(t, "tok123", body["token"])
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "u1", user["id"])
	assert.Equal(t, "a@x.com", user["email"])
}

func TestSignUp_InvalidOTP(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("SignUp", mock.Anything, mock.Anything).
		Return(nil, "", fmt.Errorf("invalid or expired OTP: %w", domain.ErrUnauthorized))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(
		`{"name":"Alice","email":"a@x.com","dateOfBirth":"1990-05-01","otp":"000000"}`))
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).SignUp(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, msgInvalidOTP, body["message"])
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("SignUp", mock.Anything, mock.Anything).
		Return(nil, "", fmt.Errorf("email already registered: %w", domain.ErrConflict))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(
		`{"name":"Alice","email":"a@x.com","dateOfBirth":"1990-05-01","otp":"123456"}`))
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).SignUp(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, msgAccountExists, body["message"])
}

func TestSignUp_MalformedBody(t *testing.T) {
	svc := &mockAuthService{}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(`{`))
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).SignUp(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything)
}

func TestSignIn_Success(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("SignIn", mock.Anything, auth.SignInRequest{Email: "a@x.com", OTP: "123456"}).
		Return(&domain.Account{UserID: "u1", Name: "Alice", Email: "a@x.com"}, "tok456", nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin",
		strings.NewReader(`{"email":"a@x.com","otp":"123456"}`))
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).SignIn(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, msgLoginSuccessful, body["message"])
	assert.Equal(t, "tok456", body["token"])
}

func TestSignIn_NoAccount(t *testing.T) {
	svc := &mockAuthService{}
	svc.On("SignIn", mock.Anything, mock.Anything).
		Return(nil, "", fmt.Errorf("no account with this email: %w", domain.ErrNotFound))

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin",
		strings.NewReader(`{"email":"a@x.com","otp":"123456"}`))
	rr := httptest.NewRecorder()
	NewAuthHandler(svc).SignIn(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, msgNoSuchAccount, body["message"])
}

func TestMe_ReturnsIdentityFromContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = withIdentity(req, domain.Identity{ID: "u1", Name: "Alice", Email: "a@x.com"})
	rr := httptest.NewRecorder()
	NewAuthHandler(&mockAuthService{}).Me(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decodeBody(t, rr)
	assert.Equal(t, true, body["success"])
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "u1", user["id"])
	assert.Equal(t, "Alice", user["name"])
}
