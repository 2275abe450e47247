package apperror

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runHandler(t *testing.T, method string, err error) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	handler := HTTPErrorHandler(slog.Default())

	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler(err, c)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	return resp["error"].(map[string]any)
}

func TestHTTPErrorHandler_AppError(t *testing.T) {
	rec := runHandler(t, http.MethodPost, NewValidation("email is required"))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	errObj := decodeError(t, rec)
	if errObj["code"] != "validation_error" {
		t.Errorf("Code = %v, want validation_error", errObj["code"])
	}
	if errObj["message"] != "email is required" {
		t.Errorf("Message = %v, want 'email is required'", errObj["message"])
	}
}

func TestHTTPErrorHandler_SignupFailedHidesInternal(t *testing.T) {
	rec := runHandler(t, http.MethodPost, ErrSignupFailed.WithInternal(errors.New("api-key rejected")))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusBadGateway)
	}
	errObj := decodeError(t, rec)
	if errObj["message"] != "Failed to process your request. Please try again." {
		t.Errorf("Message = %v", errObj["message"])
	}
	if _, ok := errObj["internal"]; ok {
		t.Error("internal error must not be rendered")
	}
}

func TestHTTPErrorHandler_EchoError_StatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantCode string
	}{
		{"not_found", http.StatusNotFound, "not_found"},
		{"bad_request", http.StatusBadRequest, "bad_request"},
		{"conflict", http.StatusConflict, "conflict"},
		{"method_not_allowed", http.StatusMethodNotAllowed, "method_not_allowed"},
		{"unsupported_media_type", http.StatusUnsupportedMediaType, "unsupported_media_type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runHandler(t, http.MethodGet, echo.NewHTTPError(tt.status, "test message"))

			if rec.Code != tt.status {
				t.Errorf("Status = %d, want %d", rec.Code, tt.status)
			}
			errObj := decodeError(t, rec)
			if errObj["code"] != tt.wantCode {
				t.Errorf("Code = %v, want %v", errObj["code"], tt.wantCode)
			}
			if errObj["message"] != "test message" {
				t.Errorf("Message = %v, want 'test message'", errObj["message"])
			}
		})
	}
}

func TestHTTPErrorHandler_StructuredEchoError(t *testing.T) {
	rec := runHandler(t, http.MethodGet, ErrBusy.ToEchoError())

	if rec.Code != http.StatusConflict {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusConflict)
	}
	if errObj := decodeError(t, rec); errObj["code"] != "busy" {
		t.Errorf("Code = %v, want busy", errObj["code"])
	}
}

func TestHTTPErrorHandler_UnknownError(t *testing.T) {
	rec := runHandler(t, http.MethodGet, errors.New("boom"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	errObj := decodeError(t, rec)
	if errObj["message"] != "An internal error occurred" {
		t.Errorf("Message = %v", errObj["message"])
	}
}

func TestHTTPErrorHandler_HeadRequest(t *testing.T) {
	rec := runHandler(t, http.MethodHead, ErrNotFound)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("HEAD response should have no body, got %q", rec.Body.String())
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	handler := HTTPErrorHandler(slog.Default())

	req := httptest.NewRequest(http.MethodPost, "/api/subscribe", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	c.Response().Header().Set(echo.HeaderContentType, "application/pdf")
	c.Response().WriteHeader(http.StatusOK)
	_, _ = c.Response().Write([]byte("%PDF"))

	handler(ErrSignupFailed, c)

	if rec.Code != http.StatusOK {
		t.Errorf("committed status changed to %d", rec.Code)
	}
	if rec.Body.String() != "%PDF" {
		t.Errorf("body modified after commit: %q", rec.Body.String())
	}
}
