package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DjordjeVuckovic/ir-explorer/internal/apperr"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewValidation(t *testing.T) {
	err := apperr.NewValidation("field is required")

	if err.Error() != "field is required" {
		t.Errorf("expected 'field is required', got %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Errorf("expected nil unwrap, got %v", err.Unwrap())
	}
}

func TestNewValidationWrap(t *testing.T) {
	inner := fmt.Errorf("parse failed")
	err := apperr.NewValidationWrap("invalid run index", inner)

	if err.Error() != "invalid run index: parse failed" {
		t.Errorf("expected 'invalid run index: parse failed', got %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Error("expected Unwrap to return inner error")
	}
}

func TestLookupError_SurvivesFmtWrapping(t *testing.T) {
	original := apperr.NewLookup("query", "1048585")

	wrapped := fmt.Errorf("document info: %w", original)
	doubleWrapped := fmt.Errorf("run 0: %w", wrapped)

	var le *apperr.LookupError
	if !errors.As(doubleWrapped, &le) {
		t.Fatal("errors.As should find LookupError through double wrapping")
	}
	assert.Equal(t, "query", le.Kind)
	assert.Equal(t, "1048585", le.Key)
	assert.Equal(t, `query "1048585" not found`, le.Error())
}

func TestConfigurationError_Message(t *testing.T) {
	assert.Equal(t,
		"configuration error: run 2: kernels_mus: must not be empty",
		apperr.NewConfiguration(2, "kernels_mus", "must not be empty").Error())
	assert.Equal(t,
		"configuration error: runs: no runs configured",
		apperr.NewConfiguration(-1, "runs", "no runs configured").Error())
}

func TestMalformedInputError_Message(t *testing.T) {
	inner := errors.New("expected 4 fields, got 2")
	err := apperr.NewMalformedInput("qrels.txt", 7, "1 0", inner)

	assert.Equal(t, `malformed record in qrels.txt at line 7: "1 0": expected 4 fields, got 2`, err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "validation", err: apperr.NewValidation("bad run"), wantCode: http.StatusBadRequest},
		{name: "lookup", err: fmt.Errorf("wrap: %w", apperr.NewLookup("document", "7")), wantCode: http.StatusNotFound},
		{name: "malformed", err: apperr.NewMalformedInput("artifact", 0, "", nil), wantCode: http.StatusUnprocessableEntity},
		{name: "echo http error", err: echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), wantCode: http.StatusMethodNotAllowed},
		{name: "plain", err: errors.New("boom"), wantCode: http.StatusInternalServerError},
	}

	handler := apperr.GlobalErrorHandler()
	e := echo.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}
