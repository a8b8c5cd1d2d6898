package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/craftora/craftora-backend/internal/pkg/apperr"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/offers/", nil)
	return c, w
}

func TestRespondAppErrorMasksInternalCauses(t *testing.T) {
	c, w := newTestContext(t)

	cause := errors.New("connect to postgres://user:hunter2@db:5432 failed")
	RespondAppError(c, apperr.Internal(cause))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	if body["detail"] != "Internal server error." {
		t.Fatalf("expected generic detail, got %q", body["detail"])
	}
	if strings.Contains(w.Body.String(), "hunter2") {
		t.Fatalf("internal cause leaked to the wire: %s", w.Body.String())
	}
	// The cause stays on the context for the request logger.
	if len(c.Errors) != 1 {
		t.Fatalf("expected cause attached to context, got %d errors", len(c.Errors))
	}
}

func TestRespondAppErrorMasksUnwrappedErrors(t *testing.T) {
	c, w := newTestContext(t)

	RespondAppError(c, errors.New("save offer: constraint violated"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "constraint") {
		t.Fatalf("internal cause leaked to the wire: %s", w.Body.String())
	}
}

func TestRespondAppErrorValidationFields(t *testing.T) {
	c, w := newTestContext(t)

	RespondAppError(c, apperr.Validation("title", "This field may not be blank."))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var fields map[string][]string
	if err := json.Unmarshal(w.Body.Bytes(), &fields); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	if len(fields["title"]) != 1 || fields["title"][0] != "This field may not be blank." {
		t.Fatalf("wrong field errors: %s", w.Body.String())
	}
}

func TestRespondAppErrorDetailShapes(t *testing.T) {
	c, w := newTestContext(t)

	RespondAppError(c, apperr.NotFound("User is not a business user"))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	if body["detail"] != "User is not a business user" {
		t.Fatalf("wrong detail: %q", body["detail"])
	}
}
