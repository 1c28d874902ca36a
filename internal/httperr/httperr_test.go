package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func render(err error) (*httptest.ResponseRecorder, HTTPError) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	WriteError(c, err)

	var body HTTPError
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestWriteError_Business(t *testing.T) {
	w, body := render(fmt.Errorf("booking: %w", ErrBusiness("slot_already_booked")))

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if body.Code != "slot_already_booked" || body.Message == "" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestWriteError_Internal(t *testing.T) {
	w, body := render(errors.New("connection refused"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body.Code != "internal_error" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestCatalogMessagesAreDistinct(t *testing.T) {
	seen := map[string]string{}
	for code, d := range catalog {
		if other, dup := seen[d.message]; dup {
			t.Fatalf("codes %s and %s share a message", code, other)
		}
		seen[d.message] = code
	}
}

func TestIsBusiness(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrBusiness("not_authorized"))
	if !IsBusiness(err, "not_authorized") {
		t.Fatal("expected wrapped business error to match")
	}
	if IsBusiness(err, "invalid_date") {
		t.Fatal("unexpected match on a different code")
	}
}
