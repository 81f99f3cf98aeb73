package problem

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewAndWithErrors(t *testing.T) {
	fieldErrors := []FieldError{{Field: "name", Message: "required"}}
	p := New(http.StatusBadRequest, "bad-request", "Bad Request", "details").WithErrors(fieldErrors)

	if got, want := p.Type, BaseURI+"/bad-request"; got != want {
		t.Fatalf("unexpected type: got %q want %q", got, want)
	}
	if p.Status != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", p.Status)
	}
	if len(p.Errors) != 1 || p.Errors[0] != fieldErrors[0] {
		t.Fatalf("errors not set: %+v", p.Errors)
	}
}

func TestProblemWrite(t *testing.T) {
	resp := httptest.NewRecorder()
	p := BadRequest("invalid")
	p.Write(resp)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", resp.Code)
	}
	if got := resp.Header().Get("Content-Type"); got != ContentType {
		t.Fatalf("missing content type: %s", got)
	}

	var decoded Problem
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if decoded.Title != "Bad Request" || decoded.Detail != "invalid" {
		t.Fatalf("unexpected payload: %+v", decoded)
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		p      *Problem
		status int
		typ    string
	}{
		{"not found", NotFound("x"), http.StatusNotFound, "not-found"},
		{"validation", ValidationError("x", nil), http.StatusUnprocessableEntity, "validation-error"},
		{"store error", StoreError("x"), http.StatusInternalServerError, "store-error"},
		{"unavailable", ServiceUnavailable("x"), http.StatusServiceUnavailable, "service-unavailable"},
		{"bad gateway", BadGateway("x"), http.StatusBadGateway, "bad-gateway"},
		{"internal", InternalError("x"), http.StatusInternalServerError, "internal-error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.p.Status != tt.status {
				t.Errorf("status = %d, want %d", tt.p.Status, tt.status)
			}
			if tt.p.Type != BaseURI+"/"+tt.typ {
				t.Errorf("type = %q", tt.p.Type)
			}
		})
	}
}
