package errx

import (
	"errors"
	"net/http"
	"testing"
)

var testRegistry = NewRegistry("TEST")

var (
	codeMissing = testRegistry.Register("MISSING", TypeNotFound, http.StatusNotFound, "Thing not found")
	codeBroken  = testRegistry.Register("BROKEN", TypeInternal, http.StatusInternalServerError, "Thing broke")
)

func TestRegistryNew(t *testing.T) {
	err := testRegistry.New(codeMissing)
	if err.Code != "TEST.MISSING" {
		t.Fatalf("code = %q, want TEST.MISSING", err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", err.HTTPStatus)
	}
	if err.Type != TypeNotFound {
		t.Fatalf("type = %s, want NOT_FOUND", err.Type)
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	r := NewRegistry("DUP")
	r.Register("X", TypeInternal, 500, "x")

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate code")
		}
	}()
	r.Register("X", TypeInternal, 500, "x")
}

func TestErrorsIsMatchesByCode(t *testing.T) {
	err := Wrap(testRegistry.New(codeMissing).WithDetail("id", "42"), "lookup failed", TypeInternal)

	if !errors.Is(err, testRegistry.New(codeMissing)) {
		t.Fatal("errors.Is should match wrapped registry error by code")
	}
	if errors.Is(err, testRegistry.New(codeBroken)) {
		t.Fatal("errors.Is should not match a different code")
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Fatalf("wrapped status = %d, want inner 404", err.HTTPStatus)
	}
	if err.Details["id"] != "42" {
		t.Fatalf("details not carried over: %v", err.Details)
	}
}

func TestWrapPlainError(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Wrap(cause, "failed to reach store", TypeExternal)

	if !errors.Is(err, cause) {
		t.Fatal("cause should be reachable through Unwrap")
	}
	if err.HTTPStatus != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", err.HTTPStatus)
	}
	if Wrap(nil, "noop", TypeInternal) != nil {
		t.Fatal("Wrap(nil) should return nil")
	}
}

func TestToHTTPResponse(t *testing.T) {
	resp := testRegistry.New(codeBroken).WithDetails(map[string]any{"step": "flush"}).ToHTTPResponse()

	if resp["code"] != "TEST.BROKEN" {
		t.Fatalf("code = %v", resp["code"])
	}
	details, ok := resp["details"].(map[string]any)
	if !ok || details["step"] != "flush" {
		t.Fatalf("details = %v", resp["details"])
	}
}

func TestIsType(t *testing.T) {
	if !IsType(testRegistry.New(codeMissing), TypeNotFound) {
		t.Fatal("IsType should report NOT_FOUND")
	}
	if IsType(errors.New("plain"), TypeNotFound) {
		t.Fatal("IsType should be false for plain errors")
	}
}
