package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/lib/pq"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeStateConflict, status: http.StatusUnprocessableEntity, publicMsg: "state transition disallowed", detailsOK: true},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeDependency, status: http.StatusServiceUnavailable, publicMsg: "dependency unavailable", retryable: true, detailsOK: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing foo" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Details() != nil {
		t.Fatalf("details should be nil by default")
	}

	detail := map[string]any{"field": "foo"}
	base.WithDetails(detail)
	if base.Details() == nil {
		t.Fatalf("details should be preserved")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeConflict, cause, "ctx")
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("Wrap did not preserve cause")
	}
	if wrapped.Code() != CodeConflict {
		t.Fatalf("unexpected code %s", wrapped.Code())
	}
}

func TestAsReturnsTypedError(t *testing.T) {
	err := New(CodeForbidden, "no entry")
	if got := As(err); got == nil || got.Code() != CodeForbidden {
		t.Fatalf("As failed to return typed error")
	}
	if As(nil) != nil {
		t.Fatalf("As(nil) should return nil")
	}
}

func TestIsCodeWalksChain(t *testing.T) {
	inner := New(CodeNotFound, "voucher not found")
	outer := fmt.Errorf("load voucher: %w", inner)
	if !IsCode(outer, CodeNotFound) {
		t.Fatalf("expected IsCode to find NOT_FOUND in chain")
	}
	if IsCode(outer, CodeConflict) {
		t.Fatalf("unexpected CONFLICT match")
	}
	if IsCode(stdErrors.New("plain"), CodeInternal) {
		t.Fatalf("plain errors carry no code")
	}
}

func TestDumpExtractsPostgresDiagnostics(t *testing.T) {
	pgErr := &pq.Error{Code: "23505", Constraint: "vouchers_code_key", Table: "vouchers", Message: "duplicate key value"}
	err := Wrap(CodeConflict, pgErr, "create voucher")

	dump := Dump(err)
	if dump.Code != CodeConflict {
		t.Fatalf("expected conflict code, got %s", dump.Code)
	}
	if dump.PGCode != "23505" || dump.PGConstraint != "vouchers_code_key" || dump.PGTable != "vouchers" {
		t.Fatalf("unexpected pg fields %+v", dump)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected two chain entries, got %v", dump.Chain)
	}
}

func TestFieldsErr(t *testing.T) {
	fields := Fields{}
	if fields.Err() != nil {
		t.Fatal("expected nil error for empty fields")
	}
	fields.Add("code", "is required")
	fields.Add("code", "ignored")
	fields.Add("discount_value", "must be positive")

	err := fields.Err()
	typed := As(err)
	if typed == nil || typed.Code() != CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("unexpected details type %T", typed.Details())
	}
	if details["code"] != "is required" || len(details) != 2 {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestPublicHidesInternalMessages(t *testing.T) {
	msg, details := Wrap(CodeInternal, stdErrors.New("dial tcp"), "query vendors").
		WithDetails(map[string]string{"sql": "select"}).
		Public()
	if msg != "internal server error" || details != nil {
		t.Fatalf("internal error leaked %q %v", msg, details)
	}

	msg, details = New(CodeStateConflict, "vendor is suspended").
		WithDetails(map[string]string{"from": "suspended"}).
		Public()
	if msg != "vendor is suspended" || details == nil {
		t.Fatalf("expected state conflict message and details, got %q %v", msg, details)
	}
}

func TestIsCodeFindsInnerCodeUnderDifferentOuter(t *testing.T) {
	inner := New(CodeNotFound, "vendor not found")
	outer := Wrap(CodeDependency, inner, "load vendor")
	if !IsCode(outer, CodeNotFound) {
		t.Fatal("expected NOT_FOUND below DEPENDENCY_ERROR")
	}
}

func TestDumpLogFieldsOmitEmpty(t *testing.T) {
	fields := Dump(New(CodeValidation, "bad")).LogFields()
	if _, ok := fields["pg_code"]; ok {
		t.Fatalf("unexpected pg_code in %v", fields)
	}
	if fields["error_code"] != string(CodeValidation) {
		t.Fatalf("unexpected fields %v", fields)
	}
}
