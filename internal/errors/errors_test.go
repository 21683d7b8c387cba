package errors

import (
	"errors"
	"testing"
)

func TestMalformedRequestError(t *testing.T) {
	err := NewMalformedRequest("column_num out of range")

	if err.HTTPStatus() != 400 {
		t.Errorf("expected HTTPStatus 400, got %d", err.HTTPStatus())
	}

	expected := "malformed request: column_num out of range"
	if err.Error() != expected {
		t.Errorf("expected error message %q, got %q", expected, err.Error())
	}
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFound("route /bogus")

	if err.HTTPStatus() != 404 {
		t.Errorf("expected HTTPStatus 404, got %d", err.HTTPStatus())
	}
}

func TestInternalErrorUnwraps(t *testing.T) {
	underlying := errors.New("panic recovered")
	err := NewInternalError("ranking", underlying)

	if err.HTTPStatus() != 500 {
		t.Errorf("expected HTTPStatus 500, got %d", err.HTTPStatus())
	}
	if !errors.Is(err, underlying) {
		t.Errorf("expected error to unwrap to underlying error")
	}
}

func TestSubserverError(t *testing.T) {
	err := NewSubserverError("textDocument/completion", -32600, "invalid request")

	expected := "subserver error calling textDocument/completion: -32600 invalid request"
	if err.Error() != expected {
		t.Errorf("expected error message %q, got %q", expected, err.Error())
	}
}

func TestTransientFilesystemErrorUnwraps(t *testing.T) {
	underlying := errors.New("permission denied")
	err := NewTransientFilesystem("/proj/src", underlying)

	if !errors.Is(err, underlying) {
		t.Errorf("expected error to unwrap to underlying error")
	}
}

func TestMultiErrorFiltersNilAndFormats(t *testing.T) {
	a := errors.New("first")
	b := errors.New("second")
	merr := NewMultiError([]error{nil, a, nil, b})

	if len(merr.Errors) != 2 {
		t.Fatalf("expected 2 errors after filtering nils, got %d", len(merr.Errors))
	}

	expected := "2 errors: [first second]"
	if merr.Error() != expected {
		t.Errorf("expected error message %q, got %q", expected, merr.Error())
	}
}

func TestMultiErrorSingleDelegates(t *testing.T) {
	a := errors.New("only one")
	merr := NewMultiError([]error{a})

	if merr.Error() != "only one" {
		t.Errorf("expected single error to delegate its message, got %q", merr.Error())
	}
}
