package errors

import (
	"errors"
	"testing"
)

var errBase = errors.New("base error")

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}

	err := Wrap(errBase, "loading live.txt")
	if err.Error() != "loading live.txt: base error" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !Is(err, errBase) {
		t.Error("wrapped error should match its cause")
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "host %s", "a") != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	err := Wrapf(errBase, "host %s attempt %d", "admin.example.com", 2)
	want := "host admin.example.com attempt 2: base error"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestMark(t *testing.T) {
	if Mark(nil, ErrTimeout) != nil {
		t.Error("Mark(nil) should return nil")
	}

	err := Mark(errBase, ErrRateLimit)
	if !Is(err, ErrRateLimit) {
		t.Error("marked error should match the kind")
	}
	if !Is(err, errBase) {
		t.Error("marked error should keep the original chain")
	}
}

func TestAs(t *testing.T) {
	var target *wrappedError
	err := Wrap(errBase, "ctx")
	if !As(err, &target) {
		t.Fatal("As should find *wrappedError")
	}
	if target.msg != "ctx" {
		t.Errorf("unexpected msg %q", target.msg)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"timeout", Wrap(ErrTimeout, "crt.sh"), true},
		{"rate limit", ErrRateLimit, true},
		{"gateway", Wrap(ErrServiceUnavailable, "openai"), true},
		{"unauthorized", ErrUnauthorized, false},
		{"not found", ErrNotFound, false},
		{"plain", errBase, false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	if Join(nil, nil) != nil {
		t.Error("Join of nils should be nil")
	}
	joined := Join(ErrNotFound, ErrInvalidResponse)
	if !Is(joined, ErrNotFound) || !Is(joined, ErrInvalidResponse) {
		t.Error("joined error should match both members")
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf("decode %s: %w", "analysis.json", ErrInvalidResponse)
	if !Is(err, ErrInvalidResponse) {
		t.Error("Errorf with %w should keep the chain")
	}
}
