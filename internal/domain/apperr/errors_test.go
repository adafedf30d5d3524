package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	e := New(KindParse, "oops", nil)
	if e.Error() != "oops" {
		t.Fatalf("want 'oops' got %q", e.Error())
	}
	e2 := New(KindParse, "oops", errors.New("bad"))
	if e2.Error() != "oops: bad" {
		t.Fatalf("want 'oops: bad' got %q", e2.Error())
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{"typed", New(KindArgument, "x", nil), KindArgument},
		{"wrapped", fmt.Errorf("outer: %w", New(KindNotFound, "x", nil)), KindNotFound},
		{"untyped", errors.New("plain"), KindUnknown},
		{"nil", nil, KindUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.err); got != tc.want {
				t.Fatalf("KindOf=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("cause")
	e := New(KindIO, "msg", cause)
	if !errors.Is(e, cause) {
		t.Fatalf("expected errors.Is to see the cause")
	}
}
