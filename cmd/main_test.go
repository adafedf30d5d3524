package main

import (
	"errors"
	"testing"

	"github.com/twquant/taifexpulse/internal/domain/apperr"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"argument errors exit 2", apperr.New(apperr.KindArgument, "bad flags", nil), 2},
		{"not found exits 1", apperr.New(apperr.KindNotFound, "no file", nil), 1},
		{"parse exits 1", apperr.New(apperr.KindParse, "bad row", nil), 1},
		{"download exits 1", apperr.New(apperr.KindDownload, "http", nil), 1},
		{"untyped exits 1", errors.New("plain"), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCode(tc.err); got != tc.want {
				t.Fatalf("exitCode=%d, want %d", got, tc.want)
			}
		})
	}
}
