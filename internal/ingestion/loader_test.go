package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/text/encoding/traditionalchinese"

	"github.com/twquant/taifexpulse/internal/domain/apperr"
)

const (
	validHeader = "成交日期,商品代號,到期月份(週別),成交時間,成交價格,成交數量\n"
	validRow    = "20250102,MTX     ,202501  ,084500,23100,2\n"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return p
}

func TestLoadFile_TableDriven(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name     string
		content  string
		wantErr  bool
		wantKind apperr.Kind
		wantRows int
	}{
		{name: "ok single row", content: validHeader + validRow, wantRows: 1},
		{name: "ok extra passthrough column", content: "成交日期,商品代號,到期月份(週別),成交時間,成交價格,近月價格\n20250102,MTX,202501,084500,23100,0\n", wantRows: 1},
		{name: "missing required column", content: "成交日期,商品代號,成交時間,成交價格\n20250102,MTX,084500,23100\n", wantErr: true, wantKind: apperr.KindParse},
		{name: "ragged row", content: validHeader + "20250102,MTX\n", wantErr: true, wantKind: apperr.KindParse},
		{name: "empty file", content: "", wantErr: true, wantKind: apperr.KindParse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeTempFile(t, dir, "file.csv", tc.content)
			raw, err := LoadFile(context.Background(), path, "utf8")
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if got := apperr.KindOf(err); got != tc.wantKind {
					t.Fatalf("kind: want %v got %v (%v)", tc.wantKind, got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if len(raw.Rows) != tc.wantRows {
				t.Fatalf("rows: want %d got %d", tc.wantRows, len(raw.Rows))
			}
		})
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), "utf8")
	if err == nil {
		t.Fatalf("expected error")
	}
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("expected KindNotFound, got %v", err)
	}
}

func TestLoadFile_Big5(t *testing.T) {
	enc := traditionalchinese.Big5.NewEncoder()
	encoded, err := enc.String(validHeader + validRow)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	path := writeTempFile(t, t.TempDir(), "big5.csv", encoded)

	raw, err := LoadFile(context.Background(), path, "big5")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(raw.Rows) != 1 {
		t.Fatalf("rows: want 1 got %d", len(raw.Rows))
	}
	if strings.TrimSpace(raw.Rows[0][1]) != "MTX" {
		t.Fatalf("unexpected product cell: %q", raw.Rows[0][1])
	}
}

func TestLoadFile_ContextCanceled(t *testing.T) {
	// many rows to ensure the loop would run if not canceled
	var sb strings.Builder
	sb.WriteString(validHeader)
	for i := 0; i < 1000; i++ {
		sb.WriteString(validRow)
	}
	path := writeTempFile(t, t.TempDir(), "big.csv", sb.String())

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // immediately canceled
	if _, err := LoadFile(ctx, path, "utf8"); err == nil {
		t.Fatalf("expected context canceled error")
	}
}
