package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"

	"github.com/twquant/taifexpulse/internal/domain/apperr"
)

// Required column headers of a TAIFEX daily futures file. They are located by
// name, not position: the exchange occasionally reorders columns and always
// appends extras, so anything beyond these is treated as passthrough.
const (
	colTradeDate   = "成交日期"
	colProductCode = "商品代號"
	colExpiryMonth = "到期月份(週別)"
	colTradeTime   = "成交時間"
	colPrice       = "成交價格"
	colVolume      = "成交數量" // optional
)

// RawTable is the untyped, all-or-nothing result of loading one CSV file.
// Rows keep file order; cells keep their raw (untrimmed) text until
// Normalize runs.
type RawTable struct {
	Header []string
	Rows   [][]string

	cols columns
}

// columns maps the interpreted headers to their positions in the file.
// volume is -1 when the column is absent; extra lists every other position.
type columns struct {
	date    int
	product int
	expiry  int
	clock   int
	price   int
	volume  int
	extra   []int
}

// LoadFile reads the whole CSV file at path into a RawTable.
//
// The reader is wrapped in a Big5 decoder when encoding is "big5" (the
// encoding TAIFEX publishes in); "utf8" reads the bytes as-is.
//
// Failure modes:
//   - path does not exist → KindNotFound
//   - unreadable CSV structure, or a required column missing → KindParse
//
// There are no partial loads: any error discards the table entirely.
func LoadFile(ctx context.Context, path, encoding string) (*RawTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.New(apperr.KindNotFound, fmt.Sprintf("input file not found: %s", path), err)
		}
		return nil, apperr.New(apperr.KindIO, fmt.Sprintf("open %s", path), err)
	}
	defer func() { _ = f.Close() }()

	var src io.Reader = f
	if encoding == "big5" {
		src = transform.NewReader(f, traditionalchinese.Big5.NewDecoder())
	}

	r := csv.NewReader(src)
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, apperr.New(apperr.KindParse, "read header", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	t := &RawTable{Header: header, cols: cols}
	line := 1 // header already read

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, apperr.New(apperr.KindParse, fmt.Sprintf("read line after %d", line), err)
		}
		line++
		t.Rows = append(t.Rows, rec)
	}

	return t, nil
}

// locateColumns resolves the interpreted headers to positions. All required
// columns must be present; 成交數量 is optional (-1 when absent); everything
// else becomes passthrough.
func locateColumns(header []string) (columns, error) {
	c := columns{date: -1, product: -1, expiry: -1, clock: -1, price: -1, volume: -1}

	for i, h := range header {
		switch h {
		case colTradeDate:
			c.date = i
		case colProductCode:
			c.product = i
		case colExpiryMonth:
			c.expiry = i
		case colTradeTime:
			c.clock = i
		case colPrice:
			c.price = i
		case colVolume:
			c.volume = i
		default:
			c.extra = append(c.extra, i)
		}
	}

	var missing []string
	for _, req := range []struct {
		name string
		pos  int
	}{
		{colTradeDate, c.date},
		{colProductCode, c.product},
		{colExpiryMonth, c.expiry},
		{colTradeTime, c.clock},
		{colPrice, c.price},
	} {
		if req.pos < 0 {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return c, apperr.New(apperr.KindParse,
			fmt.Sprintf("required columns missing from header: %s", strings.Join(missing, ", ")), nil)
	}

	return c, nil
}
