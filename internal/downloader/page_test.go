package downloader

import (
	"strings"
	"testing"

	"golang.org/x/net/html"
)

const pageFixture = `<html><body>
<table><tr><th>something</th><th>else</th></tr></table>
<table>
  <tr><th>時間</th><th>日期</th><th>下載(*.rpt)</th><th>下載(*.csv)</th></tr>
  <tr>
    <td>23:59</td>
    <td> 2025/01/02 </td>
    <td><input type="button" onclick="DownFile('https://example.test/Daily_2025_01_02.rpt.zip')"></td>
    <td><input type="button" onclick="DownFile('https://example.test/Daily_2025_01_02.csv.zip')"></td>
  </tr>
  <tr>
    <td>23:59</td>
    <td>2025/01/03</td>
    <td><input type="button" onclick="DownFile('https://example.test/Daily_2025_01_03.rpt.zip')"></td>
    <td><input type="button" onclick="DownFile('https://example.test/Daily_2025_01_03.csv.zip')"></td>
  </tr>
</table>
</body></html>`

func parseFixture(t *testing.T) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(pageFixture))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc
}

func TestFindSalesTable(t *testing.T) {
	table := findSalesTable(parseFixture(t))
	if table == nil {
		t.Fatalf("sales table not found")
	}
	// the first table has the wrong headers and must be skipped
	rows := findAll(table, "tr")
	if len(rows) != 3 {
		t.Fatalf("wrong table selected: %d rows", len(rows))
	}
}

func TestFindSalesTable_Absent(t *testing.T) {
	doc, err := html.Parse(strings.NewReader("<html><body><table><tr><td>x</td></tr></table></body></html>"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if findSalesTable(doc) != nil {
		t.Fatalf("expected nil for page without the listing table")
	}
}

func TestCSVLinkForDate(t *testing.T) {
	table := findSalesTable(parseFixture(t))

	cases := []struct {
		date string
		want string
		ok   bool
	}{
		{"2025/01/02", "https://example.test/Daily_2025_01_02.csv.zip", true},
		{"2025/01/03", "https://example.test/Daily_2025_01_03.csv.zip", true},
		{"2025/01/04", "", false},
		{"2025-01-02", "", false}, // only exact page-format dates match
	}
	for _, tc := range cases {
		got, ok := csvLinkForDate(table, tc.date)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("csvLinkForDate(%q) = %q,%v; want %q,%v", tc.date, got, ok, tc.want, tc.ok)
		}
	}
}

func TestURLFromOnclick(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"DownFile('https://x/y.zip')", "https://x/y.zip", true},
		{"window.open('/rel/path.zip', '_blank')", "/rel/path.zip", true},
		{"noQuotesHere()", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := urlFromOnclick(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("urlFromOnclick(%q) = %q,%v; want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
