package downloader

import (
	"strings"

	"golang.org/x/net/html"
)

// requiredHeaders identifies the daily-sales table on the TAIFEX page.
// The page carries several tables; only the one with exactly these column
// headers, in this order, is the download listing.
var requiredHeaders = []string{"時間", "日期", "下載(*.rpt)", "下載(*.csv)"}

// Positions within a listing row.
const (
	dateCell = 1 // 日期
	csvCell  = 3 // 下載(*.csv)
)

// findSalesTable returns the <table> node whose first row's <th> texts match
// requiredHeaders exactly, or nil when no such table exists.
func findSalesTable(doc *html.Node) *html.Node {
	for _, table := range findAll(doc, "table") {
		rows := findAll(table, "tr")
		if len(rows) == 0 {
			continue
		}
		var headers []string
		for _, th := range findAll(rows[0], "th") {
			headers = append(headers, nodeText(th))
		}
		if len(headers) != len(requiredHeaders) {
			continue
		}
		match := true
		for i := range headers {
			if headers[i] != requiredHeaders[i] {
				match = false
				break
			}
		}
		if match {
			return table
		}
	}
	return nil
}

// csvLinkForDate scans the listing rows for the one whose 日期 cell equals
// date (format "2006/01/02") and extracts the CSV zip URL from the download
// button's onclick attribute. The second return is false when the date is
// not on the page.
func csvLinkForDate(table *html.Node, date string) (string, bool) {
	for _, row := range findAll(table, "tr") {
		cells := findAll(row, "td")
		if len(cells) <= csvCell {
			continue
		}
		if nodeText(cells[dateCell]) != date {
			continue
		}
		for _, input := range findAll(cells[csvCell], "input") {
			if u, ok := urlFromOnclick(attr(input, "onclick")); ok {
				return u, true
			}
		}
	}
	return "", false
}

// urlFromOnclick pulls the first single-quoted string out of an onclick
// handler, e.g. `window.open('https://...zip')` → the URL.
func urlFromOnclick(onclick string) (string, bool) {
	parts := strings.SplitN(onclick, "'", 3)
	if len(parts) < 3 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// findAll returns every element named tag under n, in document order.
func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var visit func(*html.Node)
	visit = func(c *html.Node) {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, c)
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
	}
	visit(n)
	return out
}

// nodeText concatenates and trims all text under n.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
	}
	visit(n)
	return strings.TrimSpace(sb.String())
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
