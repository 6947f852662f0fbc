package priceclient

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// gradeCells maps each grade to the id of its cell in the first row of the
// price_data table.
var gradeCells = []struct {
	grade  Grade
	cellID string
}{
	{GradeUngraded, "used_price"},
	{Grade7, "complete_price"},
	{Grade8, "new_price"},
	{Grade9, "graded_price"},
	{Grade95, "box_only_price"},
	{GradePSA10, "manual_only_price"},
}

func parsePriceTable(r io.Reader) (map[Grade]float64, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price page: %w", err)
	}

	table := findElement(doc, func(n *html.Node) bool {
		return n.Data == "table" && attr(n, "id") == "price_data"
	})
	if table == nil {
		return nil, fmt.Errorf("%w: no price table", ErrCardNotFound)
	}
	// the parser adds tbody when the markup omits it
	row := findElement(table, func(n *html.Node) bool { return n.Data == "tr" && hasAncestor(n, "tbody") })
	if row == nil {
		return nil, fmt.Errorf("%w: empty price table", ErrCardNotFound)
	}

	prices := make(map[Grade]float64, len(gradeCells))
	for _, gc := range gradeCells {
		cell := findElement(row, func(n *html.Node) bool { return n.Data == "td" && attr(n, "id") == gc.cellID })
		if cell == nil {
			continue
		}
		span := findElement(cell, func(n *html.Node) bool {
			return n.Data == "span" && slices.Contains(strings.Fields(attr(n, "class")), "price")
		})
		if span == nil {
			continue
		}
		if price, ok := parsePrice(text(span)); ok {
			prices[gc.grade] = price
		}
	}
	return prices, nil
}

// parsePrice reads a listed price such as "$1,234.56". A dash means unlisted.
func parsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0, false
	}
	s = strings.ReplaceAll(strings.TrimPrefix(s, "$"), ",", "")
	price, err := strconv.ParseFloat(s, 64)
	if err != nil || price < 0 {
		return 0, false
	}
	return price, true
}

func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && match(c) {
			return c
		}
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

func hasAncestor(n *html.Node, tag string) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == tag {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
