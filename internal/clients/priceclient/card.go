package priceclient

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrCardNotFound is returned when the price site has no page or no
	// price table for the requested card
	ErrCardNotFound = errors.New("card not found on price site")
	ErrInvalidQuery = errors.New("invalid card query")
)

// CardQuery identifies a card the way the price site addresses it,
// e.g. edition "Pokemon Base Set", name "Charizard", number "4".
type CardQuery struct {
	Edition string
	Name    string
	Number  string
}

func (q CardQuery) Validate() error {
	if strings.TrimSpace(q.Edition) == "" {
		return fmt.Errorf("%w: edition is required", ErrInvalidQuery)
	}
	if strings.TrimSpace(q.Name) == "" {
		return fmt.Errorf("%w: card name is required", ErrInvalidQuery)
	}
	if strings.TrimSpace(q.Number) == "" {
		return fmt.Errorf("%w: card number is required", ErrInvalidQuery)
	}
	return nil
}

// Path is the card page path, /game/{edition}/{name}-{number}.
func (q CardQuery) Path() string {
	return "/game/" + url.PathEscape(slug(q.Edition)) + "/" + url.PathEscape(slug(q.Name)+"-"+slug(q.Number))
}

func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

type Grade string

const (
	GradeUngraded Grade = "Ungraded"
	Grade7        Grade = "Grade 7"
	Grade8        Grade = "Grade 8"
	Grade9        Grade = "Grade 9"
	Grade95       Grade = "Grade 9.5"
	GradePSA10    Grade = "PSA 10"
)

// CardPrice holds the USD prices listed for a card. Grades without a listed
// price are absent from Prices.
type CardPrice struct {
	Edition string            `json:"edition"`
	Name    string            `json:"name"`
	Number  string            `json:"number"`
	URL     string            `json:"url"`
	Prices  map[Grade]float64 `json:"prices"`
}

// Ungraded is the raw card price, the one used as a card's market value.
func (p *CardPrice) Ungraded() (float64, bool) {
	price, ok := p.Prices[GradeUngraded]
	return price, ok
}
