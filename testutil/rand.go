package testutil

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// RandomContainerName appends a short lowercase suffix to prefix so parallel
// or aborted test runs never share a docker container name.
func RandomContainerName(prefix string) string {
	return prefix + "-" + strings.ToLower(gofakeit.LetterN(6))
}
