package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	const fallback = "/etc/wrapsell/config.yml"

	tests := []struct {
		name  string
		set   bool
		value string
		want  string
	}{
		{name: "unset uses fallback", want: fallback},
		{name: "empty value is kept", set: true, value: "", want: ""},
		{name: "set value wins", set: true, value: "./config/config-local.yml", want: "./config/config-local.yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "WRAPSELL_TEST_CONFIG"
			if tt.set {
				t.Setenv(key, tt.value)
			}
			assert.Equal(t, tt.want, Getenv(key, fallback))
		})
	}
}
