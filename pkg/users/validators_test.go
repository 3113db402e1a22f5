package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		username string
		valid    bool
	}{
		{"abc", true},
		{"user_123", true},
		{"ABCDEFGHIJKLMNOPQRST", true},
		{"ab", false},
		{"ABCDEFGHIJKLMNOPQRSTU", false},
		{"bad name", false},
		{"bad-name", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, isValidUsername(tt.username), "username %q", tt.username)
	}
}

func TestIsValidPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		password string
		valid    bool
	}{
		{"Password1!", true},
		{"Aa1@aaaa", true},
		{"password1!", false}, // no uppercase
		{"PASSWORD1!", false}, // no lowercase
		{"Password!!", false}, // no digit
		{"Password11", false}, // no symbol
		{"Pa1!", false},       // too short
		{"Password1 !", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, isValidPassword(tt.password), "password %q", tt.password)
	}
}
