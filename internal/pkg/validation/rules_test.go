package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yigit/registrar/internal/pkg/validation"
)

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email string
		want  bool
	}{
		{email: "a@x.com", want: true},
		{email: "john.doe+tag@uni-mail.example.org", want: true},
		{email: "First.Last@Example.COM", want: true},
		{email: "invalid email", want: false},
		{email: "", want: false},
		{email: "no-at-sign.com", want: false},
		{email: ".leading@x.com", want: false},
		{email: "trailing.@x.com", want: false},
		{email: "a@x", want: false},
		{email: "a@x.c", want: false},
		{email: "a@x.com trailing", want: false},
		{email: "a@-x.com", want: false},
		{email: strings.Repeat("a", 250) + "@x.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, validation.IsValidEmail(tt.email))
		})
	}
}

func TestIsValidCourseName(t *testing.T) {
	t.Parallel()

	assert.True(t, validation.IsValidCourseName("algebra"))
	assert.False(t, validation.IsValidCourseName("   "))
	assert.False(t, validation.IsValidCourseName(strings.Repeat("n", 256)))
}

func TestStringValidation(t *testing.T) {
	t.Parallel()

	assert.False(t, validation.NewStringValidation("").Validate())
	assert.True(t, validation.NewStringValidation("x").Validate())
	assert.False(t, validation.NewStringValidation("abcd").WithMaxLength(3).Validate())
	assert.True(t, validation.NewStringValidation("abc").WithMaxLength(3).Validate())
	assert.False(t, validation.NewStringValidation("a b").WithPattern(validation.CompiledPatterns.Email).Validate())
}
