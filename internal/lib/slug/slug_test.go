package slug

import (
	"regexp"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Summer Sale", "summer-sale"},
		{"trim and collapse", "  Diwali   Specials ", "diwali-specials"},
		{"punctuation dropped", "Mom's Pickles & Jams!", "moms-pickles--jams"},
		{"diacritics folded", "Crème Brûlée", "creme-brulee"},
		{"digits kept", "Top 10 Sweets", "top-10-sweets"},
		{"empty", "", ""},
		{"tabs and newlines", "a\tb\nc", "a-b-c"},
		{"non-breaking space", "Summer\u00a0Sale", "summer-sale"},
		{"unicode spaces", "Festive\u2003\u202fHampers", "festive-hampers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.in))
		})
	}
}

func TestMake_Idempotent(t *testing.T) {
	allowed := regexp.MustCompile(`^[a-z0-9-]*$`)
	faker := gofakeit.New(42)

	for i := 0; i < 200; i++ {
		in := faker.Sentence(5)
		once := Make(in)
		assert.Equal(t, once, Make(once), "input %q", in)
		assert.Regexp(t, allowed, once)
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "summer-sale", Normalize(" Summer-Sale "))
	assert.True(t, Valid("summer-sale"))
	assert.False(t, Valid("Summer Sale"))
	assert.False(t, Valid(""))
}
