package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "email", b: "email", want: 1.0},
		{name: "identical ignoring case", a: "Email", b: "EMAIL", want: 1.0},
		{name: "both empty", a: "", b: "", want: 1.0},
		{name: "synonym pair", a: "customer", b: "client", want: 1.0},
		{name: "synonym inside longer names", a: "Customer Name", b: "Client Name", want: 1.0},
		{name: "id synonyms", a: "CustID", b: "CustomerID", want: 1.0},
		{name: "one empty", a: "name", b: "", want: 0.0},
		{name: "single substitution", a: "cat", b: "cut", want: 1.0 - 1.0/3.0},
		{name: "accented substitution counts one rune", a: "Prénom", b: "Prenom", want: 1.0 - 1.0/6.0},
		{name: "disjoint", a: "abc", b: "xyz", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.a, tt.b), 1e-9)
		})
	}
}

func TestScoreSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"Customer Name", "Client Name"},
		{"order_date", "OrderDate"},
		{"Revenue", "rev"},
		{"", "anything"},
		{"amount", "total value"},
	}

	for _, pair := range pairs {
		assert.Equal(t, Score(pair[0], pair[1]), Score(pair[1], pair[0]),
			"Score(%q, %q) must be symmetric", pair[0], pair[1])
	}
}

func TestScoreRange(t *testing.T) {
	pairs := [][2]string{
		{"a", "completely different string"},
		{"CustID", "Revenue"},
		{"x", ""},
		{"telephone", "phone_number"},
	}

	for _, pair := range pairs {
		score := Score(pair[0], pair[1])
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}

func TestSimilar(t *testing.T) {
	// The synonym short-circuit must clear the grouping threshold even
	// when the raw edit distance would not.
	assert.True(t, Similar("Customer Name", "Client Name"))
	assert.True(t, Similar("order_id", "OrderID"))
	assert.False(t, Similar("Revenue", "Headcount"))
}

func TestRelated(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "exact case-insensitive", a: "Region", b: "region", want: true},
		{name: "synonym", a: "CustID", b: "CustomerID", want: true},
		{name: "near match", a: "regions", b: "region", want: true},
		{name: "loose match below strict threshold", a: "created", b: "curated", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Related(tt.a, tt.b))
		})
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a    string
		b    string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"same", "same", 0},
		{"prénom", "prenom", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, distance([]rune(tt.a), []rune(tt.b)), "distance(%q, %q)", tt.a, tt.b)
	}
}
