package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{"zero", 0, "$ 0"},
		{"under a thousand", 500, "$ 500"},
		{"exact thousand", 1000, "$ 1.000"},
		{"typical sale total", 31000, "$ 31.000"},
		{"millions", 13500000, "$ 13.500.000"},
		{"negative balance", -2500, "-$ 2.500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount))
		})
	}
}
