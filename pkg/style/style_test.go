package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBar(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0, "░░░░░░░░░░"},
		{50, "█████░░░░░"},
		{59, "█████░░░░░"},
		{100, "██████████"},
		{140, "██████████"},
		{-3, "░░░░░░░░░░"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Bar(tt.pct, 10), "pct=%v", tt.pct)
	}
}

func TestNoColor(t *testing.T) {
	old := NoColor
	t.Cleanup(func() { NoColor = old })

	NoColor = true
	assert.Equal(t, "x", C(Red, "x"))
	assert.Equal(t, "x", B("x"))
	assert.Equal(t, "✓", Check())

	NoColor = false
	assert.Equal(t, Red+"x"+Reset, C(Red, "x"))
}
