package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeVigilanceColor(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", DefaultVigilanceColor},
		{"Jaune", "#f0d53c"},
		{" rouge ", "#ff0000"},
		{"#ABC", "#aabbcc"},
		{"FF9900", "#ff9900"},
		{"#12345", DefaultVigilanceColor},
		{"violet", DefaultVigilanceColor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeVigilanceColor(tt.in), tt.in)
	}
}

func TestVigilanceLabel(t *testing.T) {
	assert.Equal(t, DefaultVigilanceLabel, VigilanceLabel(nil))
	assert.Equal(t, DefaultVigilanceLabel, VigilanceLabel(&Vigilance{Label: "  "}))
	assert.Equal(t, "Vigilance jaune", VigilanceLabel(&Vigilance{Label: "Vigilance jaune"}))
}
