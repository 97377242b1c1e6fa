package flowstyle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleForHandle(t *testing.T) {
	tests := []struct {
		handle string
		want   string
	}{
		{HandlePositive, StrokePositive},
		{HandleNegative, StrokeNegative},
		{HandleNeutral, StrokeNeutral},
		{"", StrokeNeutral},
		{"output-3", StrokeNeutral},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, StyleForHandle(tt.handle), "handle=%q", tt.handle)
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindPositive, Classify("positive"))
	assert.Equal(t, KindNegative, Classify("negative"))
	assert.Equal(t, KindNeutral, Classify("neutral"))
	assert.Equal(t, KindUnknown, Classify("POSITIVE")) // büyük/küçük harfe duyarlı
	assert.Equal(t, KindUnknown, Classify(""))
}

// Aynı handle için stil her hesaplamada aynı olmalı.
func TestStyleIsPure(t *testing.T) {
	first := StyleForHandle(HandlePositive)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, StyleForHandle(HandlePositive))
	}
}
