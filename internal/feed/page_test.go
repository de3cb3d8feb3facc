package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageSpecNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   PageSpec
		want PageSpec
	}{
		{"defaults", PageSpec{}, PageSpec{Page: 0, Size: 10}},
		{"negative page", PageSpec{Page: -3, Size: 20}, PageSpec{Page: 0, Size: 20}},
		{"negative size", PageSpec{Page: 1, Size: -1}, PageSpec{Page: 1, Size: 1}},
		{"size over max", PageSpec{Page: 0, Size: 5000}, PageSpec{Page: 0, Size: 100}},
		{"size at max", PageSpec{Page: 2, Size: 100}, PageSpec{Page: 2, Size: 100}},
		{"valid untouched", PageSpec{Page: 4, Size: 25}, PageSpec{Page: 4, Size: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPageSpecOffset(t *testing.T) {
	assert.Equal(t, 0, PageSpec{Page: 0, Size: 10}.Offset())
	assert.Equal(t, 30, PageSpec{Page: 3, Size: 10}.Offset())
}
