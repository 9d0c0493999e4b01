package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		frequent   []string
		want       []string
	}{
		{
			name:       "no history keeps order",
			candidates: []string{"a", "b", "c"},
			frequent:   nil,
			want:       []string{"a", "b", "c"},
		},
		{
			name:       "frequent floats to top",
			candidates: []string{"a", "b", "c"},
			frequent:   []string{"c", "a"},
			want:       []string{"c", "a", "b"},
		},
		{
			name:       "stale history entries are dropped",
			candidates: []string{"a", "b"},
			frequent:   []string{"gone", "b"},
			want:       []string{"b", "a"},
		},
		{
			name:       "empty candidates",
			candidates: nil,
			frequent:   []string{"a"},
			want:       nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Rank(tt.candidates, tt.frequent))
		})
	}
}
