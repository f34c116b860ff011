package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		data  string
		token Token
		ok    bool
	}{
		{"choose_video", TokenChooseVideo, true},
		{"choose_music", TokenChooseMusic, true},
		{"next", TokenNext, true},
		{"prev", TokenPrev, true},
		{"track:1", Token("track:1"), true},
		{"track:5", Token("track:5"), true},
		{"track:0", "", false},
		{"track:-2", "", false},
		{"track:", "", false},
		{"track:abc", "", false},
		{"", "", false},
		{"delete_everything", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			token, ok := ParseToken(tt.data)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestTrackTokenRoundTrip(t *testing.T) {
	for i := 1; i <= 5; i++ {
		n, ok := ParseTrackToken(TrackToken(i))
		assert.True(t, ok)
		assert.Equal(t, i, n)
	}
}
