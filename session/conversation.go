// Package session keeps one in-memory Conversation per chat user for the
// process lifetime.
package session

import "github.com/LarisaShirokikh/video-download-bot/search"

// State is a finite-state machine state of a conversation.
type State string

const (
	// ChoosingAction waits for the user to pick video or music.
	ChoosingAction State = "choosing_action"
	// AwaitingVideoLink waits for a video link to download.
	AwaitingVideoLink State = "awaiting_video_link"
	// AwaitingMusicQuery waits for a free-text catalog query.
	AwaitingMusicQuery State = "awaiting_music_query"
	// BrowsingResults pages through stored search results.
	BrowsingResults State = "browsing_results"
)

// Conversation is the per-user dialog record. Results and Page are only
// meaningful while State is BrowsingResults; a new search replaces both.
type Conversation struct {
	UserID  int64
	State   State
	Results []search.Track
	Page    int
}
