// Package bot is the per-conversation orchestration engine: it consumes
// inbound chat events, drives each user's dialog state machine, and emits
// outbound presentation events.
package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/LarisaShirokikh/video-download-bot/media"
	"github.com/LarisaShirokikh/video-download-bot/search"
)

// EventKind tags an inbound event.
type EventKind int

const (
	// EventStart is the /start command.
	EventStart EventKind = iota
	// EventText is a free-text message.
	EventText
	// EventButton is an inline-button press.
	EventButton
)

// Token identifies which inline button was pressed.
type Token string

const (
	TokenChooseVideo Token = "choose_video"
	TokenChooseMusic Token = "choose_music"
	TokenNext        Token = "next"
	TokenPrev        Token = "prev"

	trackTokenPrefix = "track:"
)

// TrackToken builds the token for the i-th (1-based, page-relative) listed
// track.
func TrackToken(i int) Token {
	return Token(fmt.Sprintf("%s%d", trackTokenPrefix, i))
}

// ParseTrackToken extracts the page-relative track number from a track
// token, reporting false for anything else.
func ParseTrackToken(tok Token) (int, bool) {
	rest, ok := strings.CutPrefix(string(tok), trackTokenPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// ParseToken validates raw callback data from the transport.
func ParseToken(data string) (Token, bool) {
	tok := Token(data)
	switch tok {
	case TokenChooseVideo, TokenChooseMusic, TokenNext, TokenPrev:
		return tok, true
	}
	if _, ok := ParseTrackToken(tok); ok {
		return tok, true
	}
	return "", false
}

// Event is one inbound chat event tagged with the user it came from.
// Text is set for EventText, Token for EventButton.
type Event struct {
	UserID int64
	Kind   EventKind
	Text   string
	Token  Token
}

func StartCommand(userID int64) Event {
	return Event{UserID: userID, Kind: EventStart}
}

func TextMessage(userID int64, text string) Event {
	return Event{UserID: userID, Kind: EventText, Text: text}
}

func ButtonPress(userID int64, token Token) Event {
	return Event{UserID: userID, Kind: EventButton, Token: token}
}

// Button is one outbound inline button.
type Button struct {
	Label string
	Token Token
}

// Emitter is the outbound side of the chat transport.
type Emitter interface {
	SendText(ctx context.Context, userID int64, text string, rows ...[]Button) error
	SendMediaFile(ctx context.Context, userID int64, path string, kind media.Kind) error
}

// Fetcher retrieves a remote media resource into a local file.
type Fetcher interface {
	Fetch(ctx context.Context, locator string, kind media.Kind) (string, error)
}

// Searcher looks up tracks in the catalog by free-text query.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]search.Track, error)
}
