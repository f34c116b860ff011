package bot

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/LarisaShirokikh/video-download-bot/media"
	"github.com/LarisaShirokikh/video-download-bot/paging"
	"github.com/LarisaShirokikh/video-download-bot/search"
	"github.com/LarisaShirokikh/video-download-bot/session"
	"go.uber.org/zap"
)

const (
	defaultFetchTimeout  = 10 * time.Minute
	defaultSearchTimeout = 15 * time.Second
	defaultDownloadSlots = 2

	maxSearchResults = 100
)

// User-facing texts.
const (
	msgGreeting         = "Hi! What shall we download?"
	msgWhatNext         = "What shall we download next?"
	msgSendVideoLink    = "Send a link to the video."
	msgSendMusicQuery   = "Send a track or artist name."
	msgDownloadingVideo = "Downloading the video, please wait..."
	msgDownloadingTrack = "Downloading the track, please wait..."
	msgDownloadFailed   = "Could not download. Check the link or try again later."
	msgArtifactMissing  = "File not found after download."
	msgSearchFailed     = "Music search failed. Try again later."
	msgNothingFound     = "Nothing found for your query."
)

// Config wires the engine's collaborators.
type Config struct {
	Sessions *session.Store
	Fetcher  Fetcher
	Searcher Searcher
	Emitter  Emitter
	Logger   *zap.Logger

	FetchTimeout  time.Duration
	SearchTimeout time.Duration
	// DownloadSlots bounds concurrent fetches across all users.
	DownloadSlots int
}

// Engine is the Conversation State Machine.
type Engine struct {
	sessions *session.Store
	fetcher  Fetcher
	searcher Searcher
	emitter  Emitter
	log      *zap.Logger

	fetchTimeout  time.Duration
	searchTimeout time.Duration
	slots         chan struct{}
}

func New(cfg Config) *Engine {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.SearchTimeout <= 0 {
		cfg.SearchTimeout = defaultSearchTimeout
	}
	if cfg.DownloadSlots <= 0 {
		cfg.DownloadSlots = defaultDownloadSlots
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Engine{
		sessions:      cfg.Sessions,
		fetcher:       cfg.Fetcher,
		searcher:      cfg.Searcher,
		emitter:       cfg.Emitter,
		log:           cfg.Logger,
		fetchTimeout:  cfg.FetchTimeout,
		searchTimeout: cfg.SearchTimeout,
		slots:         make(chan struct{}, cfg.DownloadSlots),
	}
}

// Handle processes one inbound event. Events for the same user are
// serialized by the session store; a failed flow never escapes past here.
func (e *Engine) Handle(ctx context.Context, ev Event) {
	e.sessions.Do(ev.UserID, func(c *session.Conversation) {
		if ev.Kind == EventStart {
			e.handleStart(ctx, c)
			return
		}

		switch c.State {
		case session.ChoosingAction:
			e.handleChoice(ctx, c, ev)
		case session.AwaitingVideoLink:
			if ev.Kind == EventText {
				e.runVideoDownload(ctx, c, ev.Text)
				return
			}
			e.ignore(c, ev)
		case session.AwaitingMusicQuery:
			if ev.Kind == EventText {
				e.runSearch(ctx, c, ev.Text)
				return
			}
			e.ignore(c, ev)
		case session.BrowsingResults:
			e.handleBrowsing(ctx, c, ev)
		}
	})
}

// handleStart resets the dialog from any state.
func (e *Engine) handleStart(ctx context.Context, c *session.Conversation) {
	c.State = session.ChoosingAction
	c.Results = nil
	c.Page = 0
	e.sendChoicePrompt(ctx, c.UserID, msgGreeting)
}

func (e *Engine) handleChoice(ctx context.Context, c *session.Conversation, ev Event) {
	if ev.Kind != EventButton {
		e.ignore(c, ev)
		return
	}
	switch ev.Token {
	case TokenChooseVideo:
		c.State = session.AwaitingVideoLink
		e.send(ctx, c.UserID, msgSendVideoLink)
	case TokenChooseMusic:
		c.State = session.AwaitingMusicQuery
		e.send(ctx, c.UserID, msgSendMusicQuery)
	default:
		e.ignore(c, ev)
	}
}

func (e *Engine) handleBrowsing(ctx context.Context, c *session.Conversation, ev Event) {
	if ev.Kind != EventButton {
		e.ignore(c, ev)
		return
	}
	switch ev.Token {
	case TokenNext:
		c.Page = paging.Next(c.Page, len(c.Results))
		e.renderPage(ctx, c)
	case TokenPrev:
		c.Page = paging.Prev(c.Page)
		e.renderPage(ctx, c)
	default:
		if n, ok := ParseTrackToken(ev.Token); ok {
			e.runTrackDelivery(ctx, c, n)
			return
		}
		e.ignore(c, ev)
	}
}

// ignore is the policy for events illegal in the current state: no state
// change, no emission.
func (e *Engine) ignore(c *session.Conversation, ev Event) {
	e.log.Debug("ignoring event illegal for state",
		zap.Int64("user_id", c.UserID),
		zap.String("state", string(c.State)),
		zap.Int("event_kind", int(ev.Kind)),
		zap.String("token", string(ev.Token)))
}

// fetch brackets a fetcher call with a global download slot and timeout.
func (e *Engine) fetch(ctx context.Context, locator string, kind media.Kind) (string, error) {
	e.slots <- struct{}{}
	defer func() { <-e.slots }()

	ctx, cancel := context.WithTimeout(ctx, e.fetchTimeout)
	defer cancel()
	return e.fetcher.Fetch(ctx, locator, kind)
}

// deliver fetches the locator and sends the artifact to the user, removing
// the local file afterwards. A non-nil track gets its artist/title stamped
// onto the audio before sending. It reports whether the delivery succeeded;
// failure notices have already been emitted when it returns false.
func (e *Engine) deliver(ctx context.Context, userID int64, locator string, kind media.Kind, track *search.Track) bool {
	path, err := e.fetch(ctx, locator, kind)
	if err != nil {
		e.log.Error("fetch failed",
			zap.Int64("user_id", userID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		if errors.Is(err, media.ErrMissingArtifact) {
			e.send(ctx, userID, msgArtifactMissing)
		} else {
			e.send(ctx, userID, msgDownloadFailed)
		}
		return false
	}
	defer os.Remove(path)

	// The fetcher already globbed for the file, but it may have raced a
	// cleanup; re-check before promising the user a send.
	if _, err := os.Stat(path); err != nil {
		e.log.Error("artifact missing before send",
			zap.Int64("user_id", userID),
			zap.String("path", path))
		e.send(ctx, userID, msgArtifactMissing)
		return false
	}

	if track != nil {
		if err := media.WriteTags(path, track.Artist, track.Title); err != nil {
			e.log.Warn("id3 tagging failed", zap.Error(err))
		}
	}

	if err := e.emitter.SendMediaFile(ctx, userID, path, kind); err != nil {
		e.log.Error("media send failed",
			zap.Int64("user_id", userID),
			zap.Error(err))
		e.send(ctx, userID, msgDownloadFailed)
		return false
	}
	return true
}

func (e *Engine) send(ctx context.Context, userID int64, text string, rows ...[]Button) {
	if err := e.emitter.SendText(ctx, userID, text, rows...); err != nil {
		e.log.Error("text send failed", zap.Int64("user_id", userID), zap.Error(err))
	}
}

func (e *Engine) sendChoicePrompt(ctx context.Context, userID int64, text string) {
	e.send(ctx, userID, text, []Button{
		{Label: "Video", Token: TokenChooseVideo},
		{Label: "Music", Token: TokenChooseMusic},
	})
}
