package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/LarisaShirokikh/video-download-bot/media"
	"github.com/LarisaShirokikh/video-download-bot/paging"
	"github.com/LarisaShirokikh/video-download-bot/session"
	"go.uber.org/zap"
)

// runVideoDownload fetches the user-supplied link and sends the video back.
// The conversation returns to ChoosingAction whether or not the download
// worked; recovery is always user-initiated.
func (e *Engine) runVideoDownload(ctx context.Context, c *session.Conversation, locator string) {
	c.State = session.ChoosingAction

	e.send(ctx, c.UserID, msgDownloadingVideo)
	if !e.deliver(ctx, c.UserID, locator, media.KindVideo, nil) {
		return
	}

	e.log.Info("video delivered", zap.Int64("user_id", c.UserID))
	e.sendChoicePrompt(ctx, c.UserID, msgWhatNext)
}

// runSearch queries the catalog and, given results, stores them and renders
// page 0. Empty results and search failures both keep the user in
// AwaitingMusicQuery so they can just send another query.
func (e *Engine) runSearch(ctx context.Context, c *session.Conversation, query string) {
	searchCtx, cancel := context.WithTimeout(ctx, e.searchTimeout)
	defer cancel()

	tracks, err := e.searcher.Search(searchCtx, query, maxSearchResults)
	if err != nil {
		e.log.Error("search failed",
			zap.Int64("user_id", c.UserID),
			zap.Error(err))
		e.send(ctx, c.UserID, msgSearchFailed)
		return
	}
	if len(tracks) == 0 {
		e.send(ctx, c.UserID, msgNothingFound)
		return
	}

	c.Results = tracks
	c.Page = 0
	c.State = session.BrowsingResults
	e.renderPage(ctx, c)
}

// runTrackDelivery downloads the n-th (1-based) track of the current page
// and sends it as audio. Browsing continues regardless of the outcome.
func (e *Engine) runTrackDelivery(ctx context.Context, c *session.Conversation, n int) {
	start, end := paging.Window(c.Page, len(c.Results))
	idx := start + n - 1
	if idx >= end {
		e.ignore(c, ButtonPress(c.UserID, TrackToken(n)))
		return
	}

	track := c.Results[idx]
	if track.URL == "" {
		e.log.Warn("track has no source url",
			zap.Int64("user_id", c.UserID),
			zap.String("track_id", track.ID))
		e.send(ctx, c.UserID, msgDownloadFailed)
		return
	}

	e.send(ctx, c.UserID, msgDownloadingTrack)
	if e.deliver(ctx, c.UserID, track.URL, media.KindMusic, &track) {
		e.log.Info("track delivered",
			zap.Int64("user_id", c.UserID),
			zap.String("track_id", track.ID))
	}
}

// renderPage lists the current page of results with per-track download
// buttons and prev/next navigation.
func (e *Engine) renderPage(ctx context.Context, c *session.Conversation) {
	start, end := paging.Window(c.Page, len(c.Results))

	var b strings.Builder
	b.WriteString("Search results:\n\n")
	trackRow := make([]Button, 0, end-start)
	for i, track := range c.Results[start:end] {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, track.Artist, track.Title)
		trackRow = append(trackRow, Button{
			Label: fmt.Sprintf("⬇ %d", i+1),
			Token: TrackToken(i + 1),
		})
	}

	navRow := []Button{
		{Label: "⬅️ Back", Token: TokenPrev},
		{Label: "Forward ➡️", Token: TokenNext},
	}
	e.send(ctx, c.UserID, b.String(), trackRow, navRow)
}
