// Package telegram adapts the Telegram Bot API to the engine's event model.
package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/LarisaShirokikh/video-download-bot/bot"
	"github.com/LarisaShirokikh/video-download-bot/media"
)

// Handler consumes inbound events; in practice this is *bot.Engine.
type Handler interface {
	Handle(ctx context.Context, ev bot.Event)
}

// Transport long-polls Telegram for updates and implements bot.Emitter for
// the outbound direction.
type Transport struct {
	api *tgbotapi.BotAPI
	log *zap.Logger
}

func New(token string, log *zap.Logger) (*Transport, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Transport{api: api, log: log}, nil
}

// Run blocks, dispatching each update on its own goroutine until ctx is
// canceled.
func (t *Transport) Run(ctx context.Context, handler Handler) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := t.api.GetUpdatesChan(u)

	t.log.Info("long polling started", zap.String("bot", t.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			t.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			ev, ok := t.mapUpdate(update)
			if !ok {
				continue
			}
			go handler.Handle(ctx, ev)
		}
	}
}

// mapUpdate translates a Telegram update into an engine event. Unknown
// callback data and non-text payloads are dropped here.
func (t *Transport) mapUpdate(update tgbotapi.Update) (bot.Event, bool) {
	switch {
	case update.Message != nil:
		msg := update.Message
		if msg.IsCommand() {
			if msg.Command() == "start" {
				return bot.StartCommand(msg.Chat.ID), true
			}
			return bot.Event{}, false
		}
		if msg.Text == "" {
			return bot.Event{}, false
		}
		return bot.TextMessage(msg.Chat.ID, msg.Text), true

	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		// Stop the button spinner right away; the flow may take a while.
		if _, err := t.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			t.log.Warn("callback answer failed", zap.Error(err))
		}
		if cq.Message == nil {
			return bot.Event{}, false
		}
		token, ok := bot.ParseToken(cq.Data)
		if !ok {
			t.log.Debug("dropping unknown callback data", zap.String("data", cq.Data))
			return bot.Event{}, false
		}
		return bot.ButtonPress(cq.Message.Chat.ID, token), true
	}
	return bot.Event{}, false
}

// SendText implements bot.Emitter. Each button row becomes one inline
// keyboard row; empty rows are skipped.
func (t *Transport) SendText(_ context.Context, userID int64, text string, rows ...[]bot.Button) error {
	msg := tgbotapi.NewMessage(userID, text)

	var kbRows [][]tgbotapi.InlineKeyboardButton
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		kbRow := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			kbRow = append(kbRow, tgbotapi.NewInlineKeyboardButtonData(b.Label, string(b.Token)))
		}
		kbRows = append(kbRows, kbRow)
	}
	if len(kbRows) > 0 {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(kbRows...)
	}

	_, err := t.api.Send(msg)
	return err
}

// SendMediaFile implements bot.Emitter.
func (t *Transport) SendMediaFile(_ context.Context, userID int64, path string, kind media.Kind) error {
	file := tgbotapi.FilePath(path)

	var err error
	if kind == media.KindMusic {
		audio := tgbotapi.NewAudio(userID, file)
		_, err = t.api.Send(audio)
	} else {
		video := tgbotapi.NewVideo(userID, file)
		video.SupportsStreaming = true
		_, err = t.api.Send(video)
	}
	return err
}
