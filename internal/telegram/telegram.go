// Package telegram adapts the Telegram Bot API to the bot.Transport
// interface.
package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/akarpov/savingsbot/internal/bot"
	"github.com/akarpov/savingsbot/internal/dialog"
	"github.com/akarpov/savingsbot/internal/logging"
)

const longPollTimeout = 30 // seconds

type Client struct {
	api *tgbotapi.BotAPI
	log logging.Logger
}

func New(token string, log logging.Logger) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Client{api: api, log: log}, nil
}

// Updates long-polls the API and translates raw updates into transport
// events. Updates that are neither text messages nor button presses are
// dropped.
func (c *Client) Updates(ctx context.Context) <-chan bot.Update {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = longPollTimeout
	raw := c.api.GetUpdatesChan(cfg)

	out := make(chan bot.Update)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				c.api.StopReceivingUpdates()
				return
			case u, ok := <-raw:
				if !ok {
					return
				}
				ev, ok := translate(u)
				if !ok {
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					c.api.StopReceivingUpdates()
					return
				}
			}
		}
	}()
	return out
}

func translate(u tgbotapi.Update) (bot.Update, bool) {
	switch {
	case u.CallbackQuery != nil && u.CallbackQuery.Message != nil:
		return bot.Update{
			ChatID:       u.CallbackQuery.Message.Chat.ID,
			CallbackID:   u.CallbackQuery.ID,
			CallbackData: u.CallbackQuery.Data,
		}, true
	case u.Message != nil && u.Message.Text != "":
		return bot.Update{
			ChatID: u.Message.Chat.ID,
			Text:   u.Message.Text,
		}, true
	}
	return bot.Update{}, false
}

func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, kb dialog.Keyboard) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if len(kb) > 0 {
		msg.ReplyMarkup = inlineKeyboard(kb)
	}
	_, err := c.api.Send(msg)
	return err
}

func (c *Client) AnswerCallback(ctx context.Context, callbackID string) error {
	_, err := c.api.Request(tgbotapi.NewCallback(callbackID, ""))
	return err
}

func (c *Client) SendDocument(ctx context.Context, chatID int64, doc dialog.Document) error {
	d := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: doc.Name, Bytes: doc.Data})
	d.Caption = doc.Caption
	_, err := c.api.Send(d)
	return err
}

func inlineKeyboard(kb dialog.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
