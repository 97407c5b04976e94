package notification

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pitabwire/util"
	"github.com/pkg/errors"
)

// BotAPISender sends the audit photo through the bot API client library.
type BotAPISender struct {
	bot    *tgbotapi.BotAPI
	chatID string
}

// NewBotAPISender does not call getMe, the client is only used for sendPhoto.
func NewBotAPISender(httpc *http.Client, apiURL, token, chatID string) *BotAPISender {
	if httpc == nil {
		httpc = http.DefaultClient
	}

	bot := &tgbotapi.BotAPI{
		Token:  token,
		Client: httpc,
		Buffer: 100,
	}
	bot.SetAPIEndpoint(strings.TrimRight(apiURL, "/") + "/bot%s/%s")

	return &BotAPISender{
		bot:    bot,
		chatID: chatID,
	}
}

func (s *BotAPISender) Name() string {
	return "botapi"
}

func (s *BotAPISender) photo(n Notification) tgbotapi.PhotoConfig {
	file := tgbotapi.FileBytes{Name: photoFilename, Bytes: n.Image}

	var photo tgbotapi.PhotoConfig
	if id, err := strconv.ParseInt(s.chatID, 10, 64); err == nil {
		photo = tgbotapi.NewPhoto(id, file)
	} else {
		photo = tgbotapi.NewPhotoToChannel(s.chatID, file)
	}
	photo.Caption = Caption(n)
	return photo
}

func (s *BotAPISender) Notify(ctx context.Context, n Notification) error {

	// bot.Send takes no context, once started the call is bounded only by the client timeout.
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := s.bot.Send(s.photo(n))
	if err != nil {
		return errors.Wrap(err, "sendPhoto failed")
	}

	util.Log(ctx).WithField("device_id", n.DeviceID).WithField("message_id", msg.MessageID).Debug("notification sent")
	return nil
}
