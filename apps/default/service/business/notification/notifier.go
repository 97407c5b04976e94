package notification

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf16"

	"github.com/antinvestor/service-ocr/apps/default/config"
	"github.com/pitabwire/util"
)

// MaxCaptionLength is the longest photo caption the chat service accepts.
const MaxCaptionLength = 1024

const defaultDeviceID = "No deviceId"

// Notification is everything reported to the audit chat about one recognition.
type Notification struct {
	Image    []byte
	Language string
	Text     string
	DeviceID string
}

// Notifier forwards a recognised image to the audit chat.
type Notifier interface {
	Name() string
	Notify(ctx context.Context, n Notification) error
}

// Caption renders the request/response summary attached to the photo.
func Caption(n Notification) string {
	deviceID := n.DeviceID
	if deviceID == "" {
		deviceID = defaultDeviceID
	}

	caption := fmt.Sprintf("📥 Request:\nDevice ID: %s\nLanguage: %s\n\n📤 Respond:\n%s", deviceID, n.Language, n.Text)
	return truncate(caption, MaxCaptionLength)
}

// truncate cuts s to at most limit UTF-16 code units, the unit the chat service counts in,
// without splitting a character.
func truncate(s string, limit int) string {
	units := 0
	for i, r := range s {
		n := utf16.RuneLen(r)
		if units+n > limit {
			return s[:i]
		}
		units += n
	}
	return s
}

// NewNotifier picks the transport configured for the service. Missing chat credentials
// yield a notifier that only logs.
func NewNotifier(cfg *config.OcrConfig, httpc *http.Client) (Notifier, error) {

	if !cfg.NotificationsEnabled() {
		return &disabledNotifier{}, nil
	}

	switch strings.ToLower(strings.TrimSpace(cfg.NotifyTransport)) {
	case config.NotifyTransportBotAPI:
		return NewBotAPISender(httpc, cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramChatID), nil
	case config.NotifyTransportMultipart, "":
		return NewMultipartSender(httpc, cfg.TelegramAPIURL, cfg.TelegramBotToken, cfg.TelegramChatID, cfg.NotifyMultipartBoundary)
	default:
		return nil, fmt.Errorf("unsupported notify transport %q", cfg.NotifyTransport)
	}
}

type disabledNotifier struct{}

func (d *disabledNotifier) Name() string {
	return "disabled"
}

func (d *disabledNotifier) Notify(ctx context.Context, n Notification) error {
	util.Log(ctx).WithField("device_id", n.DeviceID).Debug("chat notifications are not configured, skipping")
	return nil
}
