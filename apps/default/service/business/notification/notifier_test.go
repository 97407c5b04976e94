package notification_test

import (
	"strings"
	"testing"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/antinvestor/service-ocr/apps/default/config"
	"github.com/antinvestor/service-ocr/apps/default/service/business/notification"
	"github.com/antinvestor/service-ocr/apps/default/service/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type NotifierTestSuite struct {
	tests.BaseTestSuite
}

func TestNotifierTestSuite(t *testing.T) {
	suite.Run(t, new(NotifierTestSuite))
}

func (suite *NotifierTestSuite) TestCaption() {
	testCases := []struct {
		name     string
		in       notification.Notification
		expected string
	}{
		{
			name:     "with device id",
			in:       notification.Notification{Language: "fra", Text: "Bonjour", DeviceID: "dev-42"},
			expected: "📥 Request:\nDevice ID: dev-42\nLanguage: fra\n\n📤 Respond:\nBonjour",
		},
		{
			name:     "without device id",
			in:       notification.Notification{Language: "eng", Text: "Hello World"},
			expected: "📥 Request:\nDevice ID: No deviceId\nLanguage: eng\n\n📤 Respond:\nHello World",
		},
		{
			name:     "empty text",
			in:       notification.Notification{Language: "deu", DeviceID: "d"},
			expected: "📥 Request:\nDevice ID: d\nLanguage: deu\n\n📤 Respond:\n",
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, notification.Caption(tc.in))
		})
	}
}

func (suite *NotifierTestSuite) TestCaption_Truncated() {
	testCases := []struct {
		name      string
		text      string
		wantUnits int
	}{
		{name: "cyrillic text", text: strings.Repeat("я", 2000), wantUnits: notification.MaxCaptionLength},
		// Surrogate pairs count twice and are never split.
		{name: "emoji text", text: strings.Repeat("😀", 600), wantUnits: notification.MaxCaptionLength - 1},
		{name: "short text", text: "A B C", wantUnits: 62},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			caption := notification.Caption(notification.Notification{
				Language: "rus",
				Text:     tc.text,
				DeviceID: "device",
			})

			assert.Equal(t, tc.wantUnits, len(utf16.Encode([]rune(caption))))
			assert.True(t, utf8.ValidString(caption))
			assert.True(t, strings.HasPrefix(caption, "📥 Request:\nDevice ID: device\n"))
		})
	}
}

func (suite *NotifierTestSuite) TestNewNotifier() {
	testCases := []struct {
		name     string
		mutate   func(cfg *config.OcrConfig)
		wantName string
		wantErr  bool
	}{
		{
			name:     "no credentials",
			mutate:   func(cfg *config.OcrConfig) {},
			wantName: "disabled",
		},
		{
			name: "missing chat id",
			mutate: func(cfg *config.OcrConfig) {
				cfg.TelegramBotToken = "token"
			},
			wantName: "disabled",
		},
		{
			name: "multipart transport",
			mutate: func(cfg *config.OcrConfig) {
				cfg.TelegramBotToken = "token"
				cfg.TelegramChatID = "123"
			},
			wantName: "multipart",
		},
		{
			name: "bot api transport",
			mutate: func(cfg *config.OcrConfig) {
				cfg.TelegramBotToken = "token"
				cfg.TelegramChatID = "123"
				cfg.NotifyTransport = "BotAPI"
			},
			wantName: "botapi",
		},
		{
			name: "unknown transport",
			mutate: func(cfg *config.OcrConfig) {
				cfg.TelegramBotToken = "token"
				cfg.TelegramChatID = "123"
				cfg.NotifyTransport = "carrier-pigeon"
			},
			wantErr: true,
		},
		{
			name: "invalid boundary",
			mutate: func(cfg *config.OcrConfig) {
				cfg.TelegramBotToken = "token"
				cfg.TelegramChatID = "123"
				cfg.NotifyMultipartBoundary = "bad\nboundary"
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			cfg := suite.DefaultConfig()
			tc.mutate(cfg)

			notifier, err := notification.NewNotifier(cfg, nil)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantName, notifier.Name())
		})
	}
}

func (suite *NotifierTestSuite) TestDisabledNotifier() {
	t := suite.T()

	notifier, err := notification.NewNotifier(suite.DefaultConfig(), nil)
	require.NoError(t, err)

	assert.NoError(t, notifier.Notify(t.Context(), notification.Notification{
		Image:    []byte{0xff, 0xd8},
		Language: "eng",
		Text:     "unused",
	}))
}
