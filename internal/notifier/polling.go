package notifier

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// CommandHandler is called when a user command is received. args holds the
// whitespace-separated words after the command.
type CommandHandler func(ctx context.Context, command string, args []string) string

// StartPolling begins long-polling for Telegram commands. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := t.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			t.logger.Info("telegram polling stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			msg := update.Message
			if msg == nil || !msg.IsCommand() {
				continue
			}
			args := strings.Fields(msg.CommandArguments())
			t.logger.Info("received command", zap.String("command", msg.Command()), zap.Strings("args", args))
			reply := handler(ctx, msg.Command(), args)
			if reply == "" {
				continue
			}
			if err := t.sendTo(msg.Chat.ID, reply); err != nil {
				t.logger.Error("send reply", zap.Error(err))
			}
		}
	}
}

func newProxyClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	// Long polling holds requests open for u.Timeout seconds.
	return &http.Client{Timeout: 45 * time.Second, Transport: transport}
}
