// Package notify pushes the day's flagged races to Telegram.
package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"blitzboat/backend-go/internal/config"
	"blitzboat/backend-go/internal/models"
)

const maxTicketsInMessage = 5

// Notifier sends daily summaries through the Telegram Bot API.
type Notifier struct {
	bot        *tgbotapi.BotAPI
	chatID     int64
	siteURL    string
	maxRetries int
	retryDelay time.Duration
}

// New builds a Notifier from config. Returns (nil, nil) when the bot token
// or chat ID is unset, so the pipeline runs fine without Telegram.
func New(cfg config.Config) (*Notifier, error) {
	if cfg.TelegramToken == "" || cfg.TelegramChatID == "" {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	chatID, err := strconv.ParseInt(cfg.TelegramChatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}
	return &Notifier{
		bot:        bot,
		chatID:     chatID,
		siteURL:    cfg.SiteURL,
		maxRetries: 3,
		retryDelay: time.Second,
	}, nil
}

// SendDaily posts the daily chance-race summary. A nil Notifier is a no-op.
func (n *Notifier) SendDaily(snap models.Snapshot) error {
	if n == nil {
		return nil
	}
	return n.send(FormatDaily(snap, n.siteURL))
}

func (n *Notifier) send(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)

	var lastErr error
	for i := 0; i < n.maxRetries; i++ {
		if _, err := n.bot.Send(msg); err == nil {
			return nil
		} else {
			lastErr = err
		}
		time.Sleep(n.retryDelay * time.Duration(i+1))
	}
	return fmt.Errorf("failed after %d retries: %w", n.maxRetries, lastErr)
}

// FormatDaily renders the notification text: a headline, the most vulnerable
// race's card with its recommended bets, and a link to the dashboard.
func FormatDaily(snap models.Snapshot, siteURL string) string {
	var b strings.Builder

	if len(snap.ChanceRaces) == 0 {
		fmt.Fprintf(&b, "本日(%s)のチャンスレースはありません\n", snap.Date)
		if siteURL != "" {
			fmt.Fprintf(&b, "\n%s\n", siteURL)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "🔥 本日のチャンスレース %d件\n\n", len(snap.ChanceRaces))

	top := snap.ChanceRaces[0]
	fmt.Fprintf(&b, "📍 %s %dR\n", top.VenueName, top.RaceNo)
	if top.Boat1 != nil {
		fmt.Fprintf(&b, "1号艇 %s (全国%.2f / 当地%.2f)\n", top.Boat1.Name, top.Boat1.NationalRate, top.Boat1.LocalRate)
	}
	if top.Boat1WinProb != nil {
		fmt.Fprintf(&b, "1号艇勝率予測: %.0f%%\n", *top.Boat1WinProb*100)
	}
	if top.Cond1.Reason != "" {
		fmt.Fprintf(&b, "・%s\n", top.Cond1.Reason)
	}
	if top.Cond2.Reason != "" {
		fmt.Fprintf(&b, "・%s\n", top.Cond2.Reason)
	}

	if len(top.Tickets) > 0 {
		b.WriteString("\n推奨舟券:\n")
		for i, t := range top.Tickets {
			if i >= maxTicketsInMessage {
				fmt.Fprintf(&b, "…他%d点\n", len(top.Tickets)-maxTicketsInMessage)
				break
			}
			fmt.Fprintf(&b, "%d. %s %d円 (%.1f%%)\n", i+1, t.Trifecta, t.Amount, t.Prob*100)
		}
	}

	if len(snap.ChanceRaces) > 1 {
		fmt.Fprintf(&b, "\n他%d件の対象レースあり\n", len(snap.ChanceRaces)-1)
	}
	if siteURL != "" {
		fmt.Fprintf(&b, "\n%s\n", siteURL)
	}
	return b.String()
}
