package notify

import (
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kellyson71/electron-supaco-IFRN-API/internal/derived"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/models"
	"github.com/kellyson71/electron-supaco-IFRN-API/internal/observability"
)

// Notifier pushes a short Telegram digest when something needs attention:
// subjects near the absence limit, a holiday within three days, coursework
// due within a day. Disabled entirely when no bot token is configured.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    *zap.SugaredLogger

	mu   sync.Mutex
	last string
}

func New(token string, chatID int64, log *zap.SugaredLogger) (*Notifier, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &Notifier{bot: bot, chatID: chatID, log: log}, nil
}

// Push sends the digest unless it equals the previously sent one, so a
// stable situation does not spam every sync cycle.
func (n *Notifier) Push(digest string) {
	if digest == "" {
		return
	}
	n.mu.Lock()
	if digest == n.last {
		n.mu.Unlock()
		return
	}
	n.last = digest
	n.mu.Unlock()

	_, err := n.bot.Send(tgbotapi.NewMessage(n.chatID, digest))
	if err != nil {
		n.log.Warnw("telegram send failed", "err", err)
		if isSystemErr(err) {
			observability.CaptureErr(err)
		}
	}
}

// BuildDigest composes the notification text. Empty means nothing notable.
func BuildDigest(risks []derived.AbsenceRisk, holiday *derived.UpcomingHoliday, next *models.CourseworkItem, now time.Time) string {
	var b strings.Builder

	for _, r := range risks {
		if !r.IsRisk {
			break // ranked most-urgent-first
		}
		fmt.Fprintf(&b, "⚠️ %s: %d/%d faltas (restam %d)\n", r.Subject, r.Absences, r.Limit, r.Remaining)
	}

	if holiday != nil && holiday.DaysUntil <= 3 {
		switch holiday.DaysUntil {
		case 0:
			fmt.Fprintf(&b, "🎉 Hoje é feriado: %s\n", holiday.Name)
		case 1:
			fmt.Fprintf(&b, "🌴 Amanhã é feriado: %s\n", holiday.Name)
		default:
			fmt.Fprintf(&b, "🌴 Feriado em %d dias: %s\n", holiday.DaysUntil, holiday.Name)
		}
	}

	if next != nil && next.Due.Sub(now) <= 24*time.Hour {
		fmt.Fprintf(&b, "📝 %s (%s) vence %s\n", next.Title, next.CourseName, next.Due.Format("02/01 15:04"))
	}

	return strings.TrimRight(b.String(), "\n")
}

// 5xx, 429 and timeouts are systemic; Telegram-side validation noise is not.
func isSystemErr(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "429") || strings.Contains(s, "502") ||
		strings.Contains(s, "503") || strings.Contains(s, "timeout")
}
