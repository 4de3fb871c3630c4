package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"CryptoPulse/internal/recorder"
)

const defaultAPIBase = "https://api.telegram.org"

// TelegramNotifier pushes watchlist alerts to a Telegram chat via the
// Bot API.
type TelegramNotifier struct {
	baseURL  string
	botToken string
	chatID   string
	client   *http.Client
	log      *logrus.Entry
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, chatID, proxyURL string) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TelegramNotifier{
		baseURL:  defaultAPIBase,
		botToken: botToken,
		chatID:   chatID,
		client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		log: logrus.WithField("component", "notifier"),
	}
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Send posts one message to the configured chat. A response with
// ok=false counts as failure even on HTTP 200.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    t.chatID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	var ack struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !ack.OK {
		return fmt.Errorf("telegram API: status %d: %s", resp.StatusCode, ack.Description)
	}
	return nil
}

// SendWithRetry retries failed sends with doubling backoff, up to
// maxRetries additional attempts.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, text string, maxRetries int) error {
	backoff := time.Second
	var lastErr error
	for attempt := 0; ; attempt++ {
		lastErr = t.Send(ctx, text)
		if lastErr == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}
		t.log.WithError(lastErr).Warnf("send failed (attempt %d/%d), retrying in %v", attempt+1, maxRetries+1, backoff)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("all %d attempts failed: %w", maxRetries+1, lastErr)
}

// FormatAlert renders a watchlist threshold crossing.
func FormatAlert(evt *recorder.AlertEvent) string {
	arrow := "📈"
	if evt.ChangePct < 0 {
		arrow = "📉"
	}
	return fmt.Sprintf("%s <b>%s</b> moved %+.2f%% in 24h (threshold %.1f%%)",
		arrow, evt.Symbol, evt.ChangePct, evt.Threshold)
}
