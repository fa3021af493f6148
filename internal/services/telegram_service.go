package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/example/epkadmin/internal/models"
)

// Notifier tells staff about events worth a look.
type Notifier interface {
	NotifySignup(ctx context.Context, user *models.AdminUser) error
	NotifyImport(ctx context.Context, result ImportResult) error
}

const telegramAPI = "https://api.telegram.org"

// TelegramService posts notifications to the admin Telegram chat.
type TelegramService struct {
	botToken    string
	adminChatID string
	baseURL     string
	client      *http.Client
	log         *zap.Logger
}

// NewTelegramService creates a TelegramService. It does nothing when either the
// token or the chat id is empty.
func NewTelegramService(botToken, adminChatID string, log *zap.Logger) *TelegramService {
	return &TelegramService{
		botToken:    botToken,
		adminChatID: adminChatID,
		baseURL:     telegramAPI,
		client:      &http.Client{Timeout: 10 * time.Second},
		log:         log,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// Enabled reports whether messages will actually be sent.
func (s *TelegramService) Enabled() bool {
	return s.botToken != "" && s.adminChatID != ""
}

// SendToAdmin sends an HTML message to the admin chat.
func (s *TelegramService) SendToAdmin(ctx context.Context, text string) error {
	if !s.Enabled() {
		return nil
	}

	body, err := json.Marshal(telegramMessage{ChatID: s.adminChatID, Text: text, ParseMode: "HTML"})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Warn("telegram send failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.log.Warn("telegram unexpected status", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}
	return nil
}

// NotifySignup announces a new admin panel account.
func (s *TelegramService) NotifySignup(ctx context.Context, user *models.AdminUser) error {
	message := fmt.Sprintf(`<b>New admin signup</b>
<b>Name:</b> %s
<b>Organization:</b> %s (%s)
<b>Role:</b> %s
<b>Email:</b> %s
<b>Phone:</b> %s`,
		html.EscapeString(user.Name),
		html.EscapeString(user.Organization),
		html.EscapeString(user.OrganizationSize),
		html.EscapeString(user.Role),
		html.EscapeString(user.Email),
		html.EscapeString(user.Phone),
	)
	return s.SendToAdmin(ctx, message)
}

// NotifyImport reports the outcome of a bulk EPK import.
func (s *TelegramService) NotifyImport(ctx context.Context, result ImportResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>EPK import finished</b>\n<b>Imported:</b> %d\n<b>Failed:</b> %d", result.Success, result.Failed)
	for i, rowErr := range result.Errors {
		if i == 5 {
			fmt.Fprintf(&b, "\n… and %d more", len(result.Errors)-i)
			break
		}
		fmt.Fprintf(&b, "\n• %s: %s", html.EscapeString(rowErr.ArtistName), html.EscapeString(rowErr.Error))
	}
	return s.SendToAdmin(ctx, b.String())
}
