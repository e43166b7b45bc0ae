// Package bridge implements the lookup-then-update flow between the inbound
// SMS webhook and the Monday.com board: resolve the sender to a contact item,
// post the message as an update there, and fan out notifications.
package bridge

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"

	"github.com/leozw/monday-sms-bridge/internal/config"
	"github.com/leozw/monday-sms-bridge/internal/metrics"
	"github.com/leozw/monday-sms-bridge/internal/monday"
)

// API is the subset of the Monday client the bridge depends on.
type API interface {
	LookupContactByPhone(ctx context.Context, number string) (*monday.Contact, error)
	CreateUpdate(ctx context.Context, itemID, body string) (string, error)
	CreateNotification(ctx context.Context, userID int64, targetID, targetType, text string) error
}

// InboundMessage is the provider payload after binding. Timestamp is opaque
// provider-supplied text and is embedded in the note verbatim.
type InboundMessage struct {
	From      string
	Body      string
	Timestamp string
}

// Status discriminates the outcome of one webhook delivery. The HTTP layer
// maps every status to 200 and lets the status pick only the response body:
// a non-2xx answer would make the SMS provider redeliver the same message.
type Status int

const (
	// StatusAccepted covers every path that got past payload validation,
	// including failed upstream calls.
	StatusAccepted Status = iota
	// StatusInvalid means the payload failed shape validation and no
	// outbound call was made.
	StatusInvalid
)

type Result struct {
	Status Status
	// ItemID is the item the update was addressed to.
	ItemID string
	// UpdateID is set when the update was created successfully.
	UpdateID string
	// Fallback reports that the default item was used instead of a match.
	Fallback bool
	// Reason describes a validation failure for StatusInvalid.
	Reason string
}

type Service struct {
	cfg     *config.Config
	client  API
	metrics *metrics.Collector
	logger  *zap.Logger
}

func NewService(cfg *config.Config, client API, metrics *metrics.Collector, logger *zap.Logger) *Service {
	return &Service{
		cfg:     cfg,
		client:  client,
		metrics: metrics,
		logger:  logger,
	}
}

// Process runs one inbound message through the bridge. It never returns an
// error: every failure past validation is absorbed here, logged, and counted,
// so the caller can unconditionally acknowledge the provider.
func (s *Service) Process(ctx context.Context, msg InboundMessage) Result {
	if strings.TrimSpace(msg.From) == "" || strings.TrimSpace(msg.Body) == "" {
		s.logger.Warn("Rejected webhook payload: missing sender or body")
		s.metrics.RecordMessageRejected()
		return Result{Status: StatusInvalid, Reason: "missing from or body"}
	}

	s.metrics.RecordMessageReceived()
	s.logger.Info("Received SMS", zap.String("from", msg.From))

	contact := s.lookupContact(ctx, msg.From)

	itemID := s.cfg.Monday.DefaultItemID
	senderLabel := msg.From
	if contact != nil {
		itemID = contact.ItemID
		senderLabel = fmt.Sprintf("%s (%s)", contact.Name, msg.From)
	}

	note := FormatNote(senderLabel, msg.Body, msg.Timestamp)

	updateID, err := s.client.CreateUpdate(ctx, itemID, note)
	if err != nil {
		s.logger.Error("Failed to create update",
			zap.String("item_id", itemID),
			zap.Error(err),
		)
		s.metrics.RecordUpdateFailed()
		return Result{Status: StatusAccepted, ItemID: itemID, Fallback: contact == nil}
	}
	s.metrics.RecordUpdateCreated()
	s.logger.Info("Created update",
		zap.String("update_id", updateID),
		zap.String("item_id", itemID),
	)

	s.notify(ctx, updateID, senderLabel, msg.Body)

	return Result{
		Status:   StatusAccepted,
		ItemID:   itemID,
		UpdateID: updateID,
		Fallback: contact == nil,
	}
}

// lookupContact resolves the sender to a contact item. Every failure mode is
// treated like "no match" so the note still lands on the default item.
func (s *Service) lookupContact(ctx context.Context, number string) *monday.Contact {
	if s.cfg.Monday.BoardID == "" || s.cfg.Monday.PhoneColumnID == "" {
		s.logger.Info("Skipping contact lookup: board or phone column not configured")
		return nil
	}

	contact, err := s.client.LookupContactByPhone(ctx, number)
	if err != nil {
		s.logger.Error("Contact lookup failed", zap.Error(err))
		s.metrics.RecordLookupFailed()
		return nil
	}
	if contact == nil {
		s.logger.Info("No contact found for phone", zap.String("phone", number))
		s.metrics.RecordLookupFallback()
		return nil
	}

	s.metrics.RecordLookupMatched()
	return contact
}

// notify sends an update-linked notification to every configured user.
// Failures are logged and counted but never affect the result.
func (s *Service) notify(ctx context.Context, updateID, senderLabel, body string) {
	if updateID == "" || len(s.cfg.Monday.UserIDs) == 0 {
		return
	}

	text := fmt.Sprintf("New SMS from %s:\n\n%s", senderLabel, body)
	for _, userID := range s.cfg.Monday.UserIDs {
		if err := s.client.CreateNotification(ctx, userID, updateID, "Post", text); err != nil {
			s.logger.Error("Failed to notify user",
				zap.Int64("user_id", userID),
				zap.Error(err),
			)
			s.metrics.RecordNotificationFailed()
			continue
		}
		s.metrics.RecordNotificationSent()
	}
}

// FormatNote renders the update body as HTML. Same inputs always produce the
// same output, so a redelivered message produces an identical note.
func FormatNote(sender, body, timestamp string) string {
	text := strings.ReplaceAll(html.EscapeString(body), "\n", "<br/>")
	note := fmt.Sprintf("<p><strong>New SMS from %s</strong></p><p>%s</p>", html.EscapeString(sender), text)
	if timestamp != "" {
		note += fmt.Sprintf("<p>Received at %s</p>", html.EscapeString(timestamp))
	}
	return note
}
