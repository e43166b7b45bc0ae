// Package monday is a thin client for the Monday.com GraphQL API covering the
// three operations the bridge needs: contact lookup by phone column, posting
// an update to an item, and notifying users about a new update.
package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/leozw/monday-sms-bridge/internal/config"
	"github.com/leozw/monday-sms-bridge/internal/phone"
)

// Contact is a board item matched by phone number.
type Contact struct {
	ItemID string
	Name   string
}

type Client struct {
	cfg    config.MondayConfig
	client *http.Client
	logger *zap.Logger
}

func NewClient(cfg config.MondayConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// LookupContactByPhone scans the contact board's phone column for an item
// whose normalized number equals the sender's. Returns nil when nothing
// matches. The comparison happens locally because the board stores numbers
// in whatever format the operator typed them in.
func (c *Client) LookupContactByPhone(ctx context.Context, number string) (*Contact, error) {
	normalized := phone.Normalize(number)
	if normalized == "" {
		return nil, nil
	}

	var data struct {
		Boards []struct {
			ItemsPage struct {
				Items []struct {
					ID           string `json:"id"`
					Name         string `json:"name"`
					ColumnValues []struct {
						ID   string `json:"id"`
						Text string `json:"text"`
					} `json:"column_values"`
				} `json:"items"`
			} `json:"items_page"`
		} `json:"boards"`
	}

	req := itemsPageRequest(c.cfg.BoardID, c.cfg.PageLimit, c.cfg.PhoneColumnID)
	if err := c.do(ctx, req, &data); err != nil {
		return nil, fmt.Errorf("contact lookup: %w", err)
	}

	for _, board := range data.Boards {
		for _, item := range board.ItemsPage.Items {
			for _, col := range item.ColumnValues {
				if v := phone.Normalize(col.Text); v != "" && v == normalized {
					c.logger.Info("Matched contact",
						zap.String("item_id", item.ID),
						zap.String("name", item.Name),
					)
					return &Contact{ItemID: item.ID, Name: item.Name}, nil
				}
			}
		}
	}

	return nil, nil
}

// CreateUpdate posts an update to an item and returns the new update's ID.
func (c *Client) CreateUpdate(ctx context.Context, itemID, body string) (string, error) {
	var data struct {
		CreateUpdate struct {
			ID string `json:"id"`
		} `json:"create_update"`
	}

	if err := c.do(ctx, createUpdateRequest(itemID, body), &data); err != nil {
		return "", fmt.Errorf("create update: %w", err)
	}

	return data.CreateUpdate.ID, nil
}

// CreateNotification sends a Monday notification to a user, linked to the
// given target (an update, when targetType is "Post").
func (c *Client) CreateNotification(ctx context.Context, userID int64, targetID, targetType, text string) error {
	req := createNotificationRequest(userID, targetID, targetType, text)
	if err := c.do(ctx, req, nil); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// do posts a GraphQL request and decodes the data envelope into out. A 200
// response carrying a GraphQL errors array counts as a failed call.
func (c *Client) do(ctx context.Context, req gqlRequest, out interface{}) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", c.cfg.APIKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("monday returned %d: %s", resp.StatusCode, string(respBody))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("monday error: %s", envelope.Errors[0].Message)
	}

	if out != nil && envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}

	return nil
}
