package twitter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"
)

const (
	inboxInitialStatePath = "/i/api/1.1/dm/inbox_initial_state.json"
	dmNewPath             = "/i/api/1.1/dm/new2.json"
)

type sendDirectMessageRequest struct {
	ConversationID    string `json:"conversation_id"`
	RecipientIDs      bool   `json:"recipient_ids"`
	Text              string `json:"text"`
	CardsPlatform     string `json:"cards_platform"`
	IncludeCards      int    `json:"include_cards"`
	IncludeQuoteCount bool   `json:"include_quote_count"`
	DmUsers           bool   `json:"dm_users"`
}

// GetDirectMessageConversations fetches one page of the inbox of screenName.
// An empty cursor fetches the first page; the snapshot's Cursor continues it.
func (c *Client) GetDirectMessageConversations(ctx context.Context, screenName string, cursor string) (*InboxSnapshot, error) {
	u := c.baseURL + inboxInitialStatePath
	if cursor != "" {
		u += "?cursor=" + url.QueryEscape(cursor)
	}

	var doc jsoniter.Any
	if _, err := c.Request(ctx, http.MethodGet, u, nil, &doc); err != nil {
		return nil, fmt.Errorf("twitter: inbox initial state failed: %w", err)
	}

	userID, err := c.GetUserIDByScreenName(ctx, screenName)
	if err != nil {
		return nil, err
	}

	snapshot, err := ReconstructConversations(doc, userID)
	if err != nil {
		return nil, err
	}
	c.cacheUsers(snapshot.Users)

	c.logger.Debug("fetched inbox",
		"conversations", len(snapshot.Conversations),
		"users", len(snapshot.Users),
	)

	return snapshot, nil
}

// SendDirectMessage posts text to an existing conversation and returns the
// raw response.
func (c *Client) SendDirectMessage(ctx context.Context, conversationID string, text string) (jsoniter.Any, error) {
	payload := sendDirectMessageRequest{
		ConversationID:    conversationID,
		RecipientIDs:      false,
		Text:              text,
		CardsPlatform:     "Web-12",
		IncludeCards:      1,
		IncludeQuoteCount: true,
		DmUsers:           false,
	}

	var res jsoniter.Any
	if _, err := c.Request(ctx, http.MethodPost, c.baseURL+dmNewPath, &payload, &res); err != nil {
		return nil, fmt.Errorf("twitter: sending direct message to %s: %w", conversationID, err)
	}

	c.logger.Info("sent direct message", "conversation_id", conversationID)

	return res, nil
}
