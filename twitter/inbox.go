package twitter

import (
	"time"

	"github.com/spf13/cast"
)

type User struct {
	ID              string  `json:"id"`
	ScreenName      string  `json:"screen_name"`
	Name            string  `json:"name"`
	ProfileImageURL string  `json:"profile_image_url"`
	Description     *string `json:"description,omitempty"`
	Verified        *bool   `json:"verified,omitempty"`
	Protected       *bool   `json:"protected,omitempty"`
	FollowersCount  *int    `json:"followers_count,omitempty"`
	FriendsCount    *int    `json:"friends_count,omitempty"`
}

// Message is a single direct message. The screen names are copied from the
// users of the same snapshot when it was decoded.
type Message struct {
	ID                  string   `json:"id"`
	Text                string   `json:"text"`
	SenderID            string   `json:"sender_id"`
	RecipientID         string   `json:"recipient_id"`
	CreatedAt           string   `json:"created_at"` // Milliseconds
	MediaURLs           []string `json:"media_urls,omitempty"`
	SenderScreenName    *string  `json:"sender_screen_name,omitempty"`
	RecipientScreenName *string  `json:"recipient_screen_name,omitempty"`
}

// Time converts CreatedAt. ok is false when it is not a millisecond count.
func (m Message) Time() (t time.Time, ok bool) {
	ms, err := cast.ToInt64E(m.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(0, ms*int64(time.Millisecond)).UTC(), true
}

type Participant struct {
	ID         string `json:"id"`
	ScreenName string `json:"screen_name"`
}

type Conversation struct {
	ConversationID string        `json:"conversation_id"`
	Messages       []Message     `json:"messages"`
	Participants   []Participant `json:"participants"`
}

// LastMessage returns the most recently arrived message.
func (c Conversation) LastMessage() (Message, bool) {
	if len(c.Messages) == 0 {
		return Message{}, false
	}
	return c.Messages[len(c.Messages)-1], true
}

// AwaitingReply reports whether the last message was sent by someone other
// than userID.
func (c Conversation) AwaitingReply(userID string) bool {
	m, ok := c.LastMessage()
	return ok && m.SenderID != userID
}

type TimelineStatus struct {
	Status     string  `json:"status"`
	MinEntryID *string `json:"min_entry_id,omitempty"`
}

type InboxTimelines struct {
	Trusted   *TimelineStatus `json:"trusted,omitempty"`
	Untrusted *TimelineStatus `json:"untrusted,omitempty"`
}

// InboxSnapshot is one decoded inbox_initial_state response. Conversations
// are ordered by id and users by their key in the response.
type InboxSnapshot struct {
	Conversations            []Conversation  `json:"conversations"`
	Users                    []User          `json:"users"`
	Cursor                   *string         `json:"cursor,omitempty"`
	LastSeenEventID          *string         `json:"last_seen_event_id,omitempty"`
	TrustedLastSeenEventID   *string         `json:"trusted_last_seen_event_id,omitempty"`
	UntrustedLastSeenEventID *string         `json:"untrusted_last_seen_event_id,omitempty"`
	InboxTimelines           *InboxTimelines `json:"inbox_timelines,omitempty"`
	UserID                   string          `json:"user_id"`
}

// Conversation finds a conversation by id.
func (s *InboxSnapshot) Conversation(conversationID string) (Conversation, bool) {
	for _, c := range s.Conversations {
		if c.ConversationID == conversationID {
			return c, true
		}
	}
	return Conversation{}, false
}
