package twitter

import (
	"sort"

	jsoniter "github.com/json-iterator/go"
)

// ParseInbox decodes an inbox_initial_state response. See
// ReconstructConversations.
func ParseInbox(data []byte, userID string) (*InboxSnapshot, error) {
	return ReconstructConversations(jsonTwitter.Get(data), userID)
}

// ReconstructConversations groups the messages of an inbox document into
// its conversations. The only error is a *StructuralError when the document
// has no inbox_initial_state object. Below that, records missing a required
// field are dropped and missing collections are treated as empty.
func ReconstructConversations(doc jsoniter.Any, userID string) (*InboxSnapshot, error) {
	state := doc.Get("inbox_initial_state")
	if state.ValueType() != jsoniter.ObjectValue {
		return nil, &StructuralError{Key: "inbox_initial_state"}
	}

	conversations, _ := anyObject(state, "conversations")
	entries, _ := anyArray(state, "entries")
	users, _ := anyObject(state, "users")

	grouped := groupMessagesByConversation(entries)

	snapshot := &InboxSnapshot{
		Conversations:            make([]Conversation, 0, len(conversations)),
		Users:                    parseUsers(users),
		Cursor:                   optString(state, "cursor"),
		LastSeenEventID:          optString(state, "last_seen_event_id"),
		TrustedLastSeenEventID:   optString(state, "trusted_last_seen_event_id"),
		UntrustedLastSeenEventID: optString(state, "untrusted_last_seen_event_id"),
		InboxTimelines:           parseInboxTimelines(state.Get("inbox_timelines")),
		UserID:                   userID,
	}

	for _, conversationID := range sortedKeys(conversations) {
		snapshot.Conversations = append(
			snapshot.Conversations,
			parseConversation(conversationID, conversations[conversationID], grouped[conversationID], users),
		)
	}

	return snapshot, nil
}

func sortedKeys(m map[string]jsoniter.Any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func parseUsers(users map[string]jsoniter.Any) []User {
	parsed := make([]User, 0, len(users))
	for _, key := range sortedKeys(users) {
		if user, ok := parseUser(users[key]); ok {
			parsed = append(parsed, user)
		}
	}
	return parsed
}

func parseUser(v jsoniter.Any) (user User, ok bool) {
	if user.ID, ok = anyString(v, "id_str"); !ok {
		return
	}
	if user.ScreenName, ok = anyString(v, "screen_name"); !ok {
		return
	}
	if user.Name, ok = anyString(v, "name"); !ok {
		return
	}
	if user.ProfileImageURL, ok = anyString(v, "profile_image_url_https"); !ok {
		return
	}

	user.Description = optString(v, "description")
	user.Verified = optBool(v, "verified")
	user.Protected = optBool(v, "protected")
	user.FollowersCount = optInt(v, "followers_count")
	user.FriendsCount = optInt(v, "friends_count")

	return user, true
}

// groupMessagesByConversation buckets the message node of every entry by its
// conversation_id, keeping arrival order.
func groupMessagesByConversation(entries []jsoniter.Any) map[string][]jsoniter.Any {
	grouped := make(map[string][]jsoniter.Any)
	for _, entry := range entries {
		message := entry.Get("message")
		if message.ValueType() == jsoniter.InvalidValue {
			continue
		}

		conversationID, ok := anyString(message, "conversation_id")
		if !ok {
			continue
		}
		grouped[conversationID] = append(grouped[conversationID], message)
	}
	return grouped
}

func parseConversation(conversationID string, conv jsoniter.Any, messages []jsoniter.Any, users map[string]jsoniter.Any) Conversation {
	c := Conversation{
		ConversationID: conversationID,
		Messages:       make([]Message, 0, len(messages)),
		Participants:   []Participant{},
	}

	for _, msg := range messages {
		if m, ok := parseMessage(msg, users); ok {
			c.Messages = append(c.Messages, m)
		}
	}

	participants, _ := anyArray(conv, "participants")
	for _, p := range participants {
		id, ok := anyString(p, "user_id")
		if !ok {
			continue
		}
		c.Participants = append(c.Participants, Participant{
			ID:         id,
			ScreenName: screenNameOr(users, id, id),
		})
	}

	return c
}

func parseMessage(msg jsoniter.Any, users map[string]jsoniter.Any) (m Message, ok bool) {
	data := msg.Get("message_data")
	if data.ValueType() == jsoniter.InvalidValue {
		return m, false
	}

	if m.ID, ok = anyString(data, "id"); !ok {
		return
	}
	if m.Text, ok = anyString(data, "text"); !ok {
		return
	}
	if m.SenderID, ok = anyString(data, "sender_id"); !ok {
		return
	}
	if m.RecipientID, ok = anyString(data, "recipient_id"); !ok {
		return
	}
	if m.CreatedAt, ok = anyString(data, "time"); !ok {
		return
	}

	m.MediaURLs = extractMediaURLs(data)
	m.SenderScreenName = lookupScreenName(users, m.SenderID)
	m.RecipientScreenName = lookupScreenName(users, m.RecipientID)

	return m, true
}

func lookupScreenName(users map[string]jsoniter.Any, id string) *string {
	user, ok := users[id]
	if !ok {
		return nil
	}
	return optString(user, "screen_name")
}

func screenNameOr(users map[string]jsoniter.Any, id string, fallback string) string {
	if s := lookupScreenName(users, id); s != nil {
		return *s
	}
	return fallback
}

// extractMediaURLs returns the expanded urls followed by the media urls, or
// nil when there are none.
func extractMediaURLs(data jsoniter.Any) []string {
	var urls []string

	urlEntities, _ := anyArray(data, "entities", "urls")
	for _, u := range urlEntities {
		if expanded, ok := anyString(u, "expanded_url"); ok {
			urls = append(urls, expanded)
		}
	}

	mediaEntities, _ := anyArray(data, "entities", "media")
	for _, media := range mediaEntities {
		if mediaURL, ok := anyString(media, "media_url_https"); ok {
			urls = append(urls, mediaURL)
		} else if mediaURL, ok := anyString(media, "media_url"); ok {
			urls = append(urls, mediaURL)
		}
	}

	return urls
}

func parseInboxTimelines(v jsoniter.Any) *InboxTimelines {
	if v.ValueType() != jsoniter.ObjectValue {
		return nil
	}
	return &InboxTimelines{
		Trusted:   parseTimelineStatus(v.Get("trusted")),
		Untrusted: parseTimelineStatus(v.Get("untrusted")),
	}
}

func parseTimelineStatus(v jsoniter.Any) *TimelineStatus {
	if v.ValueType() != jsoniter.ObjectValue {
		return nil
	}
	status, _ := anyString(v, "status")
	return &TimelineStatus{
		Status:     status,
		MinEntryID: optString(v, "min_entry_id"),
	}
}
