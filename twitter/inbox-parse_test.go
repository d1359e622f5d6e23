package twitter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const inboxScenario = `{
  "inbox_initial_state": {
    "conversations": {"c1": {"participants": [{"user_id": "u1"}]}},
    "entries": [
      {"message": {"conversation_id": "c1", "message_data": {"id": "m1", "text": "hi", "sender_id": "u1", "recipient_id": "u2", "time": "123"}}}
    ],
    "users": {"u1": {"id_str": "u1", "screen_name": "alice", "name": "Alice", "profile_image_url_https": "x"}}
  }
}`

func TestParseInbox_Scenario(t *testing.T) {
	snapshot, err := ParseInbox([]byte(inboxScenario), "u2")
	require.NoError(t, err)

	assert.Equal(t, "u2", snapshot.UserID)
	require.Len(t, snapshot.Conversations, 1)

	conv := snapshot.Conversations[0]
	assert.Equal(t, "c1", conv.ConversationID)
	assert.Equal(t, []Participant{{ID: "u1", ScreenName: "alice"}}, conv.Participants)

	require.Len(t, conv.Messages, 1)
	m := conv.Messages[0]
	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, "hi", m.Text)
	assert.Equal(t, "u1", m.SenderID)
	assert.Equal(t, "u2", m.RecipientID)
	assert.Equal(t, "123", m.CreatedAt)
	assert.Nil(t, m.MediaURLs)
	require.NotNil(t, m.SenderScreenName)
	assert.Equal(t, "alice", *m.SenderScreenName)
	assert.Nil(t, m.RecipientScreenName)

	require.Len(t, snapshot.Users, 1)
	assert.Equal(t, User{ID: "u1", ScreenName: "alice", Name: "Alice", ProfileImageURL: "x"}, snapshot.Users[0])
}

func TestParseInbox_MissingRoot(t *testing.T) {
	for name, doc := range map[string]string{
		"missing": `{"something_else": {}}`,
		"null":    `{"inbox_initial_state": null}`,
		"invalid": `not json`,
		"empty":   ``,
	} {
		t.Run(name, func(t *testing.T) {
			snapshot, err := ParseInbox([]byte(doc), "me")
			require.Error(t, err)
			assert.Nil(t, snapshot)
			assert.True(t, IsStructuralError(err))

			var structErr *StructuralError
			require.ErrorAs(t, err, &structErr)
			assert.Equal(t, "inbox_initial_state", structErr.Key)
		})
	}
}

func TestParseInbox_MalformedCollectionsDegrade(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":      `{"inbox_initial_state": {}}`,
		"wrongTypes": `{"inbox_initial_state": {"conversations": [], "entries": {}, "users": "nope", "cursor": 5}}`,
		"nulls":      `{"inbox_initial_state": {"conversations": null, "entries": null, "users": null}}`,
	} {
		t.Run(name, func(t *testing.T) {
			snapshot, err := ParseInbox([]byte(doc), "me")
			require.NoError(t, err)
			assert.Empty(t, snapshot.Conversations)
			assert.Empty(t, snapshot.Users)
			assert.Nil(t, snapshot.Cursor)
			assert.Nil(t, snapshot.InboxTimelines)
		})
	}
}

func TestParseInbox_OrphanMessagesDropped(t *testing.T) {
	doc := `{"inbox_initial_state": {
		"conversations": {"c1": {}},
		"entries": [
			{"message": {"conversation_id": "c2", "message_data": {"id": "m2", "text": "lost", "sender_id": "a", "recipient_id": "b", "time": "1"}}},
			{"message": {"conversation_id": "c1", "message_data": {"id": "m1", "text": "kept", "sender_id": "a", "recipient_id": "b", "time": "2"}}}
		]
	}}`

	snapshot, err := ParseInbox([]byte(doc), "a")
	require.NoError(t, err)
	require.Len(t, snapshot.Conversations, 1)

	conv := snapshot.Conversations[0]
	assert.Equal(t, "c1", conv.ConversationID)
	require.Len(t, conv.Messages, 1)
	assert.Equal(t, "m1", conv.Messages[0].ID)
	assert.Empty(t, conv.Participants)
}

func TestParseInbox_ConversationWithoutMessages(t *testing.T) {
	doc := `{"inbox_initial_state": {"conversations": {"c1": {"participants": [{"user_id": "u9"}]}}}}`

	snapshot, err := ParseInbox([]byte(doc), "u9")
	require.NoError(t, err)
	require.Len(t, snapshot.Conversations, 1)
	assert.NotNil(t, snapshot.Conversations[0].Messages)
	assert.Empty(t, snapshot.Conversations[0].Messages)
	assert.Equal(t, []Participant{{ID: "u9", ScreenName: "u9"}}, snapshot.Conversations[0].Participants)
}

func TestParseInbox_ParticipantResolution(t *testing.T) {
	doc := `{"inbox_initial_state": {
		"conversations": {"c1": {"participants": [
			{"user_id": "u1"},
			{"user_id": "u2"},
			{"user_id": 3},
			{"no_id": true},
			{"user_id": "u4"}
		]}},
		"users": {
			"u1": {"id_str": "u1", "screen_name": "alice", "name": "Alice", "profile_image_url_https": "x"},
			"u4": {"screen_name": "dave"}
		}
	}}`

	snapshot, err := ParseInbox([]byte(doc), "u1")
	require.NoError(t, err)
	require.Len(t, snapshot.Conversations, 1)

	// u4 has no complete user record but its screen name still resolves.
	assert.Equal(t, []Participant{
		{ID: "u1", ScreenName: "alice"},
		{ID: "u2", ScreenName: "u2"},
		{ID: "u4", ScreenName: "dave"},
	}, snapshot.Conversations[0].Participants)
	require.Len(t, snapshot.Users, 1)
	assert.Equal(t, "u1", snapshot.Users[0].ID)
}

func TestParseInbox_Users(t *testing.T) {
	doc := `{"inbox_initial_state": {"users": {
		"b": {"id_str": "2", "screen_name": "bob", "name": "Bob", "profile_image_url_https": "https://img/b",
		      "description": "hello", "verified": true, "protected": false, "followers_count": 10, "friends_count": 2.5},
		"a": {"id_str": "1", "screen_name": "amy", "name": "Amy", "profile_image_url_https": "https://img/a", "verified": "yes"},
		"c": {"id_str": "3", "screen_name": "cat", "name": "Cat"},
		"d": {"id_str": 4, "screen_name": "dog", "name": "Dog", "profile_image_url_https": "https://img/d"}
	}}}`

	snapshot, err := ParseInbox([]byte(doc), "1")
	require.NoError(t, err)
	require.Len(t, snapshot.Users, 2)

	amy := snapshot.Users[0]
	assert.Equal(t, "amy", amy.ScreenName)
	assert.Nil(t, amy.Verified)
	assert.Nil(t, amy.Description)

	bob := snapshot.Users[1]
	assert.Equal(t, "bob", bob.ScreenName)
	require.NotNil(t, bob.Description)
	assert.Equal(t, "hello", *bob.Description)
	require.NotNil(t, bob.Verified)
	assert.True(t, *bob.Verified)
	require.NotNil(t, bob.Protected)
	assert.False(t, *bob.Protected)
	require.NotNil(t, bob.FollowersCount)
	assert.Equal(t, 10, *bob.FollowersCount)
	assert.Nil(t, bob.FriendsCount)
}

func TestParseInbox_MessagesKeepArrivalOrderAndSkipIncomplete(t *testing.T) {
	doc := `{"inbox_initial_state": {
		"conversations": {"c1": {}},
		"entries": [
			{"message": {"conversation_id": "c1", "message_data": {"id": "3", "text": "third", "sender_id": "a", "recipient_id": "b", "time": "30"}}},
			{"message": {"conversation_id": "c1", "message_data": {"id": "x", "sender_id": "a", "recipient_id": "b", "time": "31"}}},
			{"message": {"conversation_id": "c1"}},
			{"message": {"message_data": {"id": "y", "text": "no conversation", "sender_id": "a", "recipient_id": "b", "time": "32"}}},
			{"trust_conversation": {"conversation_id": "c1"}},
			{"message": {"conversation_id": "c1", "message_data": {"id": "1", "text": "first", "sender_id": "b", "recipient_id": "a", "time": "10"}}}
		]
	}}`

	snapshot, err := ParseInbox([]byte(doc), "a")
	require.NoError(t, err)
	require.Len(t, snapshot.Conversations, 1)

	messages := snapshot.Conversations[0].Messages
	require.Len(t, messages, 2)
	assert.Equal(t, "3", messages[0].ID)
	assert.Equal(t, "1", messages[1].ID)
}

func TestParseInbox_EveryConversationGetsItsBucket(t *testing.T) {
	doc := `{"inbox_initial_state": {
		"conversations": {"z": {}, "a": {}, "m": {}},
		"entries": [
			{"message": {"conversation_id": "m", "message_data": {"id": "1", "text": "t", "sender_id": "s", "recipient_id": "r", "time": "1"}}},
			{"message": {"conversation_id": "a", "message_data": {"id": "2", "text": "t", "sender_id": "s", "recipient_id": "r", "time": "2"}}},
			{"message": {"conversation_id": "z", "message_data": {"id": "3", "text": "t", "sender_id": "s", "recipient_id": "r", "time": "3"}}},
			{"message": {"conversation_id": "a", "message_data": {"id": "4", "text": "t", "sender_id": "s", "recipient_id": "r", "time": "4"}}}
		]
	}}`

	snapshot, err := ParseInbox([]byte(doc), "s")
	require.NoError(t, err)
	require.Len(t, snapshot.Conversations, 3)

	ids := map[string][]string{}
	var order []string
	for _, conv := range snapshot.Conversations {
		order = append(order, conv.ConversationID)
		for _, m := range conv.Messages {
			ids[conv.ConversationID] = append(ids[conv.ConversationID], m.ID)
		}
	}
	assert.Equal(t, []string{"a", "m", "z"}, order)
	assert.Equal(t, map[string][]string{"a": {"2", "4"}, "m": {"1"}, "z": {"3"}}, ids)
}

func TestParseInbox_MediaURLs(t *testing.T) {
	doc := `{"inbox_initial_state": {
		"conversations": {"c1": {}},
		"entries": [
			{"message": {"conversation_id": "c1", "message_data": {"id": "1", "text": "t", "sender_id": "s", "recipient_id": "r", "time": "1",
				"entities": {
					"media": [
						{"media_url": "http://m/plain"},
						{"media_url_https": "https://m/a", "media_url": "http://m/a"},
						{"type": "photo"}
					],
					"urls": [
						{"expanded_url": "https://example.com/1"},
						{"url": "https://t.co/x"},
						{"expanded_url": "https://example.com/2"}
					]
				}}}},
			{"message": {"conversation_id": "c1", "message_data": {"id": "2", "text": "t", "sender_id": "s", "recipient_id": "r", "time": "2",
				"entities": {"urls": [], "media": []}}}},
			{"message": {"conversation_id": "c1", "message_data": {"id": "3", "text": "t", "sender_id": "s", "recipient_id": "r", "time": "3",
				"entities": {"urls": [{"url": "https://t.co/y"}]}}}}
		]
	}}`

	snapshot, err := ParseInbox([]byte(doc), "s")
	require.NoError(t, err)
	messages := snapshot.Conversations[0].Messages
	require.Len(t, messages, 3)

	assert.Equal(t, []string{
		"https://example.com/1",
		"https://example.com/2",
		"http://m/plain",
		"https://m/a",
	}, messages[0].MediaURLs)
	assert.Nil(t, messages[1].MediaURLs)
	assert.Nil(t, messages[2].MediaURLs)
}

func TestParseInbox_CursorsAndTimelines(t *testing.T) {
	doc := `{"inbox_initial_state": {
		"cursor": "GRwmgICg",
		"last_seen_event_id": "100",
		"trusted_last_seen_event_id": "101",
		"inbox_timelines": {
			"trusted": {"status": "HAS_MORE", "min_entry_id": "90"},
			"untrusted": {}
		}
	}}`

	snapshot, err := ParseInbox([]byte(doc), "me")
	require.NoError(t, err)

	require.NotNil(t, snapshot.Cursor)
	assert.Equal(t, "GRwmgICg", *snapshot.Cursor)
	require.NotNil(t, snapshot.LastSeenEventID)
	assert.Equal(t, "100", *snapshot.LastSeenEventID)
	require.NotNil(t, snapshot.TrustedLastSeenEventID)
	assert.Equal(t, "101", *snapshot.TrustedLastSeenEventID)
	assert.Nil(t, snapshot.UntrustedLastSeenEventID)

	require.NotNil(t, snapshot.InboxTimelines)
	require.NotNil(t, snapshot.InboxTimelines.Trusted)
	assert.Equal(t, "HAS_MORE", snapshot.InboxTimelines.Trusted.Status)
	require.NotNil(t, snapshot.InboxTimelines.Trusted.MinEntryID)
	assert.Equal(t, "90", *snapshot.InboxTimelines.Trusted.MinEntryID)

	require.NotNil(t, snapshot.InboxTimelines.Untrusted)
	assert.Equal(t, "", snapshot.InboxTimelines.Untrusted.Status)
	assert.Nil(t, snapshot.InboxTimelines.Untrusted.MinEntryID)
}

func TestInboxTimelines_TierMissing(t *testing.T) {
	snapshot, err := ParseInbox([]byte(`{"inbox_initial_state": {"inbox_timelines": {"untrusted": {"status": "AT_END"}}}}`), "me")
	require.NoError(t, err)
	require.NotNil(t, snapshot.InboxTimelines)
	assert.Nil(t, snapshot.InboxTimelines.Trusted)
	require.NotNil(t, snapshot.InboxTimelines.Untrusted)
	assert.Equal(t, "AT_END", snapshot.InboxTimelines.Untrusted.Status)
}

func TestMessage_Time(t *testing.T) {
	tm, ok := Message{CreatedAt: "1700000000123"}.Time()
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 123000000, time.UTC), tm)

	_, ok = Message{CreatedAt: "yesterday"}.Time()
	assert.False(t, ok)
}

func TestConversation_AwaitingReply(t *testing.T) {
	conv := Conversation{}
	_, ok := conv.LastMessage()
	assert.False(t, ok)
	assert.False(t, conv.AwaitingReply("me"))

	conv.Messages = []Message{{ID: "1", SenderID: "me"}, {ID: "2", SenderID: "you"}}
	last, ok := conv.LastMessage()
	require.True(t, ok)
	assert.Equal(t, "2", last.ID)
	assert.True(t, conv.AwaitingReply("me"))
	assert.False(t, conv.AwaitingReply("you"))
}

func TestInboxSnapshot_Conversation(t *testing.T) {
	snapshot, err := ParseInbox([]byte(inboxScenario), "u2")
	require.NoError(t, err)

	conv, ok := snapshot.Conversation("c1")
	require.True(t, ok)
	assert.Len(t, conv.Messages, 1)

	_, ok = snapshot.Conversation("c2")
	assert.False(t, ok)
}
