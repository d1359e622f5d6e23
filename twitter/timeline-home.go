package twitter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	jsoniter "github.com/json-iterator/go"
)

const (
	homeTimelinePath = "/i/api/graphql/HJFjzBgCs16TqxewQOeLNg/HomeTimeline"

	instructionAddEntries = "TimelineAddEntries"
)

var homeTimelineFeatures = map[string]bool{
	"rweb_tipjar_consumption_enabled":                                         true,
	"responsive_web_graphql_exclude_directive_enabled":                        true,
	"verified_phone_label_enabled":                                            false,
	"creator_subscriptions_tweet_preview_api_enabled":                         true,
	"responsive_web_graphql_timeline_navigation_enabled":                      true,
	"responsive_web_graphql_skip_user_profile_image_extensions_enabled":       false,
	"communities_web_enable_tweet_community_results_fetch":                    true,
	"c9s_tweet_anatomy_moderator_badge_enabled":                               true,
	"articles_preview_enabled":                                                true,
	"responsive_web_edit_tweet_api_enabled":                                   true,
	"graphql_is_translatable_rweb_tweet_is_translatable_enabled":              true,
	"view_counts_everywhere_api_enabled":                                      true,
	"longform_notetweets_consumption_enabled":                                 true,
	"responsive_web_twitter_article_tweet_consumption_enabled":                true,
	"tweet_awards_web_tipping_enabled":                                        false,
	"creator_subscriptions_quote_tweet_preview_enabled":                       false,
	"freedom_of_speech_not_reach_fetch_enabled":                               true,
	"standardized_nudges_misinfo":                                             true,
	"tweet_with_visibility_results_prefer_gql_limited_actions_policy_enabled": true,
	"rweb_video_timestamps_enabled":                                           true,
	"longform_notetweets_rich_text_read_enabled":                              true,
	"longform_notetweets_inline_media_enabled":                                true,
	"responsive_web_enhance_cards_enabled":                                    false,
}

type homeTimelineVariables struct {
	Count                  int      `json:"count"`
	IncludePromotedContent bool     `json:"includePromotedContent"`
	LatestControlAvailable bool     `json:"latestControlAvailable"`
	RequestContext         string   `json:"requestContext"`
	WithCommunity          bool     `json:"withCommunity"`
	SeenTweetIDs           []string `json:"seenTweetIds"`
}

func (c *Client) homeTimelineURL(count int, seenTweetIDs []string) (string, error) {
	if seenTweetIDs == nil {
		seenTweetIDs = []string{}
	}

	variables, err := jsonTwitter.MarshalToString(homeTimelineVariables{
		Count:                  count,
		IncludePromotedContent: false,
		LatestControlAvailable: true,
		RequestContext:         "launch",
		WithCommunity:          false,
		SeenTweetIDs:           seenTweetIDs,
	})
	if err != nil {
		return "", err
	}

	features, err := jsonTwitter.MarshalToString(homeTimelineFeatures)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("variables", variables)
	query.Set("features", features)

	return c.baseURL + homeTimelinePath + "?" + query.Encode(), nil
}

// FetchHomeTimeline requests the home timeline and returns its tweets in
// timeline order.
func (c *Client) FetchHomeTimeline(ctx context.Context, count int, seenTweetIDs []string) ([]TweetResult, error) {
	u, err := c.homeTimelineURL(count, seenTweetIDs)
	if err != nil {
		return nil, err
	}

	var body []byte
	meta, err := c.Request(ctx, http.MethodGet, u, nil, &body)
	if err != nil {
		return nil, fmt.Errorf("twitter: home timeline failed: %w", err)
	}

	tweets := ExtractTimelineEntries(body)
	c.logger.Debug("fetched home timeline",
		"tweets", len(tweets),
		"rate_limit_remaining", meta.RateLimit.Remaining,
	)

	return tweets, nil
}

// ExtractTimelineEntries returns the tweets of a home timeline response in
// instruction and entry order. Entries without a tweet result, or whose
// result does not decode, are skipped. It never fails; a document without
// the expected structure yields an empty list.
func ExtractTimelineEntries(data []byte) []TweetResult {
	return ExtractTimelineEntriesAny(jsonTwitter.Get(data))
}

func ExtractTimelineEntriesAny(doc jsoniter.Any) []TweetResult {
	tweets := []TweetResult{}

	instructions, _ := anyArray(doc, "data", "home", "home_timeline_urt", "instructions")
	for _, instruction := range instructions {
		typ, _ := anyString(instruction, "type")

		switch typ {
		case instructionAddEntries:
			entries, _ := anyArray(instruction, "entries")
			for _, entry := range entries {
				if tweet, ok := decodeTweetResult(entry.Get("content", "itemContent", "tweet_results", "result")); ok {
					tweets = append(tweets, *tweet)
				}
			}
		}
	}

	return tweets
}

func decodeTweetResult(v jsoniter.Any) (*TweetResult, bool) {
	if v.ValueType() != jsoniter.ObjectValue {
		return nil, false
	}

	var tweet TweetResult
	if err := jsonTwitter.UnmarshalFromString(v.ToString(), &tweet); err != nil {
		return nil, false
	}

	return tweet.normalize()
}
