package twitter

import "time"

// TweetResult is one tweet of a GraphQL timeline. The payload changes
// without notice, so everything but Legacy is optional.
type TweetResult struct {
	Typename           *string                `json:"__typename,omitempty"`
	Core               *Core                  `json:"core,omitempty"`
	EditControl        *EditControl           `json:"edit_control,omitempty"`
	IsTranslatable     *bool                  `json:"is_translatable,omitempty"`
	Legacy             *Legacy                `json:"legacy"`
	QuotedStatusResult *QuotedStatusResult    `json:"quoted_status_result,omitempty"`
	RestID             *string                `json:"rest_id,omitempty"`
	Source             *string                `json:"source,omitempty"`
	UnmentionData      map[string]interface{} `json:"unmention_data,omitempty"`
	Views              *Views                 `json:"views,omitempty"`

	// Set when Typename is TweetWithVisibilityResults.
	Tweet *TweetResult `json:"tweet,omitempty"`
}

const typenameTweetWithVisibilityResults = "TweetWithVisibilityResults"

// normalize unwraps visibility wrappers and drops quoted statuses that do
// not validate. ok is false when the tweet itself has no legacy.
func (t *TweetResult) normalize() (*TweetResult, bool) {
	for t.Typename != nil && *t.Typename == typenameTweetWithVisibilityResults && t.Tweet != nil {
		t = t.Tweet
	}
	if t.Legacy == nil {
		return nil, false
	}

	if t.QuotedStatusResult != nil && t.QuotedStatusResult.Result != nil {
		quoted, ok := t.QuotedStatusResult.Result.normalize()
		if ok {
			t.QuotedStatusResult.Result = quoted
		} else {
			t.QuotedStatusResult = nil
		}
	}

	return t, true
}

// Quoted returns the quoted tweet, if any.
func (t *TweetResult) Quoted() (*TweetResult, bool) {
	if t.QuotedStatusResult == nil || t.QuotedStatusResult.Result == nil {
		return nil, false
	}
	return t.QuotedStatusResult.Result, true
}

// Author returns the author's user result, if any.
func (t *TweetResult) Author() (*UserResult, bool) {
	if t.Core == nil || t.Core.UserResults == nil || t.Core.UserResults.Result == nil {
		return nil, false
	}
	return t.Core.UserResults.Result, true
}

type Core struct {
	UserResults *UserResults `json:"user_results,omitempty"`
}

type UserResults struct {
	Result *UserResult `json:"result,omitempty"`
}

type UserResult struct {
	Typename                   *string                     `json:"__typename,omitempty"`
	AffiliatesHighlightedLabel *AffiliatesHighlightedLabel `json:"affiliates_highlighted_label,omitempty"`
	HasGraduatedAccess         *bool                       `json:"has_graduated_access,omitempty"`
	ID                         *string                     `json:"id,omitempty"`
	IsBlueVerified             *bool                       `json:"is_blue_verified,omitempty"`
	Legacy                     *UserLegacy                 `json:"legacy,omitempty"`
	Professional               *Professional               `json:"professional,omitempty"`
	ProfileImageShape          *string                     `json:"profile_image_shape,omitempty"`
	RestID                     *string                     `json:"rest_id,omitempty"`
	TipjarSettings             map[string]interface{}      `json:"tipjar_settings,omitempty"`
}

type AffiliatesHighlightedLabel struct {
	Label *Label `json:"label,omitempty"`
}

type Label struct {
	Badge                *Badge    `json:"badge,omitempty"`
	Description          *string   `json:"description,omitempty"`
	URL                  *LabelURL `json:"url,omitempty"`
	UserLabelDisplayType *string   `json:"user_label_display_type,omitempty"`
	UserLabelType        *string   `json:"user_label_type,omitempty"`
}

type Badge struct {
	URL *string `json:"url,omitempty"`
}

type LabelURL struct {
	URL     *string `json:"url,omitempty"`
	URLType *string `json:"url_type,omitempty"`
}

type UserLegacy struct {
	CanDm                   *bool         `json:"can_dm,omitempty"`
	CanMediaTag             *bool         `json:"can_media_tag,omitempty"`
	CreatedAt               *string       `json:"created_at,omitempty"`
	DefaultProfile          *bool         `json:"default_profile,omitempty"`
	DefaultProfileImage     *bool         `json:"default_profile_image,omitempty"`
	Description             *string       `json:"description,omitempty"`
	Entities                *UserEntities `json:"entities,omitempty"`
	FastFollowersCount      *int64        `json:"fast_followers_count,omitempty"`
	FavouritesCount         *int64        `json:"favourites_count,omitempty"`
	FollowersCount          *int64        `json:"followers_count,omitempty"`
	Following               *bool         `json:"following,omitempty"`
	FriendsCount            *int64        `json:"friends_count,omitempty"`
	HasCustomTimelines      *bool         `json:"has_custom_timelines,omitempty"`
	IsTranslator            *bool         `json:"is_translator,omitempty"`
	ListedCount             *int64        `json:"listed_count,omitempty"`
	Location                *string       `json:"location,omitempty"`
	MediaCount              *int64        `json:"media_count,omitempty"`
	Name                    *string       `json:"name,omitempty"`
	NormalFollowersCount    *int64        `json:"normal_followers_count,omitempty"`
	PinnedTweetIDsStr       []string      `json:"pinned_tweet_ids_str,omitempty"`
	PossiblySensitive       *bool         `json:"possibly_sensitive,omitempty"`
	ProfileBannerURL        *string       `json:"profile_banner_url,omitempty"`
	ProfileImageURLHTTPS    *string       `json:"profile_image_url_https,omitempty"`
	ProfileInterstitialType *string       `json:"profile_interstitial_type,omitempty"`
	ScreenName              *string       `json:"screen_name,omitempty"`
	StatusesCount           *int64        `json:"statuses_count,omitempty"`
	TranslatorType          *string       `json:"translator_type,omitempty"`
	URL                     *string       `json:"url,omitempty"`
	Verified                *bool         `json:"verified,omitempty"`
	WantRetweets            *bool         `json:"want_retweets,omitempty"`
	WithheldInCountries     []string      `json:"withheld_in_countries,omitempty"`
}

type UserEntities struct {
	Description *URLEntities `json:"description,omitempty"`
	URL         *URLEntities `json:"url,omitempty"`
}

type URLEntities struct {
	URLs []URLInfo `json:"urls,omitempty"`
}

type URLInfo struct {
	DisplayURL  *string `json:"display_url,omitempty"`
	ExpandedURL *string `json:"expanded_url,omitempty"`
	Indices     []int64 `json:"indices,omitempty"`
	URL         *string `json:"url,omitempty"`
}

type Professional struct {
	Category         []Category `json:"category,omitempty"`
	ProfessionalType *string    `json:"professional_type,omitempty"`
	RestID           *string    `json:"rest_id,omitempty"`
}

type Category struct {
	IconName *string `json:"icon_name,omitempty"`
	ID       *int64  `json:"id,omitempty"`
	Name     *string `json:"name,omitempty"`
}

type EditControl struct {
	EditTweetIDs       []string `json:"edit_tweet_ids,omitempty"`
	EditableUntilMsecs *string  `json:"editable_until_msecs,omitempty"`
	EditsRemaining     *string  `json:"edits_remaining,omitempty"`
	IsEditEligible     *bool    `json:"is_edit_eligible,omitempty"`
}

type Legacy struct {
	BookmarkCount         *int64                 `json:"bookmark_count,omitempty"`
	Bookmarked            *bool                  `json:"bookmarked,omitempty"`
	ConversationIDStr     *string                `json:"conversation_id_str,omitempty"`
	CreatedAt             *string                `json:"created_at,omitempty"`
	DisplayTextRange      []int64                `json:"display_text_range,omitempty"`
	Entities              *Entities              `json:"entities,omitempty"`
	FavoriteCount         *int64                 `json:"favorite_count,omitempty"`
	Favorited             *bool                  `json:"favorited,omitempty"`
	FullText              *string                `json:"full_text,omitempty"`
	IDStr                 *string                `json:"id_str,omitempty"`
	IsQuoteStatus         *bool                  `json:"is_quote_status,omitempty"`
	Lang                  *string                `json:"lang,omitempty"`
	QuoteCount            *int64                 `json:"quote_count,omitempty"`
	QuotedStatusIDStr     *string                `json:"quoted_status_id_str,omitempty"`
	QuotedStatusPermalink *QuotedStatusPermalink `json:"quoted_status_permalink,omitempty"`
	ReplyCount            *int64                 `json:"reply_count,omitempty"`
	RetweetCount          *int64                 `json:"retweet_count,omitempty"`
	Retweeted             *bool                  `json:"retweeted,omitempty"`
	UserIDStr             *string                `json:"user_id_str,omitempty"`
}

// CreatedAtTime parses CreatedAt.
func (l *Legacy) CreatedAtTime() (time.Time, bool) {
	if l.CreatedAt == nil {
		return time.Time{}, false
	}
	return parseRFC2822(*l.CreatedAt)
}

type Entities struct {
	Hashtags     []interface{} `json:"hashtags,omitempty"`
	Symbols      []interface{} `json:"symbols,omitempty"`
	Timestamps   []interface{} `json:"timestamps,omitempty"`
	URLs         []URLInfo     `json:"urls,omitempty"`
	UserMentions []interface{} `json:"user_mentions,omitempty"`
}

type QuotedStatusPermalink struct {
	Display  *string `json:"display,omitempty"`
	Expanded *string `json:"expanded,omitempty"`
	URL      *string `json:"url,omitempty"`
}

type QuotedStatusResult struct {
	Result *TweetResult `json:"result,omitempty"`
}

type Views struct {
	Count *string `json:"count,omitempty"`
	State *string `json:"state,omitempty"`
}
