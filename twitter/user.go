package twitter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const (
	MaxUserCacheCount = 500

	userByScreenNamePath = "/i/api/graphql/G3KGOASz96M-Qu0nwmGXNg/UserByScreenName"
)

var userByScreenNameFeatures = map[string]bool{
	"hidden_profile_likes_enabled":                                      true,
	"hidden_profile_subscriptions_enabled":                              true,
	"responsive_web_graphql_exclude_directive_enabled":                  true,
	"verified_phone_label_enabled":                                      false,
	"subscriptions_verification_info_is_identity_verified_enabled":      true,
	"subscriptions_verification_info_verified_since_enabled":            true,
	"highlights_tweets_tab_ui_enabled":                                  true,
	"responsive_web_twitter_article_notes_tab_enabled":                  true,
	"creator_subscriptions_tweet_preview_api_enabled":                   true,
	"responsive_web_graphql_skip_user_profile_image_extensions_enabled": false,
	"responsive_web_graphql_timeline_navigation_enabled":                true,
}

// UserIDResolver maps a screen name to a user id.
type UserIDResolver interface {
	GetUserIDByScreenName(ctx context.Context, screenName string) (string, error)
}

var _ UserIDResolver = (*Client)(nil)

type userCache struct {
	id           string
	name         string
	screenName   string
	profileImage string

	lastModified time.Time
}

// GetUserIDByScreenName resolves screenName, answering from the users seen
// in earlier inbox snapshots when possible.
func (c *Client) GetUserIDByScreenName(ctx context.Context, screenName string) (string, error) {
	screenName = strings.TrimPrefix(screenName, "@")
	if id, ok := c.cachedUserID(screenName); ok {
		return id, nil
	}

	variables, err := jsonTwitter.MarshalToString(map[string]interface{}{
		"screen_name":              screenName,
		"withSafetyModeUserFields": true,
	})
	if err != nil {
		return "", err
	}
	features, err := jsonTwitter.MarshalToString(userByScreenNameFeatures)
	if err != nil {
		return "", err
	}

	query := url.Values{}
	query.Set("variables", variables)
	query.Set("features", features)
	query.Set("fieldToggles", `{"withAuxiliaryUserLabels":false}`)

	var doc jsoniter.Any
	if _, err := c.Request(ctx, http.MethodGet, c.baseURL+userByScreenNamePath+"?"+query.Encode(), nil, &doc); err != nil {
		return "", fmt.Errorf("twitter: resolving %s: %w", screenName, err)
	}

	result := doc.Get("data", "user", "result")
	id, ok := anyString(result, "rest_id")
	if !ok {
		return "", fmt.Errorf("twitter: resolving %s: %w", screenName, ErrUserNotFound)
	}

	user := User{ID: id, ScreenName: screenName}
	if name, ok := anyString(result, "legacy", "name"); ok {
		user.Name = name
	}
	if img, ok := anyString(result, "legacy", "profile_image_url_https"); ok {
		user.ProfileImageURL = img
	}
	c.cacheUsers([]User{user})

	return id, nil
}

func (c *Client) cachedUserID(screenName string) (string, bool) {
	c.userCacheLock.Lock()
	defer c.userCacheLock.Unlock()

	for i, uc := range c.userCache {
		if strings.EqualFold(uc.screenName, screenName) {
			c.userCache[i].lastModified = c.now()
			return uc.id, true
		}
	}
	return "", false
}

// cacheUsers adds or refreshes users, evicting the least recently touched
// entries past MaxUserCacheCount.
func (c *Client) cacheUsers(users []User) {
	c.userCacheLock.Lock()
	defer c.userCacheLock.Unlock()

	for _, user := range users {
		exists := false
		for i, uc := range c.userCache {
			if uc.id == user.ID {
				c.userCache[i].lastModified = c.now()

				if uc.name != user.Name || uc.screenName != user.ScreenName || uc.profileImage != user.ProfileImageURL {
					c.logger.Debug("user updated",
						"id", user.ID,
						"screen_name", user.ScreenName,
					)
					c.userCache[i].name = user.Name
					c.userCache[i].screenName = user.ScreenName
					c.userCache[i].profileImage = user.ProfileImageURL
				}

				exists = true
				break
			}
		}

		if exists {
			continue
		}

		for len(c.userCache) >= MaxUserCacheCount {
			minIndex := 0
			for i := range c.userCache {
				if c.userCache[i].lastModified.Before(c.userCache[minIndex].lastModified) {
					minIndex = i
				}
			}

			c.userCache[minIndex] = c.userCache[len(c.userCache)-1]
			c.userCache = c.userCache[:len(c.userCache)-1]
		}

		c.userCache = append(
			c.userCache,
			userCache{
				id:           user.ID,
				name:         user.Name,
				screenName:   user.ScreenName,
				profileImage: user.ProfileImageURL,
				lastModified: c.now(),
			},
		)
	}
}
