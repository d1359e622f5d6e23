package twitter

import (
	"net/http"
	"time"

	"github.com/spf13/cast"
)

// ResponseMeta describes a response apart from its body.
type ResponseMeta struct {
	StatusCode int
	Header     http.Header
	RateLimit  RateLimit
}

// RateLimit is read from the x-rate-limit-* headers. Limit and Remaining are
// -1 and Reset is zero when the header is missing.
type RateLimit struct {
	Limit     int64
	Remaining int64
	Reset     time.Time
}

func newResponseMeta(res *http.Response) ResponseMeta {
	return ResponseMeta{
		StatusCode: res.StatusCode,
		Header:     res.Header,
		RateLimit:  parseRateLimit(res.Header),
	}
}

func parseRateLimit(h http.Header) RateLimit {
	rl := RateLimit{
		Limit:     -1,
		Remaining: -1,
	}

	if limit, ok := headerInt64(h, "x-rate-limit-limit"); ok {
		rl.Limit = limit
	}
	if remaining, ok := headerInt64(h, "x-rate-limit-remaining"); ok {
		rl.Remaining = remaining
	}
	if reset, ok := headerInt64(h, "x-rate-limit-reset"); ok {
		rl.Reset = time.Unix(reset, 0)
	}

	return rl
}

func headerInt64(h http.Header, key string) (int64, bool) {
	s := h.Get(key)
	if s == "" {
		return 0, false
	}
	i, err := cast.ToInt64E(s)
	if err != nil {
		return 0, false
	}
	return i, true
}
