package main

import (
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const sentryFlushTimeout = 5 * time.Second

func initSentry(dsn string) error {
	if dsn == "" {
		return nil
	}

	return sentry.Init(
		sentry.ClientOptions{
			Dsn: dsn,
			HTTPTransport: &http.Transport{
				ExpectContinueTimeout: 30 * time.Second,
				TLSHandshakeTimeout:   30 * time.Second,
				IdleConnTimeout:       30 * time.Second,
				ResponseHeaderTimeout: 30 * time.Second,
				MaxIdleConnsPerHost:   16,
			},
		},
	)
}

func reportError(err error) {
	if sentry.CurrentHub().Client() == nil {
		return
	}

	sentry.CaptureException(err)
	sentry.Flush(sentryFlushTimeout)
}
