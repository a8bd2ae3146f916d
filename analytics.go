// Copyright 2026 The DiceKV Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0

package dicekv

import (
	"os"
	"sync"

	"github.com/posthog/posthog-go"
)

const (
	posthogAPIKey = "phc_kq2Jx9vTd4W0mYe7RgnB3cLpZa8sHu6fDi5oMw1NvXr"
	posthogHost   = "https://us.i.posthog.com"
)

var (
	analyticsClient      posthog.Client
	analyticsOnce        sync.Once
	analyticsEnabled     = true
	analyticsInitialized = false
)

// initAnalytics initializes the PostHog client (lazy, called once).
// Set DICEKV_DISABLE_ANALYTICS=true to opt out entirely.
func initAnalytics() {
	analyticsOnce.Do(func() {
		if os.Getenv("DICEKV_DISABLE_ANALYTICS") == "true" {
			analyticsEnabled = false
			return
		}

		client, err := posthog.NewWithConfig(
			posthogAPIKey,
			posthog.Config{
				Endpoint: posthogHost,
			},
		)
		if err != nil {
			analyticsEnabled = false
			return
		}

		analyticsClient = client
		analyticsInitialized = true
	})
}

// trackEvent sends an event with static metadata only. No user data, no
// command contents, no key names ever leave the process.
func trackEvent(eventName string, properties map[string]interface{}) {
	initAnalytics()

	if !analyticsEnabled || !analyticsInitialized {
		return
	}

	if properties == nil {
		properties = make(map[string]interface{})
	}
	properties["sdk_version"] = Version
	properties["sdk_language"] = "go"

	// Enqueue is non-blocking; events are batched in the background.
	_ = analyticsClient.Enqueue(posthog.Capture{
		DistinctId: "anonymous",
		Event:      eventName,
		Properties: properties,
	})
}

// trackClientConnected tracks a successful connect + handshake.
func trackClientConnected() {
	trackEvent("client_connected", nil)
}

// trackError tracks error events with error type and location.
func trackError(errorType, location string) {
	trackEvent(errorType, map[string]interface{}{
		"error_type": errorType,
		"location":   location,
	})
}

// closeAnalytics flushes and closes the PostHog client.
func closeAnalytics() {
	if analyticsInitialized && analyticsClient != nil {
		_ = analyticsClient.Close()
	}
}
