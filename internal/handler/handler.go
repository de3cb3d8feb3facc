package handler

import "pulsefeed/backend/internal/feed"

// feedService is the feed engine instance shared by all handlers,
// wired up once at startup.
var feedService *feed.Service

// Setup injects the feed service. Must be called before routing starts.
func Setup(svc *feed.Service) {
	feedService = svc
}
