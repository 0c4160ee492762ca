// Package api contains the HTTP handlers for the tracker service:
// authentication, projects, tasks, notifications, AI summarization, and
// cache administration. Handlers decode and validate requests, delegate to
// the service layer, and translate service errors into sanitized JSON
// responses.
package api
