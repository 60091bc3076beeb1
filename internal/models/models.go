// Package models contains data types and constants for the Malcolm assistant API.
package models

// Version is the client version, overridable at build time.
var Version = "0.1.0"

// DefaultBaseURL is the Malcolm service endpoint used when no base URL is configured.
const DefaultBaseURL = "https://malcolmai.live"

// Service paths, relative to the configured base URL.
const (
	PathOptimize = "/optimize"
	PathUpload   = "/upload"
	PathDownload = "/download"
	PathHealthz  = "/healthz"
	PathMeta     = "/meta"
	PathSocket   = "/ws"
)

// Named events carried over the realtime channel.
const (
	EventSendMessage    = "send_message"
	EventReceiveMessage = "receive_message"
)

// DefaultHeaders returns the headers sent with every request/response call.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":          "application/json",
		"Accept-Language": "en-US,en;q=0.9",
		"User-Agent":      "malcolmweb/" + Version,
	}
}
