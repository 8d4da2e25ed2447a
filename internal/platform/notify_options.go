// Package platform delivers desktop notifications through the host's
// notification service.
package platform

// AppName identifies the sender to notification daemons.
const AppName = "Markup"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// IconPath points to an image shown beside the message where supported.
	IconPath string
	// Timeout in milliseconds. Zero leaves the choice to the server.
	Timeout int32
}
