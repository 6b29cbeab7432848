// Package constants provides a centralized location for the configuration
// values and magic numbers used throughout faceless.
package constants

// Avatar detection constants
const (
	// AvatarURLTemplate resolves to the profile picture GitHub displays for
	// a login. Accounts without an upload redirect to their identicon.
	AvatarURLTemplate = "https://github.com/%s.png"

	// IdenticonURLTemplate resolves to the identicon GitHub generates for a
	// login, whether or not the account uses it.
	IdenticonURLTemplate = "https://github.com/identicons/%s.png"

	// HashSize is the edge length of the perceptual hash grid. Both images
	// of a comparison must be hashed with the same size.
	HashSize = 16

	// MaxImageBytes caps an avatar or identicon download.
	MaxImageBytes = 5 << 20
)

// Triage defaults
const (
	// DefaultLabel is applied to issues opened by faceless accounts.
	DefaultLabel = "faceless"

	// DefaultCloseComment is posted after closing an issue.
	DefaultCloseComment = "This issue has been automatically closed by [faceless](https://github.com/teamreadme/faceless) " +
		"due to being created by a user without an avatar. Please update your github profile picture and recreate this issue."
)

// StateClosed is the issue state set when closing.
const StateClosed = "closed"

// Rate limiting constants
const (
	// RateLimitLowWatermark is the threshold below which rate limit
	// warnings are logged.
	RateLimitLowWatermark = 100
)
