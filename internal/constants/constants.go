package constants

// Account validation bounds, matching the persisted column sizes.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
	MaxEmailLength    = 50
	MinPasswordLength = 6
	MaxPasswordLength = 40
	MaxTitleLength    = 200
)

// PlaceholderToken is returned by login. It is not a verifiable credential;
// no server-side state binds it to subsequent requests.
const PlaceholderToken = "dummy-token"
