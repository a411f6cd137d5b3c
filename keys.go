package personachat

type Key string

const (
	// IpAddrKey stashes the IP address of an HTTP request.
	IpAddrKey Key = "IpAddrKey"

	// RequestIDKey stashes a unique UUID for each HTTP request.
	RequestIDKey Key = "RequestIDKey"

	// RouteMatchKey stashes the route and path parameters the router selected for a request.
	RouteMatchKey Key = "RouteMatchKey"

	// ViewKey stashes the name of the view the router selected for a request.
	ViewKey Key = "ViewKey"

	// SessionKey stashes the session associated with an HTTP request.
	SessionKey Key = "SessionKey"
)

// String formats the stringified key with additional contextual information
func (k Key) String() string {
	return "personachat context key: " + string(k)
}
