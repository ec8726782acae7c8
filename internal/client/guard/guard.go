// Package guard implements the navigation guard that runs before any view
// is entered. It is the single enforcement point keeping unauthenticated
// users out of protected routes; protected views still re-verify on entry
// to cover sessions that expired between the guard check and the render.
package guard

import "strings"

const (
	// AuthPath is the login/registration route.
	AuthPath = "/auth"
	// HomePath is the default landing route for authenticated users.
	HomePath = "/send"
)

// Decision is the outcome of one guard check. When Allow is false the
// caller must navigate to RedirectTo instead; From preserves the originally
// requested path for a post-login redirect.
type Decision struct {
	Allow      bool
	RedirectTo string
	From       string
}

// Guard evaluates navigation against a fixed protected-path set.
type Guard struct {
	protected []string
	authPath  string
	homePath  string
}

func New() *Guard {
	return &Guard{
		protected: []string{"/send", "/receive", "/profile", "/adrop"},
		authPath:  AuthPath,
		homePath:  HomePath,
	}
}

// Decide applies the two checks of the guard state machine:
// unauthenticated access to a protected path redirects to the auth route
// (keeping the requested path), authenticated access to the auth route
// redirects home, anything else proceeds unmodified.
func (g *Guard) Decide(path string, isAuthenticated bool) Decision {
	if g.isProtected(path) && !isAuthenticated {
		return Decision{RedirectTo: g.authPath, From: path}
	}
	if matches(path, g.authPath) && isAuthenticated {
		return Decision{RedirectTo: g.homePath}
	}
	return Decision{Allow: true}
}

func (g *Guard) isProtected(path string) bool {
	for _, route := range g.protected {
		if matches(path, route) {
			return true
		}
	}
	return false
}

// matches treats a route as covering itself and all of its subpaths.
func matches(path, route string) bool {
	return path == route || strings.HasPrefix(path, route+"/")
}
