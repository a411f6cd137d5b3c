/*
Package router maps request paths to the handlers rendering a personachat view.

A [Route] pairs a path pattern with an HTTP method, the name of the view it selects,
and the [http.HandlerFunc] rendering it.
Patterns read like those of client-side routers:

	/                          the menu
	/ChatWindow/:personaName   one named segment, captured as "personaName"
	/auth                      a literal path
	/oauth/callback/*          any suffix, captured as "*"

Literal segments match regardless of case and a single trailing slash is ignored.

[*Router] utilizes [mux.Router] for its implementation,
and so functions as thin wrapper around that package.
Routes are tried in the order they are registered and the first to match wins.
Registering a Route that can never match,
because one registered earlier matches every path it does,
panics the way [http.ServeMux] does for conflicting patterns.

Before a request gets to a handler, the [Match] is stored in its context,
see [MatchFromContext] and [Param],
and any middlewares added to the Route are called in the order they appear.
[Router.Resolve] performs the same selection without calling a handler.
*/
package router
