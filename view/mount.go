package view

import (
	"github.com/xy-planning-network/personachat/http/middleware"
	"github.com/xy-planning-network/personachat/http/router"
)

// Mount registers the views on rt, followed by the navigation endpoint under APIPrefix,
// and routes every other path to h.NotFound.
//
// apiMiddlewares wrap the navigation endpoint only, e.g. middleware.CORS.
func Mount(rt *router.Router, h *Handler, apiMiddlewares ...middleware.Adapter) {
	rt.HandleRoutes(Routes(h))

	api := rt.Subrouter(APIPrefix)
	api.Handle(router.Route{
		Path:        NavigatePath,
		Handler:     h.Navigate,
		Middlewares: apiMiddlewares,
	})

	rt.HandleNotFound(h.NotFound)
	h.resolver = rt
}
