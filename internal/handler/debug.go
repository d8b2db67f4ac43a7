package handler

import (
	"net/http"
	"net/http/pprof"

	"github.com/labstack/echo/v4"
)

const pprofPrefix = "/debug/pprof"

// Named runtime profiles served by pprof.Handler.
var runtimeProfiles = []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"}

func registerPprof(g *echo.Group) {
	wrap := func(f http.HandlerFunc) echo.HandlerFunc { return echo.WrapHandler(f) }

	g.GET("/", wrap(pprof.Index))
	g.GET("/cmdline", wrap(pprof.Cmdline))
	g.GET("/profile", wrap(pprof.Profile))
	g.GET("/trace", wrap(pprof.Trace))
	g.Match([]string{http.MethodGet, http.MethodPost}, "/symbol", wrap(pprof.Symbol))

	for _, name := range runtimeProfiles {
		g.GET("/"+name, echo.WrapHandler(pprof.Handler(name)))
	}
}
