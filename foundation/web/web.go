// Package web contains the small web framework the service is built on:
// a thin layer over gin that lets handlers work with a request Context
// and return errors instead of writing responses ad hoc.
package web

import (
	"github.com/gin-gonic/gin"
)

// Handler is the signature every application handler implements.
type Handler func(c *Context) error

// Middleware wraps a Handler with additional behaviour.
type Middleware func(Handler) Handler

type App struct {
	*gin.Engine
}

func NewApp() *App {
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &App{Engine: engine}
}

func (a *App) Get(path string, handler Handler, middleware ...Middleware) {
	a.Engine.GET(path, a.wrap(handler, middleware))
}

func (a *App) Post(path string, handler Handler, middleware ...Middleware) {
	a.Engine.POST(path, a.wrap(handler, middleware))
}

func (a *App) Put(path string, handler Handler, middleware ...Middleware) {
	a.Engine.PUT(path, a.wrap(handler, middleware))
}

func (a *App) Patch(path string, handler Handler, middleware ...Middleware) {
	a.Engine.PATCH(path, a.wrap(handler, middleware))
}

func (a *App) Delete(path string, handler Handler, middleware ...Middleware) {
	a.Engine.DELETE(path, a.wrap(handler, middleware))
}

func (a *App) Head(path string, handler Handler, middleware ...Middleware) {
	a.Engine.HEAD(path, a.wrap(handler, middleware))
}

// wrap builds the middleware chain around the handler and adapts it to gin.
func (a *App) wrap(handler Handler, middleware []Middleware) gin.HandlerFunc {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}

	return func(gc *gin.Context) {
		c := &Context{
			Context: gc,
			Ctx:     gc.Request.Context(),
		}

		if err := handler(c); err != nil {
			_ = c.RespondError(err)
		}
	}
}
