package router

import "github.com/gin-gonic/gin"

// apiBasePath prefixes every feature module's routes.
const apiBasePath = "/api"

// Registry collects the feature modules (auth, user, experience, course,
// debug) and mounts them under the API group in one place, so cmd/main.go
// stays a flat wiring file.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{Engine: engine, API: engine.Group(apiBasePath)}
}

// Use appends middleware applied to the whole API group ahead of every
// module's own routes. Must be called before RegisterAll.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll mounts the shared middleware and then every module, in the
// order they were added.
func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
