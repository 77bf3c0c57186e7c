package registry

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"blogcore/internal/pkg/worker"
)

// ModuleContext carries the shared infrastructure handed to each module.
type ModuleContext struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Router *gin.Engine

	// Mirror is the shared write-behind pool for post counter mirrors.
	Mirror *worker.MirrorPool
}

// Module is a self-registering feature module.
type Module interface {
	// Name returns the module name.
	Name() string

	// Init wires the module (dependency injection, route registration).
	Init(ctx *ModuleContext) error

	// Priority orders initialization; lower initializes first.
	Priority() int
}

var moduleRegistry = make(map[string]Module)

// Register adds a module, typically from the module package's init().
func Register(module Module) {
	moduleRegistry[module.Name()] = module
}

// GetModules returns all registered modules.
func GetModules() map[string]Module {
	return moduleRegistry
}

// InitModules initializes all modules in priority order.
func InitModules(ctx *ModuleContext) error {
	modules := make([]Module, 0, len(moduleRegistry))
	for _, m := range moduleRegistry {
		modules = append(modules, m)
	}

	// Module count is tiny; a simple sort is plenty.
	for i := 0; i < len(modules); i++ {
		for j := i + 1; j < len(modules); j++ {
			if modules[i].Priority() > modules[j].Priority() {
				modules[i], modules[j] = modules[j], modules[i]
			}
		}
	}

	for _, module := range modules {
		if err := module.Init(ctx); err != nil {
			return err
		}
	}

	return nil
}
