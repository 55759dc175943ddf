package internal

import (
	"github.com/rios0rios0/gitprobe/internal/domain/entities"
)

// App aggregates the CLI controllers wired through the DIG container.
type App struct {
	controllers *[]entities.Controller
}

// NewApp creates the application aggregate.
func NewApp(controllers *[]entities.Controller) *App {
	return &App{controllers: controllers}
}

// GetControllers returns all registered controllers.
func (a *App) GetControllers() []entities.Controller {
	return *a.controllers
}
