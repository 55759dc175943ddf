package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	if err := container.Provide(NewInspectCommand); err != nil {
		return err
	}
	if err := container.Provide(NewBranchesCommand); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *InspectCommand) Inspect {
		return impl
	}); err != nil {
		return err
	}
	if err := container.Provide(func(impl *BranchesCommand) Branches {
		return impl
	}); err != nil {
		return err
	}

	return nil
}
