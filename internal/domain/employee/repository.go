package employee

import "context"

// EmployeeRepository provides the configuration snapshots the engine
// consumes. Employee CRUD itself is an external surface.
type EmployeeRepository interface {
	// GetByID retrieves one employee snapshot
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByCode retrieves one employee snapshot by employee code
	GetByCode(ctx context.Context, code string) (Employee, error)

	// ListActive retrieves all active employee snapshots
	ListActive(ctx context.Context) ([]Employee, error)
}
