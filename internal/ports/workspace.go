package ports

// WorkspacePort discovers package.json files within workspace roots.
type WorkspacePort interface {
	FindPackageJSON(root string) ([]string, error)
}
