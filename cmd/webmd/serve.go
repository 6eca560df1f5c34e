package main

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	return deps.Tools.Run(deps.Ctx)
}
