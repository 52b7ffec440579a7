package main

import (
	"fmt"

	"github.com/courseaudit/vast/config"
)

// Run executes the init command.
func (c *InitCmd) Run(deps *Dependencies) error {
	path, err := config.Init()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Created %s\n", path)
	fmt.Fprintln(deps.Stdout, "Fill in the values before running 'vast scan'.")
	return nil
}
