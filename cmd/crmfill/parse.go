package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/crmfill"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	addr := crmfill.ParseAddress(c.Address)

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(addr)
	}

	fmt.Fprintf(deps.Stdout, "street: %s\n", addr.Street)
	fmt.Fprintf(deps.Stdout, "city:   %s\n", addr.City)
	fmt.Fprintf(deps.Stdout, "state:  %s\n", addr.State)
	fmt.Fprintf(deps.Stdout, "zip:    %s\n", addr.Zip)
	return nil
}
