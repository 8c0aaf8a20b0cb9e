package main

import (
	"fmt"

	"github.com/fwojciec/crmfill"
	"github.com/fwojciec/crmfill/autocomplete"
	crmslog "github.com/fwojciec/crmfill/slog"
)

// Run executes the clear command.
func (c *ClearCmd) Run(deps *Dependencies) error {
	page, err := loadPage(c.Form, deps.Config.Elements)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crmfill.ErrorMessage(err))
		return err
	}

	// Clearing never searches, so no directory is needed.
	form := crmslog.NewLoggingForm(page, deps.Logger)
	ctrl := autocomplete.New(deps.Directory, form, page, deps.Config.Controller(deps.Logger))
	defer ctrl.Close()

	ctrl.ClearData()

	return writePage(deps, page, c.Out)
}
