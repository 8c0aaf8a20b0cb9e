package main

import (
	"fmt"

	"github.com/fwojciec/crmfill"
	"github.com/fwojciec/crmfill/autocomplete"
	crmslog "github.com/fwojciec/crmfill/slog"
)

// Run executes the fill command.
func (c *FillCmd) Run(deps *Dependencies) error {
	query, err := validQuery(c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crmfill.ErrorMessage(err))
		return err
	}

	page, err := loadPage(c.Form, deps.Config.Elements)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crmfill.ErrorMessage(err))
		return err
	}

	form := crmslog.NewLoggingForm(page, deps.Logger)
	ctrl := autocomplete.New(deps.Directory, form, page, deps.Config.Controller(deps.Logger))
	defer ctrl.Close()

	ctrl.ExecuteSearch(deps.Ctx, query)

	results := page.RenderedResults()
	if len(results) == 0 {
		if page.StatusVisible() {
			msg := page.StatusText()
			fmt.Fprintf(deps.Stderr, "error: %s\n", msg)
			return crmfill.Errorf(crmfill.EUNAVAILABLE, "%s", msg)
		}
		fmt.Fprintf(deps.Stderr, "No results found for %q\n", query)
		return crmfill.Errorf(crmfill.ENOTFOUND, "no contacts match %q", query)
	}

	if !ctrl.SelectResult(c.Pick) {
		fmt.Fprintf(deps.Stderr, "error: no result at index %d (%d results)\n", c.Pick, len(results))
		return crmfill.Errorf(crmfill.EINVALID, "no result at index %d", c.Pick)
	}
	fmt.Fprintf(deps.Stderr, "Selected %s\n", ctrl.Selected().Label())

	return writePage(deps, page, c.Out)
}
