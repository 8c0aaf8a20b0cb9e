package main

import (
	"fmt"

	"github.com/fwojciec/crmfill"
	"github.com/fwojciec/crmfill/autocomplete"
	crmslog "github.com/fwojciec/crmfill/slog"
)

// Run executes the browse command.
func (c *BrowseCmd) Run(deps *Dependencies) error {
	if !c.Interactive && c.Query == "" {
		err := crmfill.Errorf(crmfill.EINVALID, "a query is required unless --interactive is set")
		fmt.Fprintf(deps.Stderr, "error: %s\n", crmfill.ErrorMessage(err))
		return err
	}

	page, err := deps.Browser.Open(deps.Ctx, c.URL, deps.Config.Elements)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: failed to open %s\n", c.URL)
		return err
	}
	defer page.Close()

	if _, err := page.InjectAssets(); err != nil {
		return err
	}
	if _, err := page.InjectWidget(); err != nil {
		return err
	}

	form := crmslog.NewLoggingForm(page, deps.Logger)
	ctrl := autocomplete.New(deps.Directory, form, page, deps.Config.Controller(deps.Logger))
	defer ctrl.Close()

	if c.Interactive {
		if err := page.Bind(ctrl); err != nil {
			return err
		}
		fmt.Fprintln(deps.Stderr, "Widget attached. Press Ctrl-C to exit.")
		<-deps.Ctx.Done()
		return nil
	}

	query, err := validQuery(c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crmfill.ErrorMessage(err))
		return err
	}

	ctrl.ExecuteSearch(deps.Ctx, query)

	results := ctrl.Results()
	if len(results) == 0 {
		fmt.Fprintf(deps.Stderr, "No results found for %q\n", query)
		return crmfill.Errorf(crmfill.ENOTFOUND, "no contacts match %q", query)
	}
	if !ctrl.SelectResult(c.Pick) {
		fmt.Fprintf(deps.Stderr, "error: no result at index %d (%d results)\n", c.Pick, len(results))
		return crmfill.Errorf(crmfill.EINVALID, "no result at index %d", c.Pick)
	}
	fmt.Fprintf(deps.Stderr, "Selected %s\n", ctrl.Selected().Label())

	for _, id := range page.FieldIDs() {
		value, err := page.Value(id)
		if err != nil {
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s=%s\n", id, value)
	}
	return nil
}
