package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/crmfill"
	"github.com/fwojciec/crmfill/fs"
	"github.com/fwojciec/crmfill/goquery"
)

// loadPage parses the HTML form at path and makes sure it carries the
// widget stylesheet and fragment.
func loadPage(path string, ids crmfill.ElementIDs) (*goquery.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening form: %w", err)
	}
	defer f.Close()

	page, err := goquery.NewPage(f, ids)
	if err != nil {
		return nil, err
	}

	page.InjectAssets()
	if _, err := page.InjectWidget(); err != nil {
		return nil, fmt.Errorf("injecting widget: %w", err)
	}
	return page, nil
}

// writePage writes the document to out, or to stdout when out is empty.
func writePage(deps *Dependencies, page *goquery.Page, out string) error {
	html, err := page.HTML()
	if err != nil {
		return fmt.Errorf("rendering document: %w", err)
	}

	if out == "" {
		_, err := fmt.Fprintln(deps.Stdout, html)
		return err
	}
	if err := fs.WriteDocument(out, html+"\n"); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Fprintf(deps.Stderr, "Wrote %s\n", out)
	return nil
}
