package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/crmfill"
	"github.com/fwojciec/crmfill/autocomplete"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query, err := validQuery(c.Query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crmfill.ErrorMessage(err))
		return err
	}

	contacts, err := deps.Directory.SearchContacts(deps.Ctx, crmfill.SearchRequest{Query: query, Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crmfill.ErrorMessage(err))
		return err
	}

	if len(contacts) == 0 {
		fmt.Fprintln(deps.Stdout, "No results found")
		return nil
	}

	for i, contact := range contacts {
		fmt.Fprintf(deps.Stdout, "%d  %s  %s  %s\n", i, contact.Label(), orDash(contact.Email), orDash(contact.Phone))
	}

	return nil
}

// validQuery trims query and rejects queries the widget would not search.
func validQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < autocomplete.DefaultMinQueryLength {
		return "", crmfill.Errorf(crmfill.EINVALID, "query must be at least %d characters", autocomplete.DefaultMinQueryLength)
	}
	return query, nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
