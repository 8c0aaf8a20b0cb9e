package main_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/crmfill"
	main "github.com/fwojciec/crmfill/cmd/crmfill"
	"github.com/fwojciec/crmfill/mock"
	"github.com/stretchr/testify/require"
)

const formHTML = `<!DOCTYPE html>
<html>
<head><title>EFT Authorization</title></head>
<body>
<form id="eft">
	<input type="text" id="company-name">
	<input type="email" id="customer-email">
	<input type="tel" id="customer-phone">
	<input type="text" id="bank-address">
	<input type="text" id="bank-city">
	<input type="text" id="bank-state">
	<input type="text" id="bank-zip">
	<input type="text" id="account-holder">
	<input type="text" id="initiated-by" value="Sales Rep">
	<textarea id="notes">Call after 5pm</textarea>
</form>
</body>
</html>`

var (
	jane = &crmfill.Contact{
		ID:          "c-1",
		Name:        "Jane Doe",
		CompanyName: "Acme Fuel",
		Email:       "jane@acme.test",
		Phone:       "555-0100",
		Address:     "123 Main St, Springfield, IL 62704",
	}
	bob = &crmfill.Contact{
		ID:          "c-2",
		Name:        "Bob Roe",
		CompanyName: "Roe Oil",
		Address:     "9 Elm St, Denver, CO, 80202",
	}
)

// writeForm writes html to a temporary file and returns its path.
func writeForm(t *testing.T, html string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "form.html")
	require.NoError(t, os.WriteFile(path, []byte(html), 0o644))
	return path
}

// newDeps returns dependencies with a discarding logger and buffers.
func newDeps(directory crmfill.DirectoryService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:       context.Background(),
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    slog.New(slog.DiscardHandler),
		Directory: directory,
	}, stdout, stderr
}

// staticDirectory returns a directory answering every search with contacts.
func staticDirectory(contacts ...*crmfill.Contact) *mock.DirectoryService {
	return &mock.DirectoryService{
		SearchContactsFn: func(ctx context.Context, req crmfill.SearchRequest) ([]*crmfill.Contact, error) {
			return contacts, nil
		},
	}
}
