package main_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/crmfill"
	main "github.com/fwojciec/crmfill/cmd/crmfill"
	"github.com/fwojciec/crmfill/goquery"
	"github.com/fwojciec/crmfill/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fieldValues parses html and returns the value of every field.
func fieldValues(t *testing.T, html string) map[string]string {
	t.Helper()
	page, err := goquery.ParsePage(html, crmfill.ElementIDs{})
	require.NoError(t, err)
	values := map[string]string{}
	for _, id := range page.FieldIDs() {
		v, err := page.Value(id)
		require.NoError(t, err)
		values[id] = v
	}
	return values
}

func TestFillCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("populates form with selected contact", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(staticDirectory(jane, bob))
		cmd := &main.FillCmd{Form: writeForm(t, formHTML), Query: "acme"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "Selected Acme Fuel - Jane Doe")
		values := fieldValues(t, stdout.String())
		assert.Equal(t, "Acme Fuel - Jane Doe", values["crm-search"])
		assert.Equal(t, "Acme Fuel", values["company-name"])
		assert.Equal(t, "jane@acme.test", values["customer-email"])
		assert.Equal(t, "555-0100", values["customer-phone"])
		assert.Equal(t, "123 Main St", values["bank-address"])
		assert.Equal(t, "Springfield", values["bank-city"])
		assert.Equal(t, "IL", values["bank-state"])
		assert.Equal(t, "62704", values["bank-zip"])
		assert.Equal(t, "Acme Fuel", values["account-holder"])
		assert.Equal(t, "Sales Rep", values["initiated-by"])
		assert.Contains(t, stdout.String(), `id="crm-search-css"`)
	})

	t.Run("picks result by index", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(staticDirectory(jane, bob))
		cmd := &main.FillCmd{Form: writeForm(t, formHTML), Query: "roe", Pick: 1}

		err := cmd.Run(deps)

		require.NoError(t, err)
		values := fieldValues(t, stdout.String())
		assert.Equal(t, "Roe Oil", values["company-name"])
		assert.Equal(t, "Denver", values["bank-city"])
		assert.Equal(t, "CO", values["bank-state"])
		assert.Equal(t, "80202", values["bank-zip"])
		assert.Empty(t, values["customer-email"])
	})

	t.Run("writes to output file", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(staticDirectory(jane))
		out := filepath.Join(t.TempDir(), "filled.html")
		cmd := &main.FillCmd{Form: writeForm(t, formHTML), Query: "acme", Out: out}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "Wrote "+out)
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "Acme Fuel", fieldValues(t, string(data))["company-name"])
	})

	t.Run("reports out of range pick", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps(staticDirectory(jane))
		cmd := &main.FillCmd{Form: writeForm(t, formHTML), Query: "acme", Pick: 3}

		err := cmd.Run(deps)

		assert.Equal(t, crmfill.EINVALID, crmfill.ErrorCode(err))
		assert.Contains(t, stderr.String(), "no result at index 3 (1 results)")
		assert.Empty(t, stdout.String())
	})

	t.Run("reports no results", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(staticDirectory())
		cmd := &main.FillCmd{Form: writeForm(t, formHTML), Query: "zzz"}

		err := cmd.Run(deps)

		assert.Equal(t, crmfill.ENOTFOUND, crmfill.ErrorCode(err))
		assert.Contains(t, stderr.String(), `No results found for "zzz"`)
	})

	t.Run("reports search failure with widget message", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(&mock.DirectoryService{
			SearchContactsFn: func(ctx context.Context, req crmfill.SearchRequest) ([]*crmfill.Contact, error) {
				return nil, crmfill.Errorf(crmfill.EUNAVAILABLE, "directory returned HTTP 500")
			},
		})
		cmd := &main.FillCmd{Form: writeForm(t, formHTML), Query: "acme"}

		err := cmd.Run(deps)

		assert.Equal(t, crmfill.EUNAVAILABLE, crmfill.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error: Search failed. Please try again.")
	})

	t.Run("uses configured limit and mapping", func(t *testing.T) {
		t.Parallel()

		var got crmfill.SearchRequest
		deps, stdout, _ := newDeps(&mock.DirectoryService{
			SearchContactsFn: func(ctx context.Context, req crmfill.SearchRequest) ([]*crmfill.Contact, error) {
				got = req
				return []*crmfill.Contact{jane}, nil
			},
		})
		deps.Config = main.Config{
			Limit:         3,
			FieldMappings: map[string]string{"email": "company-name", "company_name": ""},
		}
		cmd := &main.FillCmd{Form: writeForm(t, formHTML), Query: "acme"}

		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 3, got.Limit)
		values := fieldValues(t, stdout.String())
		assert.Equal(t, "jane@acme.test", values["company-name"])
		assert.Empty(t, values["customer-email"])
	})
}
