package main_test

import (
	"testing"

	main "github.com/fwojciec/crmfill/cmd/crmfill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const filledHTML = `<html><body><form>
	<input id="company-name" value="Acme Fuel">
	<input id="customer-email" value="jane@acme.test">
	<input id="initiated-by" value="Sales Rep">
	<input id="authorized-by-name" value="Pat Lee">
	<textarea id="notes">Call after 5pm</textarea>
	<select id="bank-state"><option value="">-</option><option value="IL" selected>IL</option></select>
</form></body></html>`

func TestClearCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("blanks fields except protected ones", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(nil)
		cmd := &main.ClearCmd{Form: writeForm(t, filledHTML)}

		err := cmd.Run(deps)

		require.NoError(t, err)
		values := fieldValues(t, stdout.String())
		assert.Empty(t, values["company-name"])
		assert.Empty(t, values["customer-email"])
		assert.Empty(t, values["bank-state"])
		assert.Empty(t, values["crm-search"])
		assert.Equal(t, "Sales Rep", values["initiated-by"])
		assert.Equal(t, "Pat Lee", values["authorized-by-name"])
		assert.Equal(t, "Call after 5pm", values["notes"])
	})

	t.Run("honours configured protected fields", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(nil)
		deps.Config = main.Config{ProtectedFields: []string{"company-name"}}
		cmd := &main.ClearCmd{Form: writeForm(t, filledHTML)}

		err := cmd.Run(deps)

		require.NoError(t, err)
		values := fieldValues(t, stdout.String())
		assert.Equal(t, "Acme Fuel", values["company-name"])
		assert.Empty(t, values["initiated-by"])
		assert.Empty(t, values["notes"])
	})
}
