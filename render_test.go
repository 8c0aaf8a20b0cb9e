package crmfill_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/crmfill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderResults(t *testing.T) {
	t.Parallel()

	t.Run("renders indexed items", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		err := crmfill.RenderResults(&sb, []*crmfill.Contact{
			{Name: "Jane Doe", CompanyName: "Acme Fuel", Email: "jane@acme.test"},
			{Name: "Bob Roe"},
		})

		require.NoError(t, err)
		out := sb.String()
		assert.Contains(t, out, `data-index="0"`)
		assert.Contains(t, out, `data-index="1"`)
		assert.Contains(t, out, "Acme Fuel")
		assert.Contains(t, out, "No company")
		assert.Contains(t, out, "No email")
		assert.NotContains(t, out, "No results found")
	})

	t.Run("renders placeholder for empty list", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		err := crmfill.RenderResults(&sb, nil)

		require.NoError(t, err)
		assert.Equal(t, `<div class="search-result">No results found</div>`, sb.String())
	})

	t.Run("escapes contact values", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		err := crmfill.RenderResults(&sb, []*crmfill.Contact{{Name: `<script>alert("x")</script>`}})

		require.NoError(t, err)
		assert.NotContains(t, sb.String(), "<script>")
		assert.Contains(t, sb.String(), "&lt;script&gt;")
	})
}

func TestRenderStatus(t *testing.T) {
	t.Parallel()

	t.Run("plain message", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		err := crmfill.RenderStatus(&sb, crmfill.Status{Kind: crmfill.StatusLoading, Message: "Searching CRM..."})

		require.NoError(t, err)
		assert.Equal(t, "Searching CRM...", sb.String())
	})

	t.Run("clearable message has a clear button", func(t *testing.T) {
		t.Parallel()

		var sb strings.Builder
		err := crmfill.RenderStatus(&sb, crmfill.Status{Kind: crmfill.StatusFound, Message: "Found: Acme Fuel - Jane Doe", Clearable: true})

		require.NoError(t, err)
		assert.Contains(t, sb.String(), "Found: Acme Fuel - Jane Doe")
		assert.Contains(t, sb.String(), `class="clear-crm-btn"`)
		assert.Contains(t, sb.String(), `data-action="clear"`)
	})
}

func TestRenderWidget(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	err := crmfill.RenderWidget(&sb, crmfill.ElementIDs{SearchInput: "lookup"})

	require.NoError(t, err)
	out := sb.String()
	assert.Contains(t, out, `id="lookup"`)
	assert.Contains(t, out, `id="search-results"`)
	assert.Contains(t, out, `id="crm-status"`)
	assert.Contains(t, out, `class="search-box"`)
}

func TestStylesheet(t *testing.T) {
	t.Parallel()

	assert.Contains(t, crmfill.Stylesheet(), ".search-results")
	assert.Contains(t, crmfill.Stylesheet(), ".crm-status.error")
}

func TestStatusClass(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "crm-status found", crmfill.StatusClass(crmfill.StatusFound))
	assert.Equal(t, "crm-status", crmfill.StatusClass(""))
}
