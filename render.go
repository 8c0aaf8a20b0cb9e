package crmfill

import (
	"html/template"
	"io"
	"strings"

	"github.com/fwojciec/crmfill/assets"
)

// StyleMarkerID is the id of the injected <style> element. Its presence
// means the stylesheet has already been injected.
const StyleMarkerID = "crm-search-css"

// Class names and attributes shared by the rendered chrome and the hosts
// that attach behavior to it.
const (
	WidgetBoundaryClass = "search-box"
	ResultIndexAttr     = "data-index"
	ClearActionAttr     = "data-action"
)

// Stylesheet returns the CSS for the widget chrome.
func Stylesheet() string {
	return assets.Stylesheet
}

var templates = template.Must(template.New("").Parse(`
{{- define "results" -}}
{{- range $i, $c := . -}}
<div class="search-result" data-index="{{$i}}">
<div class="search-result-name">{{or $c.Name "No name"}}</div>
<div class="search-result-company">{{or $c.CompanyName "No company"}}</div>
<div class="search-result-email">{{or $c.Email "No email"}}</div>
</div>
{{- else -}}
<div class="search-result">No results found</div>
{{- end -}}
{{- end -}}

{{- define "status" -}}
{{.Message}}
{{- if .Clearable}} <button type="button" class="clear-crm-btn" data-action="clear">Clear</button>{{end}}
{{- end -}}

{{- define "widget" -}}
<div class="crm-search-section">
<h3>Search CRM Database</h3>
<p>Search the customer database to auto-populate form fields</p>
<div class="search-box">
<label for="{{.SearchInput}}">Search by Company Name, Contact Name, or Email</label>
<input type="text" id="{{.SearchInput}}" placeholder="Type to search CRM..." autocomplete="off">
<div class="search-results" id="{{.SearchResults}}"></div>
</div>
<div class="crm-status" id="{{.Status}}"></div>
</div>
{{- end -}}
`))

// RenderResults writes the result list markup for contacts. Each item
// carries a data-index attribute with its position in contacts.
func RenderResults(w io.Writer, contacts []*Contact) error {
	return templates.ExecuteTemplate(w, "results", contacts)
}

// RenderStatus writes the inner markup of the status banner.
func RenderStatus(w io.Writer, status Status) error {
	return templates.ExecuteTemplate(w, "status", status)
}

// RenderWidget writes the widget fragment: the search box, the result
// container and the status banner, using the given element identifiers.
func RenderWidget(w io.Writer, ids ElementIDs) error {
	return templates.ExecuteTemplate(w, "widget", ids.WithDefaults())
}

// StatusClass returns the class attribute of a status banner of kind.
func StatusClass(kind StatusKind) string {
	return strings.TrimSpace("crm-status " + string(kind))
}
