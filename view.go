package crmfill

// ElementIDs identifies the widget's own elements in the host page.
type ElementIDs struct {
	SearchInput   string `toml:"search_input_id"`
	SearchResults string `toml:"search_results_id"`
	Status        string `toml:"status_id"`
}

// DefaultElementIDs returns the identifiers used by the widget fragment.
func DefaultElementIDs() ElementIDs {
	return ElementIDs{
		SearchInput:   "crm-search",
		SearchResults: "search-results",
		Status:        "crm-status",
	}
}

// WithDefaults returns ids with empty entries replaced by their defaults.
func (ids ElementIDs) WithDefaults() ElementIDs {
	def := DefaultElementIDs()
	if ids.SearchInput == "" {
		ids.SearchInput = def.SearchInput
	}
	if ids.SearchResults == "" {
		ids.SearchResults = def.SearchResults
	}
	if ids.Status == "" {
		ids.Status = def.Status
	}
	return ids
}

// StatusKind selects the style of the status banner.
type StatusKind string

// Status banner kinds.
const (
	StatusLoading StatusKind = "loading"
	StatusError   StatusKind = "error"
	StatusFound   StatusKind = "found"
)

// Status is a message shown in the widget's status banner.
type Status struct {
	Kind    StatusKind
	Message string

	// Clearable adds a control that clears the selected contact.
	Clearable bool
}

// View renders the widget chrome: the search box, the result list and the
// status banner. Implementations skip elements missing from the page
// without reporting an error.
type View interface {
	// SetSearchText replaces the text of the search box.
	SetSearchText(text string) error

	// ShowStatus displays the status banner.
	ShowStatus(status Status) error

	// HideStatus hides the status banner.
	HideStatus() error

	// ShowResults renders contacts as a selectable list, each item carrying
	// its index. An empty list renders a "No results found" placeholder.
	ShowResults(contacts []*Contact) error

	// HideResults hides the result list.
	HideResults() error
}
