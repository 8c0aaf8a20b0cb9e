package crmfill

import "context"

// DefaultSearchLimit is the number of contacts requested per search.
const DefaultSearchLimit = 10

// Contact represents a directory entry as returned by the remote service.
// Every field is optional; JSON nulls decode to empty strings.
// A Contact is never modified after it has been received.
type Contact struct {
	ID          string `json:"contact_id,omitempty"`
	Name        string `json:"name"`
	CompanyName string `json:"company_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Label returns the text shown in the search box once the contact has been
// selected, e.g. "Acme Fuel - Jane Doe". Missing values are replaced with
// "Unknown" and "No name".
func (c *Contact) Label() string {
	company := c.CompanyName
	if company == "" {
		company = "Unknown"
	}
	name := c.Name
	if name == "" {
		name = "No name"
	}
	return company + " - " + name
}

// SearchRequest is the body of a directory search.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// DirectoryService searches the remote contact directory.
type DirectoryService interface {
	// SearchContacts returns contacts matching the query, at most req.Limit.
	// A successful search with no matches returns an empty slice.
	// Returns EUNAVAILABLE when the directory answers with a non-success
	// status or a payload without contacts.
	SearchContacts(ctx context.Context, req SearchRequest) ([]*Contact, error)
}
