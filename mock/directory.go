package mock

import (
	"context"

	"github.com/fwojciec/crmfill"
)

var _ crmfill.DirectoryService = (*DirectoryService)(nil)

// DirectoryService is a mock implementation of crmfill.DirectoryService.
type DirectoryService struct {
	SearchContactsFn func(ctx context.Context, req crmfill.SearchRequest) ([]*crmfill.Contact, error)
}

func (s *DirectoryService) SearchContacts(ctx context.Context, req crmfill.SearchRequest) ([]*crmfill.Contact, error) {
	return s.SearchContactsFn(ctx, req)
}
