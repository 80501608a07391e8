package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/politask/politask/internal/api"
)

// SearchGateway is the slice of the api client used by search.
type SearchGateway interface {
	Search(ctx context.Context, query string) (*api.SearchResult, error)
}

type searchService struct {
	gw SearchGateway
}

func NewSearchService(gw SearchGateway) SearchService {
	return &searchService{gw: gw}
}

func (s *searchService) Search(ctx context.Context, query string) (*api.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("la búsqueda no puede estar vacía")
	}
	res, err := s.gw.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	// Search results render with status badges, so they get the same
	// ingestion normalization as stored tasks.
	for i := range res.Tasks {
		res.Tasks[i] = res.Tasks[i].Normalize()
	}
	return res, nil
}
