package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/politask/politask/internal/api"
	"github.com/politask/politask/internal/domain"
	"github.com/politask/politask/internal/store"
)

type projectService struct {
	gw    ProjectGateway
	store *store.Store
}

func NewProjectService(gw ProjectGateway, st *store.Store) ProjectService {
	return &projectService{gw: gw, store: st}
}

func (s *projectService) Create(ctx context.Context, req api.CreateProjectRequest) (*domain.Project, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("el nombre del proyecto es obligatorio")
	}

	created, err := s.gw.CreateProject(ctx, req)
	if err != nil {
		return nil, err
	}
	s.store.ApplyProjectCreated(*created)
	return created, nil
}
