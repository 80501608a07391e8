package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/politask/politask/internal/domain"
	"github.com/politask/politask/internal/store"
)

type commentService struct {
	gw    CommentGateway
	store *store.Store
}

func NewCommentService(gw CommentGateway, st *store.Store) CommentService {
	return &commentService{gw: gw, store: st}
}

func (s *commentService) Create(ctx context.Context, taskID domain.ID, content string) (*domain.Comment, error) {
	if taskID == "" {
		return nil, fmt.Errorf("comment create: task id is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("el comentario no puede estar vacío")
	}

	created, err := s.gw.CreateComment(ctx, taskID, content)
	if err != nil {
		return nil, err
	}
	s.store.ApplyCommentCreated(*created)
	return created, nil
}
