package service

import (
	"context"
	"testing"

	"github.com/politask/politask/internal/api"
	"github.com/politask/politask/internal/domain"
	"github.com/politask/politask/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProjectGateway struct {
	echo domain.Project
	fail bool
}

func (g *fakeProjectGateway) CreateProject(context.Context, api.CreateProjectRequest) (*domain.Project, error) {
	if g.fail {
		return nil, errGateway
	}
	echo := g.echo
	return &echo, nil
}

type fakeCommentGateway struct {
	echo domain.Comment
	fail bool
}

func (g *fakeCommentGateway) CreateComment(context.Context, domain.ID, string) (*domain.Comment, error) {
	if g.fail {
		return nil, errGateway
	}
	echo := g.echo
	return &echo, nil
}

func TestProjectCreate_PrependsEcho(t *testing.T) {
	st := store.New(nilLoader{})
	st.ApplyProjectCreated(domain.Project{ID: "1", Name: "Viejo"})

	gw := &fakeProjectGateway{echo: domain.Project{ID: "2", Name: "Website", OwnerID: "7"}}
	svc := NewProjectService(gw, st)

	created, err := svc.Create(context.Background(), api.CreateProjectRequest{Name: "Website", OwnerID: "7"})
	require.NoError(t, err)

	projects := st.Projects()
	require.Len(t, projects, 2)
	assert.Equal(t, *created, projects[0], "new project goes first")
	assert.Equal(t, domain.ID("1"), projects[1].ID)
}

func TestProjectCreate_EmptyNameRejectedLocally(t *testing.T) {
	st := store.New(nilLoader{})
	svc := NewProjectService(&fakeProjectGateway{fail: true}, st)

	_, err := svc.Create(context.Background(), api.CreateProjectRequest{Name: "  "})
	require.Error(t, err)
	assert.Empty(t, st.Projects())
}

func TestProjectCreate_FailureLeavesStoreUntouched(t *testing.T) {
	st := store.New(nilLoader{})
	st.ApplyProjectCreated(domain.Project{ID: "1", Name: "Viejo"})
	svc := NewProjectService(&fakeProjectGateway{fail: true}, st)

	_, err := svc.Create(context.Background(), api.CreateProjectRequest{Name: "Website"})
	require.ErrorIs(t, err, errGateway)
	assert.Len(t, st.Projects(), 1)
}

func TestCommentCreate_AppendsEcho(t *testing.T) {
	st := newStoreWithTasks(domain.Task{ID: "7", Title: "Fix bug", CommentsCount: 0})
	gw := &fakeCommentGateway{echo: domain.Comment{ID: "c1", TaskID: "7", UserID: "u1", Content: "listo"}}
	svc := NewCommentService(gw, st)

	created, err := svc.Create(context.Background(), "7", "listo")
	require.NoError(t, err)

	comments := st.Comments()
	require.Len(t, comments, 1)
	assert.Equal(t, *created, comments[0])

	task, _ := st.TaskByID("7")
	assert.Equal(t, 1, task.CommentsCount)
}

func TestCommentCreate_EmptyContentRejectedLocally(t *testing.T) {
	st := store.New(nilLoader{})
	svc := NewCommentService(&fakeCommentGateway{fail: true}, st)

	_, err := svc.Create(context.Background(), "7", "   ")
	require.Error(t, err)
	assert.Empty(t, st.Comments())
}

type fakeSearchGateway struct {
	res  *api.SearchResult
	fail bool
}

func (g *fakeSearchGateway) Search(context.Context, string) (*api.SearchResult, error) {
	if g.fail {
		return nil, errGateway
	}
	return g.res, nil
}

func TestSearch_NormalizesTaskResults(t *testing.T) {
	gw := &fakeSearchGateway{res: &api.SearchResult{
		Tasks: []domain.Task{{ID: "7", Title: "Fix bug"}},
	}}
	svc := NewSearchService(gw)

	res, err := svc.Search(context.Background(), "  fix bug ")
	require.NoError(t, err)
	require.Len(t, res.Tasks, 1)
	assert.Equal(t, domain.StatusPending, res.Tasks[0].Status)
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	svc := NewSearchService(&fakeSearchGateway{fail: true})
	_, err := svc.Search(context.Background(), "   ")
	require.Error(t, err)
}
