package usecase

import (
	"context"
	"fmt"
	"strings"

	"integration-agent/internal/model"
	"integration-agent/internal/page"
	"integration-agent/internal/page/repository"
)

func (uc *implUseCase) Get(ctx context.Context, id string) (model.Page, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Page{}, fmt.Errorf("%w: empty page id", page.ErrPageNotFound)
	}
	return uc.repo.GetPage(ctx, id)
}

func (uc *implUseCase) GetByTitle(ctx context.Context, spaceKey, title string) (model.Page, error) {
	if strings.TrimSpace(spaceKey) == "" {
		return model.Page{}, page.ErrEmptySpace
	}
	if strings.TrimSpace(title) == "" {
		return model.Page{}, page.ErrEmptyTitle
	}
	return uc.repo.GetPageByTitle(ctx, spaceKey, strings.TrimSpace(title))
}

func (uc *implUseCase) Search(ctx context.Context, input page.SearchInput) (page.SearchOutput, error) {
	if strings.TrimSpace(input.CQL) == "" {
		return page.SearchOutput{}, page.ErrEmptyQuery
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	result, err := uc.repo.SearchPages(ctx, repository.SearchOptions{
		CQL:   input.CQL,
		Limit: limit,
		Start: input.Start,
	})
	if err != nil {
		return page.SearchOutput{}, err
	}

	return page.SearchOutput{
		Pages: result.Pages,
		Total: result.Total,
		Limit: result.Limit,
		Start: result.Start,
	}, nil
}

func (uc *implUseCase) Create(ctx context.Context, input page.CreateInput) (model.Page, error) {
	if strings.TrimSpace(input.SpaceKey) == "" {
		return model.Page{}, page.ErrEmptySpace
	}
	if strings.TrimSpace(input.Title) == "" {
		return model.Page{}, page.ErrEmptyTitle
	}
	if strings.TrimSpace(input.Body) == "" {
		return model.Page{}, page.ErrEmptyBody
	}

	created, err := uc.repo.CreatePage(ctx, repository.CreatePageOptions{
		SpaceKey: input.SpaceKey,
		Title:    strings.TrimSpace(input.Title),
		Body:     input.Body,
		ParentID: input.ParentID,
	})
	if err != nil {
		return model.Page{}, err
	}

	uc.l.Infof(ctx, "page usecase: created %q (id %s) in space %s", created.Title, created.ID, input.SpaceKey)
	return created, nil
}

func (uc *implUseCase) Update(ctx context.Context, id string, input page.UpdateInput) (model.Page, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Page{}, fmt.Errorf("%w: empty page id", page.ErrPageNotFound)
	}
	if input.Title == nil && input.Body == nil {
		return model.Page{}, page.ErrNoFieldsToUpdate
	}

	return uc.repo.UpdatePage(ctx, id, repository.UpdatePageOptions{
		Title: input.Title,
		Body:  input.Body,
	})
}

func (uc *implUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: empty page id", page.ErrPageNotFound)
	}

	if err := uc.repo.DeletePage(ctx, id); err != nil {
		return err
	}

	uc.l.Infof(ctx, "page usecase: deleted page %s", id)
	return nil
}

func (uc *implUseCase) AddComment(ctx context.Context, id, body string) (model.Comment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Comment{}, fmt.Errorf("%w: empty page id", page.ErrPageNotFound)
	}
	if strings.TrimSpace(body) == "" {
		return model.Comment{}, page.ErrEmptyComment
	}
	return uc.repo.AddComment(ctx, id, body)
}

func (uc *implUseCase) GetComments(ctx context.Context, id string, limit int) ([]model.Comment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty page id", page.ErrPageNotFound)
	}
	return uc.repo.ListComments(ctx, id, limit)
}

func (uc *implUseCase) GetChildren(ctx context.Context, id string, limit int) ([]model.Page, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty page id", page.ErrPageNotFound)
	}
	return uc.repo.GetChildren(ctx, id, limit)
}

func (uc *implUseCase) ListSpaces(ctx context.Context) ([]model.Space, error) {
	return uc.repo.ListSpaces(ctx)
}
