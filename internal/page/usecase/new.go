package usecase

import (
	"integration-agent/internal/page/repository"
	pkgLog "integration-agent/pkg/log"
)

type implUseCase struct {
	l    pkgLog.Logger
	repo repository.PageRepository
}

// New creates a new page UseCase instance.
func New(l pkgLog.Logger, repo repository.PageRepository) *implUseCase {
	return &implUseCase{
		l:    l,
		repo: repo,
	}
}
