package usecase

import (
	"integration-agent/internal/issue/repository"
	pkgLog "integration-agent/pkg/log"
)

type implUseCase struct {
	l    pkgLog.Logger
	repo repository.IssueRepository
}

// New creates a new issue UseCase instance.
func New(l pkgLog.Logger, repo repository.IssueRepository) *implUseCase {
	return &implUseCase{
		l:    l,
		repo: repo,
	}
}
