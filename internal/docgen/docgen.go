// Package docgen turns an issue and its comment thread into a
// storage-format documentation page.
package docgen

import (
	"context"
	"fmt"
	"html"
	"strings"

	"integration-agent/internal/issue"
	"integration-agent/internal/model"
	"integration-agent/internal/page"
	pkgLog "integration-agent/pkg/log"
)

// Result is the outcome of a doc-from-issue run.
type Result struct {
	Issue   model.Issue `json:"issue"`
	Page    model.Page  `json:"page"`
	Message string      `json:"message"`
}

type Generator struct {
	l       pkgLog.Logger
	issueUC issue.UseCase
	pageUC  page.UseCase
}

// New creates a documentation generator over the issue and page domains.
func New(l pkgLog.Logger, issueUC issue.UseCase, pageUC page.UseCase) *Generator {
	return &Generator{
		l:       l,
		issueUC: issueUC,
		pageUC:  pageUC,
	}
}

// FromIssue fetches an issue and its comments, renders documentation,
// and creates a page for it in the given space.
func (g *Generator) FromIssue(ctx context.Context, issueKey, spaceKey string) (Result, error) {
	iss, err := g.issueUC.Get(ctx, issueKey)
	if err != nil {
		g.l.Errorf(ctx, "docgen.FromIssue.Get: %v", err)
		return Result{}, err
	}

	comments, err := g.issueUC.GetComments(ctx, issueKey, 0)
	if err != nil {
		g.l.Errorf(ctx, "docgen.FromIssue.GetComments: %v", err)
		return Result{}, err
	}

	body := Render(iss, comments)
	title := fmt.Sprintf("Documentation for %s: %s", iss.Key, iss.Fields.Summary)

	created, err := g.pageUC.Create(ctx, page.CreateInput{
		SpaceKey: spaceKey,
		Title:    title,
		Body:     body,
	})
	if err != nil {
		g.l.Errorf(ctx, "docgen.FromIssue.Create: %v", err)
		return Result{}, err
	}

	g.l.Infof(ctx, "docgen.FromIssue: created page %s for %s", created.ID, iss.Key)
	return Result{
		Issue:   iss,
		Page:    created,
		Message: fmt.Sprintf("Created documentation page for %s", iss.Key),
	}, nil
}

// Render builds the storage-format HTML body for an issue and its
// comments. All issue-sourced text is escaped.
func Render(iss model.Issue, comments []model.Comment) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "<h1>%s</h1>", html.EscapeString(iss.Fields.Summary))
	fmt.Fprintf(&sb, "<p><strong>Issue Key:</strong> %s</p>", html.EscapeString(iss.Key))
	fmt.Fprintf(&sb, "<p><strong>Status:</strong> %s</p>", html.EscapeString(iss.Fields.Status.Name))
	fmt.Fprintf(&sb, "<p><strong>Type:</strong> %s</p>", html.EscapeString(iss.Fields.IssueType))
	if iss.Fields.Assignee != nil {
		fmt.Fprintf(&sb, "<p><strong>Assignee:</strong> %s</p>", html.EscapeString(iss.Fields.Assignee.DisplayName))
	}

	sb.WriteString("<h2>Description</h2>")
	description := iss.Fields.Description
	if description == "" {
		description = "No description provided"
	}
	fmt.Fprintf(&sb, "<p>%s</p>", html.EscapeString(description))

	if len(comments) > 0 {
		sb.WriteString("<h2>Comments</h2>")
		for _, c := range comments {
			fmt.Fprintf(&sb, "<div><strong>%s:</strong> %s</div>",
				html.EscapeString(c.Author.DisplayName), html.EscapeString(c.Body))
		}
	}

	return sb.String()
}
