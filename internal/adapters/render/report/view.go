// Package report renders batch outcomes for the terminal.
package report

import (
	"fmt"

	"chatpool/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	// Title heads the rendered report, e.g. "Leave report".
	Title string

	// Verification reports show good/bad standing instead of counts.
	Verification bool
}

func Render(batch domain.BatchReport, opts RenderOptions) string {
	return renderView(batch, opts, newStyles())
}

func renderView(batch domain.BatchReport, opts RenderOptions, s styles) string {
	title := opts.Title
	if title == "" {
		title = "Batch report"
	}

	lines := []string{
		s.title.Render(title),
		s.header.Render(fmt.Sprintf("accounts: %d, failed: %d", len(batch.Results), len(batch.Failed()))),
	}

	if len(batch.Results) == 0 {
		lines = append(lines, s.empty.Render("No accounts in the batch."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, result := range batch.Results {
		lines = append(lines, s.section.Render(renderResult(result, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderResult(result domain.AccountResult, opts RenderOptions, s styles) string {
	parts := []string{
		s.account.Render(accountTitle(result.Account)),
	}

	switch {
	case result.Err != nil:
		parts = append(parts, s.errLine.Render(fmt.Sprintf("aborted: %v", result.Err)))
	case opts.Verification && result.Good:
		parts = append(parts, s.good.Render("in good standing"))
	case opts.Verification:
		parts = append(parts, s.bad.Render("NOT in good standing"))
	default:
		parts = append(parts, s.counts.Render(fmt.Sprintf(
			"succeeded: %d, skipped: %d, failed: %d",
			result.Report.Succeeded, result.Report.Skipped, result.Report.Failed)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func accountTitle(account domain.Account) string {
	name := account.Name
	if name == "" {
		name = account.User.Tag()
	}

	return fmt.Sprintf("%s (%s)", name, account.ID)
}
