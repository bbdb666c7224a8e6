// Package report renders clone and build summaries as text or markdown
// files and as terminal cards.
package report
