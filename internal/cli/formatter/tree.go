package formatter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/rcpsp/internal/service"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Failed bool
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders items as an indented tree using box-drawing
// connectors. Leaf items get a ✔ or ✖ marker and their detail badges are
// aligned in one column.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		marker := ""
		if item.Level > 0 {
			if item.Failed {
				marker = StyleRed.Render("✖ ")
			} else {
				marker = StyleGreen.Render("✔ ")
			}
		}

		content := prefix + marker + title
		lines[idx].content = content

		if item.Detail != "" {
			style := StyleBlue
			if item.Failed {
				style = StyleRed
			}
			lines[idx].badge = style.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}

		maxContentWidth = max(maxContentWidth, lipgloss.Width(content))
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := max(maxContentWidth-lipgloss.Width(li.content), 0)
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}

	return b.String()
}

// FormatBatchSummary renders one line per dataset under root. details
// holds the badge for successful datasets, keyed by path; failed ones
// show their error.
func FormatBatchSummary(root string, items []service.BatchItem, details map[string]string) string {
	tree := []TreeItem{{Title: Bold(root)}}
	for i, it := range items {
		title := it.Path
		if rel, err := filepath.Rel(root, it.Path); err == nil && !strings.HasPrefix(rel, "..") {
			title = rel
		}
		item := TreeItem{Title: title, Level: 1, IsLast: i == len(items)-1, Failed: it.Err != nil}
		if it.Err != nil {
			item.Detail = it.Err.Error()
		} else {
			item.Detail = details[it.Path]
		}
		tree = append(tree, item)
	}

	failed := service.Failed(items)
	summary := fmt.Sprintf("%d datasets, %d failed", len(items), failed)
	if failed > 0 {
		summary = StyleRed.Render(summary)
	} else {
		summary = StyleGreen.Render(summary)
	}
	return Header("Batch") + "\n" + RenderTree(tree) + summary + "\n"
}
