// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todoctl/internal/service"
)

// FormatTodo formats a numbered todo line, with the description on an
// indented follow-up line when present.
// Format: "{N:>4}  [x] {TITLE}\n" ("[ ]" when not completed).
func FormatTodo(w io.Writer, num int, todo service.Todo) {
	box := "[ ]"
	if todo.Completed {
		box = "[x]"
	}
	fmt.Fprintf(w, "%4d  %s %s\n", num, box, normalizeTitle(todo.Title))
	if desc := strings.TrimSpace(todo.Description); desc != "" {
		desc = strings.ReplaceAll(desc, "\r", " ")
		desc = strings.ReplaceAll(desc, "\n", " ")
		fmt.Fprintf(w, "          %s\n", desc)
	}
}

// FormatSummary formats the completed/total stats line.
func FormatSummary(w io.Writer, todos []service.Todo) {
	total := len(todos)
	completed := 0
	for _, t := range todos {
		if t.Completed {
			completed++
		}
	}
	percent := 0
	if total > 0 {
		percent = completed * 100 / total
	}
	fmt.Fprintf(w, "%d tasks, %d completed (%d%%)\n", total, completed, percent)
}

// FormatUser formats the whoami line.
func FormatUser(w io.Writer, user service.User) {
	fmt.Fprintf(w, "%s <%s>\n", user.Username, user.Email)
}

// normalizeTitle normalizes a todo title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
