package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/dogbox/internal/client/models"
	"github.com/dmitrijs2005/dogbox/internal/sizefmt"
)

const createdLayout = "2006-01-02 15:04"

// renderCard formats one file for the list command.
func renderCard(e models.FileEntry) string {
	created := "just now"
	if !e.Placeholder() {
		created = e.CreatedAt.In(time.Local).Format(createdLayout)
	}
	return fmt.Sprintf("%s\n  %s, uploaded %s", e.Name, sizefmt.Format(e.Bytes), created)
}

func renderCards(entries []models.FileEntry) string {
	if len(entries) == 0 {
		return "No files yet. Use 'upload <path>' to add one."
	}

	cards := make([]string, 0, len(entries))
	for _, e := range entries {
		cards = append(cards, renderCard(e))
	}
	return strings.Join(cards, "\n")
}
