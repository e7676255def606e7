package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/studio/internal/model"
)

// DefaultExportPath returns the default export file path for a list.
// Format: ~/Downloads/studio-<list>-YYYY-MM-DD.html
func DefaultExportPath(list string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("studio-%s-%s.html", list, time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML writes bookmarks to Netscape bookmark HTML under a single heading.
// Tags go into the TAGS attribute and descriptions into a <DD>, so the file
// imports back into this client and into browsers.
func ExportHTML(title string, bookmarks []model.Bookmark) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	fmt.Fprintf(&b, "<TITLE>%s</TITLE>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "<H1>%s</H1>\n", html.EscapeString(title))
	b.WriteString("<DL><p>\n")

	for _, bookmark := range bookmarks {
		writeBookmark(&b, bookmark)
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeBookmark(b *strings.Builder, bookmark model.Bookmark) {
	const prefix = "    "

	fmt.Fprintf(b, "%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\"", prefix, html.EscapeString(bookmark.URL), bookmark.CreatedAt.Unix())
	if !bookmark.UpdatedAt.IsZero() {
		fmt.Fprintf(b, " LAST_MODIFIED=\"%d\"", bookmark.UpdatedAt.Unix())
	}
	if len(bookmark.Tags) > 0 {
		fmt.Fprintf(b, " TAGS=\"%s\"", html.EscapeString(strings.Join(bookmark.Tags, ",")))
	}
	if bookmark.Visibility == model.Private {
		b.WriteString(" PRIVATE=\"1\"")
	}
	fmt.Fprintf(b, ">%s</A>\n", html.EscapeString(bookmark.Title))

	if bookmark.Description != "" {
		fmt.Fprintf(b, "%s<DD>%s\n", prefix, html.EscapeString(bookmark.Description))
	}
}
