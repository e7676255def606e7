package exporter

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/nikbrunner/studio/internal/importer"
	"github.com/nikbrunner/studio/internal/model"
)

func TestExportHTML_Empty(t *testing.T) {
	html := ExportHTML("Saved", nil)

	// Should have basic structure even when empty
	if !strings.Contains(html, "<!DOCTYPE NETSCAPE-Bookmark-file-1>") {
		t.Error("expected DOCTYPE declaration")
	}
	if !strings.Contains(html, "<TITLE>Saved</TITLE>") {
		t.Error("expected TITLE element")
	}
	if !strings.Contains(html, "<H1>Saved</H1>") {
		t.Error("expected H1 element")
	}
}

func TestExportHTML_SingleBookmark(t *testing.T) {
	html := ExportHTML("Bookmarks", []model.Bookmark{{
		ID:         "b1",
		Title:      "GitHub",
		URL:        "https://github.com",
		Tags:       []string{"code", "git"},
		Visibility: model.Public,
		CreatedAt:  time.Unix(1700000000, 0),
	}})

	if !strings.Contains(html, `<A HREF="https://github.com"`) {
		t.Error("expected bookmark URL")
	}
	if !strings.Contains(html, "GitHub</A>") {
		t.Error("expected bookmark title")
	}
	if !strings.Contains(html, `ADD_DATE="1700000000"`) {
		t.Error("expected ADD_DATE timestamp")
	}
	if !strings.Contains(html, `TAGS="code,git"`) {
		t.Error("expected TAGS attribute")
	}
	if strings.Contains(html, "PRIVATE") {
		t.Error("public bookmark must not be marked private")
	}
	if strings.Contains(html, "<DD>") {
		t.Error("no description expected")
	}
}

func TestExportHTML_EscapesSpecialCharacters(t *testing.T) {
	html := ExportHTML("A & B", []model.Bookmark{{
		Title:       `Tom & Jerry's "Show"`,
		URL:         "https://example.com/?a=1&b=2",
		Description: "<b>bold</b>",
		CreatedAt:   time.Unix(1700000000, 0),
	}})

	if !strings.Contains(html, "<TITLE>A &amp; B</TITLE>") {
		t.Error("expected escaped heading")
	}
	if !strings.Contains(html, "Tom &amp; Jerry&#39;s &#34;Show&#34;</A>") {
		t.Error("expected escaped title")
	}
	if !strings.Contains(html, `HREF="https://example.com/?a=1&amp;b=2"`) {
		t.Error("expected escaped URL")
	}
	if !strings.Contains(html, "<DD>&lt;b&gt;bold&lt;/b&gt;") {
		t.Error("expected escaped description")
	}
}

func TestExportHTML_ImportsBack(t *testing.T) {
	exported := ExportHTML("Mine", []model.Bookmark{
		{Title: "One", URL: "https://one.example", Tags: []string{"api"}, Description: "first", Visibility: model.Private},
		{Title: "Two", URL: "https://two.example", Visibility: model.Public},
	})

	drafts, err := importer.ParseHTMLBookmarks(strings.NewReader(exported))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}

	want := model.Draft{Title: "One", URL: "https://one.example", Description: "first", Tags: []string{"api"}, Visibility: model.Private}
	if !reflect.DeepEqual(drafts[0], want) {
		t.Errorf("expected %+v, got %+v", want, drafts[0])
	}
	if drafts[1].Visibility != model.Public || len(drafts[1].Tags) != 0 {
		t.Errorf("unexpected second draft %+v", drafts[1])
	}
}
