package importer

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/nikbrunner/studio/internal/model"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML into drafts ready to publish.
// The names of the enclosing folders become tags, followed by any TAGS
// attribute. A <DD> right after a link becomes its description and
// PRIVATE="1" marks the draft private.
func ParseHTMLBookmarks(r io.Reader) ([]model.Draft, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var drafts []model.Draft

	// Track current folder stack for tags
	var folderStack []string
	var pendingFolder string // folder waiting to be pushed on next DL
	last := -1               // index of the draft a <DD> would describe

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Mark this folder as pending - will be pushed when we see the next DL
				pendingFolder = getTextContent(n)
				last = -1
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					last = -1
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = href // fallback to URL as title
				}

				tags := make([]string, 0, len(folderStack))
				tags = append(tags, folderStack...)
				if extra := getAttr(n, "tags"); extra != "" {
					tags = append(tags, strings.Split(extra, ",")...)
				}

				visibility := model.Public
				if getAttr(n, "private") == "1" {
					visibility = model.Private
				}

				drafts = append(drafts, model.Draft{
					Title:      title,
					URL:        href,
					Tags:       tags,
					Visibility: visibility,
				}.Normalize())
				last = len(drafts) - 1
				return

			case "dd":
				if last >= 0 && drafts[last].Description == "" {
					drafts[last].Description = ownText(n)
				}
				last = -1

			case "dl":
				// If we have a pending folder, push it now
				pushedFolder := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushedFolder = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushedFolder && len(folderStack) > 0 {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return drafts, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// ownText returns the text directly inside n, ignoring nested elements
// such as a following <DT> the parser placed inside an unclosed <DD>.
func ownText(n *html.Node) string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
