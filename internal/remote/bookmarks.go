package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nikbrunner/studio/internal/model"
)

// Page selects one page of a list endpoint.
type Page struct {
	Page int
	Size int
	Tag  string // feed only
}

func (p Page) values() url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(p.Page))
	if p.Size > 0 {
		q.Set("size", strconv.Itoa(p.Size))
	}
	if p.Tag != "" {
		q.Set("tag", p.Tag)
	}
	return q
}

// ListBookmarks returns the public feed, optionally filtered by tag.
func (c *Client) ListBookmarks(ctx context.Context, page Page) (model.ListResponse, error) {
	var resp model.ListResponse
	err := c.do(ctx, http.MethodGet, "/bookmarks", page.values(), "", nil, &resp)
	return resp, err
}

// ListUserBookmarks returns another user's public bookmarks.
func (c *Client) ListUserBookmarks(ctx context.Context, username string, page Page) (model.ListResponse, error) {
	page.Tag = ""
	var resp model.ListResponse
	err := c.do(ctx, http.MethodGet, "/bookmarks/users/"+url.PathEscape(username), page.values(), "", nil, &resp)
	return resp, err
}

// ListMine returns every bookmark owned by the token's user.
func (c *Client) ListMine(ctx context.Context, token string, page Page) (model.ListResponse, error) {
	page.Tag = ""
	var resp model.ListResponse
	err := c.do(ctx, http.MethodGet, "/bookmarks/me", page.values(), token, nil, &resp)
	return resp, err
}

// ListSaved returns the bookmarks the token's user has saved.
func (c *Client) ListSaved(ctx context.Context, token string, page Page) (model.ListResponse, error) {
	page.Tag = ""
	var resp model.ListResponse
	err := c.do(ctx, http.MethodGet, "/bookmarks/saved", page.values(), token, nil, &resp)
	return resp, err
}

func (c *Client) CreateBookmark(ctx context.Context, token string, draft model.Draft) (model.Bookmark, error) {
	var b model.Bookmark
	err := c.do(ctx, http.MethodPost, "/bookmarks", nil, token, draft, &b)
	return b, err
}

func (c *Client) UpdateBookmark(ctx context.Context, token, id string, draft model.Draft) (model.Bookmark, error) {
	var b model.Bookmark
	err := c.do(ctx, http.MethodPut, bookmarkPath(id), nil, token, draft, &b)
	return b, err
}

func (c *Client) DeleteBookmark(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, bookmarkPath(id), nil, token, nil, nil)
}

// SaveBookmark records a save and returns the bookmark with its new counts.
func (c *Client) SaveBookmark(ctx context.Context, token, id string) (model.Bookmark, error) {
	var b model.Bookmark
	err := c.do(ctx, http.MethodPost, bookmarkPath(id)+"/save", nil, token, struct{}{}, &b)
	return b, err
}

func (c *Client) UnsaveBookmark(ctx context.Context, token, id string) (model.Bookmark, error) {
	var b model.Bookmark
	err := c.do(ctx, http.MethodDelete, bookmarkPath(id)+"/save", nil, token, nil, &b)
	return b, err
}

// ShareBookmark records a share and returns the bookmark with its new counts.
func (c *Client) ShareBookmark(ctx context.Context, token, id string) (model.Bookmark, error) {
	var b model.Bookmark
	err := c.do(ctx, http.MethodPost, bookmarkPath(id)+"/share", nil, token, struct{}{}, &b)
	return b, err
}

func (c *Client) UnshareBookmark(ctx context.Context, token, id string) (model.Bookmark, error) {
	var b model.Bookmark
	err := c.do(ctx, http.MethodDelete, bookmarkPath(id)+"/share", nil, token, nil, &b)
	return b, err
}

func bookmarkPath(id string) string {
	return "/bookmarks/" + url.PathEscape(id)
}
