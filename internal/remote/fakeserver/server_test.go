package fakeserver_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/nikbrunner/studio/internal/model"
	"github.com/nikbrunner/studio/internal/remote"
	"github.com/nikbrunner/studio/internal/remote/fakeserver"
)

func TestServer_RequiresToken(t *testing.T) {
	srv := httptest.NewServer(fakeserver.New(nil).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/bookmarks/me")
	assert.NilError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, resp.StatusCode, http.StatusUnauthorized)
}

func TestServer_FeedHidesPrivate(t *testing.T) {
	fs := fakeserver.New(nil)
	fs.AddUser("alice", model.User{ID: "u-alice", Username: "alice"})
	fs.Seed("u-alice", model.Bookmark{ID: "pub", Title: "Pub", URL: "https://a.example"})
	fs.Seed("u-alice", model.Bookmark{ID: "priv", Title: "Priv", URL: "https://b.example", Visibility: model.Private})

	srv := httptest.NewServer(fs.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/bookmarks?page=0&size=50")
	assert.NilError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	assert.NilError(t, err)
	assert.Assert(t, strings.Contains(string(body), `"id":"pub"`))
	assert.Assert(t, !strings.Contains(string(body), `"id":"priv"`))
	assert.Equal(t, fs.Requests(), 1)
}

func TestServer_SeedDemo(t *testing.T) {
	fs := fakeserver.New(nil)
	fs.SeedDemo()

	srv := httptest.NewServer(fs.Handler())
	defer srv.Close()

	c := remote.NewClient(srv.URL+fakeserver.Prefix, 0)
	resp, err := c.ListBookmarks(context.Background(), remote.Page{Size: 50})
	assert.NilError(t, err)
	assert.Equal(t, len(resp.Items), 3)
	assert.Equal(t, resp.Items[0].ID, "seed-1")
	assert.Equal(t, resp.Items[0].Author.Username, "mayat")
	assert.Equal(t, resp.Items[0].SavedCount, 24)
	assert.Equal(t, resp.Items[2].Author.Name, "Ella W.")

	auth, err := c.SignIn(context.Background(), "jonp", "")
	assert.NilError(t, err)
	assert.Equal(t, auth.User.Username, "jonp")
}
