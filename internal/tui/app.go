package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/studio/internal/logger"
	"github.com/nikbrunner/studio/internal/model"
	"github.com/nikbrunner/studio/internal/state"
	"github.com/nikbrunner/studio/internal/tui/layout"
)

// Mode is the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeComposer
	ModeLogin
	ModePrompt
	ModeConfirmDelete
	ModeHelp
)

// Defaults used when AppParams leaves them zero.
const (
	DefaultNoticeTTL    = 2400 * time.Millisecond
	DefaultTrendingTags = 8
)

// syncedMsg reports that a synchronizer call finished. id and lists name the
// row and tabs the App marked when the call started.
type syncedMsg struct {
	op    string
	id    string
	lists []state.List
	err   error
}

// noticeExpiredMsg asks to dismiss the notice with id.
type noticeExpiredMsg struct {
	id string
}

// App is the main bubbletea model for the bookmarking client. It renders
// snapshots of the synchronizer and runs every remote operation as a tea.Cmd.
type App struct {
	sync         *state.Synchronizer
	ctx          context.Context
	log          logger.Logger
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	noticeTTL    time.Duration
	trendingN    int

	snap    state.State
	tab     state.List
	cursors [4]int // per tab, in state.Lists order
	items   []Item
	mode    Mode

	// Rows and tabs waiting on a command that has not run yet. The
	// synchronizer only records its own pending and loading flags once the
	// command executes.
	pending model.IDSet
	loading [4]int // per tab, in state.Lists order

	composer ComposerState
	login    LoginState
	prompt   PromptState
	filter   FilterState
	deleteID string

	// busy names the operation the composer or login modal is waiting on.
	busy string

	// lastNoticeID is the notice a dismiss timer was started for.
	lastNoticeID string

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Synchronizer *state.Synchronizer
	Context      context.Context      // optional, defaults to context.Background
	Logger       logger.Logger        // optional
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	NoticeTTL    time.Duration        // optional, DefaultNoticeTTL
	TrendingTags int                  // optional, DefaultTrendingTags
	Tab          state.List           // optional initial tab, defaults to the feed
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	ctx := params.Context
	if ctx == nil {
		ctx = context.Background()
	}
	log := params.Logger
	if log == nil {
		log = logger.Nop()
	}
	if params.NoticeTTL <= 0 {
		params.NoticeTTL = DefaultNoticeTTL
	}
	if params.TrendingTags <= 0 {
		params.TrendingTags = DefaultTrendingTags
	}
	if params.Tab == "" {
		params.Tab = state.Feed
	}

	app := App{
		sync:         params.Synchronizer,
		ctx:          ctx,
		log:          log,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		noticeTTL:    params.NoticeTTL,
		trendingN:    params.TrendingTags,
		tab:          params.Tab,
		composer:     NewComposerState(layoutCfg),
		login:        NewLoginState(layoutCfg),
		prompt:       NewPromptState(layoutCfg),
		filter:       NewFilterState(layoutCfg),
		width:        80,
		height:       24,
	}

	app.refresh()
	app.startLoading(app.refreshLists())
	return app
}

// WithDimensions returns a copy of the app sized to width x height.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Cursor returns the cursor position on the current tab.
func (a App) Cursor() int {
	return a.cursors[tabIndex(a.tab)]
}

// Tab returns the tab being shown.
func (a App) Tab() state.List {
	return a.tab
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Items returns the rows of the current tab.
func (a App) Items() []Item {
	return a.items
}

// Init implements tea.Model. It loads every collection the session can see;
// the synchronizer is expected to be restored already.
func (a App) Init() tea.Cmd {
	lists := a.refreshLists()
	ctx := a.ctx
	return func() tea.Msg {
		return syncedMsg{op: "init", lists: lists, err: a.sync.Refresh(ctx)}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case syncedMsg:
		a.handleSynced(msg)
		cmd := a.noticeCmd()
		return a, cmd

	case noticeExpiredMsg:
		a.sync.DismissNotice(msg.id)
		a.refresh()
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeFilter:
			return a.updateFilter(msg)
		case ModeComposer:
			return a.updateComposer(msg)
		case ModeLogin:
			return a.updateLogin(msg)
		case ModePrompt:
			return a.updatePrompt(msg)
		case ModeConfirmDelete:
			return a.updateConfirmDelete(msg)
		case ModeHelp:
			if msg.String() == "?" || msg.String() == "q" || msg.Type == tea.KeyEsc {
				a.mode = ModeNormal
			}
			return a, nil
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.setCursor(0)
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if a.Cursor() < len(a.items)-1 {
			a.setCursor(a.Cursor() + 1)
		}

	case key.Matches(msg, a.keys.Up):
		if a.Cursor() > 0 {
			a.setCursor(a.Cursor() - 1)
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.items) > 0 {
			a.setCursor(len(a.items) - 1)
		}

	case key.Matches(msg, a.keys.NextTab):
		a.switchTab(1)

	case key.Matches(msg, a.keys.PrevTab):
		a.switchTab(-1)

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Refresh):
		if a.tab == state.Profile && a.snap.ProfileUser != "" {
			user := a.snap.ProfileUser
			cmd := a.runLoad("load-user", []state.List{state.Profile}, func(ctx context.Context) error {
				return a.sync.LoadUser(ctx, user)
			})
			return a, cmd
		}
		cmd := a.runLoad("refresh", a.refreshLists(), a.sync.Refresh)
		return a, cmd

	case key.Matches(msg, a.keys.Filter):
		a.mode = ModeFilter
		a.filter.Input.SetValue(a.filter.Query)
		a.filter.Input.CursorEnd()
		cmd := a.filter.Input.Focus()
		a.refresh()
		return a, cmd

	case key.Matches(msg, a.keys.TagFilter):
		if a.tab != state.Feed {
			return a, nil
		}
		a.prompt.Open(PromptTag, a.snap.FeedTag)
		a.mode = ModePrompt

	case key.Matches(msg, a.keys.OpenProfile):
		a.prompt.Open(PromptUser, a.snap.ProfileUser)
		a.mode = ModePrompt

	case key.Matches(msg, a.keys.OpenAuthor):
		item := a.selectedItem()
		if item == nil || item.Bookmark.Author.Username == "" {
			return a, nil
		}
		cmd := a.openProfile(item.Bookmark.Author.Username)
		return a, cmd

	case key.Matches(msg, a.keys.Login):
		a.login.Open(a.snap.DraftUsername)
		a.mode = ModeLogin

	case key.Matches(msg, a.keys.Logout):
		if a.snap.Session.Token == "" {
			return a, nil
		}
		return a, a.run("logout", a.sync.SignOut)

	case key.Matches(msg, a.keys.Add):
		if !a.snap.Session.Active() {
			cmd := a.notify(state.NoticeInfo, "Please sign in to publish.")
			return a, cmd
		}
		a.composer.Open(model.Draft{Visibility: model.Public}, "")
		a.mode = ModeComposer

	case key.Matches(msg, a.keys.Edit):
		item := a.selectedItem()
		if item == nil || !item.Own {
			return a, nil
		}
		a.composer.Open(model.DraftFrom(item.Bookmark), item.ID())
		a.mode = ModeComposer

	case key.Matches(msg, a.keys.Delete):
		item := a.selectedItem()
		if item == nil || !item.Own {
			return a, nil
		}
		a.deleteID = item.ID()
		a.mode = ModeConfirmDelete

	case key.Matches(msg, a.keys.Save):
		item := a.selectedItem()
		if item == nil {
			return a, nil
		}
		id := item.ID()
		cmd := a.runToggle("save", id, func(ctx context.Context) error {
			return a.sync.ToggleSave(ctx, id)
		})
		return a, cmd

	case key.Matches(msg, a.keys.Share):
		item := a.selectedItem()
		if item == nil {
			return a, nil
		}
		id := item.ID()
		cmd := a.runToggle("share", id, func(ctx context.Context) error {
			return a.sync.ToggleShare(ctx, id)
		})
		return a, cmd
	}

	return a, nil
}

func (a App) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.filter.Reset()
		a.mode = ModeNormal
		a.refresh()
		return a, nil
	case tea.KeyEnter:
		a.filter.Query = strings.TrimSpace(a.filter.Input.Value())
		a.filter.Input.Blur()
		a.mode = ModeNormal
		a.refresh()
		return a, nil
	}

	var cmd tea.Cmd
	a.filter.Input, cmd = a.filter.Input.Update(msg)
	a.setCursor(0)
	a.refresh()
	return a, cmd
}

func (a App) updateComposer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.busy != "" {
		return a, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		a.composer.Reset()
		a.mode = ModeNormal
		return a, nil
	case tea.KeyTab, tea.KeyDown:
		a.composer.Next()
		return a, nil
	case tea.KeyShiftTab, tea.KeyUp:
		a.composer.Prev()
		return a, nil
	case tea.KeyEnter:
		return a.submitComposer()
	}

	if a.composer.Focus == FieldVisibility {
		if msg.Type == tea.KeySpace || msg.String() == " " {
			a.composer.Private = !a.composer.Private
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.composer.Inputs[a.composer.Focus], cmd = a.composer.Inputs[a.composer.Focus].Update(msg)
	a.composer.Err = ""
	return a, cmd
}

func (a App) submitComposer() (tea.Model, tea.Cmd) {
	draft := a.composer.Draft()
	if err := draft.Validate(); err != nil {
		a.composer.Err = state.Message(err, "Invalid bookmark")
		return a, nil
	}

	a.busy = "composer"
	editID := a.composer.EditID
	if editID == "" {
		return a, a.run("composer", func(ctx context.Context) error {
			_, err := a.sync.Create(ctx, draft)
			return err
		})
	}
	return a, a.run("composer", func(ctx context.Context) error {
		_, err := a.sync.Update(ctx, editID, draft)
		return err
	})
}

func (a App) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.mode = ModeNormal
		return a, nil
	case tea.KeyTab, tea.KeyShiftTab:
		a.login.Toggle()
		return a, nil
	case tea.KeyEnter:
		username := strings.TrimSpace(a.login.Username.Value())
		credential := strings.TrimSpace(a.login.Token.Value())
		if credential == "" {
			if a.login.Focus == 0 {
				a.login.Toggle()
			}
			return a, nil
		}
		a.mode = ModeNormal
		a.login.Token.Reset()
		return a, a.run("login", func(ctx context.Context) error {
			if err := a.sync.SetDraftUsername(ctx, username); err != nil {
				return err
			}
			return a.sync.SignIn(ctx, credential)
		})
	}

	var cmd tea.Cmd
	if a.login.Focus == 0 {
		a.login.Username, cmd = a.login.Username.Update(msg)
	} else {
		a.login.Token, cmd = a.login.Token.Update(msg)
	}
	return a, cmd
}

func (a App) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.prompt.Input.Blur()
		a.mode = ModeNormal
		return a, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(a.prompt.Input.Value())
		a.prompt.Input.Blur()
		a.mode = ModeNormal

		switch a.prompt.Kind {
		case PromptTag:
			a.setCursor(0)
			cmd := a.runLoad("load-feed", []state.List{state.Feed}, func(ctx context.Context) error {
				return a.sync.LoadFeed(ctx, value)
			})
			return a, cmd
		case PromptUser:
			if value == "" {
				return a, nil
			}
			cmd := a.openProfile(strings.TrimPrefix(value, "@"))
			return a, cmd
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.prompt.Input, cmd = a.prompt.Input.Update(msg)
	return a, cmd
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		id := a.deleteID
		a.deleteID = ""
		a.mode = ModeNormal
		return a, a.run("delete", func(ctx context.Context) error {
			return a.sync.Delete(ctx, id)
		})
	case "n", "esc", "q":
		a.deleteID = ""
		a.mode = ModeNormal
	}
	return a, nil
}

// handleSynced applies the result of a finished operation.
func (a *App) handleSynced(msg syncedMsg) {
	if msg.id != "" {
		a.pending = withID(a.pending, msg.id, false)
	}
	for _, l := range msg.lists {
		idx := tabIndex(l)
		a.loading[idx] = max(0, a.loading[idx]-1)
	}

	if msg.err != nil && !errors.Is(msg.err, state.ErrStaleContext) {
		a.log.Debug("operation failed", logger.String("op", msg.op), logger.Error(msg.err))
	}

	if msg.op == "composer" && a.busy == "composer" {
		a.busy = ""
		var validationErr *model.ValidationError
		switch {
		case msg.err == nil, errors.Is(msg.err, state.ErrAuthRequired), errors.Is(msg.err, state.ErrStaleContext):
			a.composer.Reset()
			a.mode = ModeNormal
		case errors.As(msg.err, &validationErr):
			a.composer.Err = validationErr.Message
		default:
			a.composer.Err = state.Message(msg.err, "Request failed")
		}
	}

	a.refresh()
}

// noticeCmd starts the dismiss timer for a notice that has not been seen yet.
func (a *App) noticeCmd() tea.Cmd {
	n := a.snap.Notice
	if n == nil || n.ID == a.lastNoticeID {
		return nil
	}
	a.lastNoticeID = n.ID
	id := n.ID
	return tea.Tick(a.noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

// notify records a local notice and starts its timer.
func (a *App) notify(kind state.NoticeKind, text string) tea.Cmd {
	a.sync.Notify(kind, text)
	a.refresh()
	return a.noticeCmd()
}

func (a *App) openProfile(username string) tea.Cmd {
	a.tab = state.Profile
	a.filter.Reset()
	a.setCursor(0)
	return a.runLoad("load-user", []state.List{state.Profile}, func(ctx context.Context) error {
		return a.sync.LoadUser(ctx, username)
	})
}

func (a App) run(op string, fn func(context.Context) error) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		return syncedMsg{op: op, err: fn(ctx)}
	}
}

// runToggle marks id pending from the key press until fn's result arrives.
// A row that is already pending is left alone.
func (a *App) runToggle(op, id string, fn func(context.Context) error) tea.Cmd {
	if a.pending.Has(id) || a.snap.IsPending(id) {
		return nil
	}
	a.pending = withID(a.pending, id, true)
	a.refresh()

	ctx := a.ctx
	return func() tea.Msg {
		return syncedMsg{op: op, id: id, err: fn(ctx)}
	}
}

// runLoad shows lists as loading until fn's result arrives.
func (a *App) runLoad(op string, lists []state.List, fn func(context.Context) error) tea.Cmd {
	a.startLoading(lists)
	ctx := a.ctx
	return func() tea.Msg {
		return syncedMsg{op: op, lists: lists, err: fn(ctx)}
	}
}

func (a *App) startLoading(lists []state.List) {
	for _, l := range lists {
		a.loading[tabIndex(l)]++
	}
}

// refreshLists names the tabs a full refresh reloads.
func (a App) refreshLists() []state.List {
	if a.snap.Session.Token == "" {
		return []state.List{state.Feed}
	}
	return []state.List{state.Feed, state.Mine, state.Saved}
}

// isLoading reports whether the current tab is waiting on a load.
func (a App) isLoading() bool {
	return a.loading[tabIndex(a.tab)] > 0 || a.snap.Collection(a.tab).Loading
}

// withID returns a copy of set with id added or removed.
func withID(set model.IDSet, id string, on bool) model.IDSet {
	next := make(model.IDSet, len(set)+1)
	for k := range set {
		next[k] = struct{}{}
	}
	if on {
		next[id] = struct{}{}
	} else {
		delete(next, id)
	}
	return next
}

// refresh takes a new snapshot and rebuilds the rows of the current tab.
func (a *App) refresh() {
	a.snap = a.sync.Snapshot()
	a.items = buildItems(a.snap, a.tab, a.filterQuery())
	for i := range a.items {
		if a.pending.Has(a.items[i].ID()) {
			a.items[i].Pending = true
		}
	}

	idx := tabIndex(a.tab)
	if a.cursors[idx] >= len(a.items) {
		a.cursors[idx] = max(0, len(a.items)-1)
	}
}

func (a App) filterQuery() string {
	if a.mode == ModeFilter {
		return a.filter.Input.Value()
	}
	return a.filter.Query
}

func (a *App) switchTab(delta int) {
	idx := (tabIndex(a.tab) + delta + len(state.Lists)) % len(state.Lists)
	a.tab = state.Lists[idx]
	a.filter.Reset()
	a.refresh()
}

func (a *App) setCursor(pos int) {
	a.cursors[tabIndex(a.tab)] = pos
}

// selectedItem returns the row under the cursor, or nil.
func (a App) selectedItem() *Item {
	cursor := a.Cursor()
	if cursor < 0 || cursor >= len(a.items) {
		return nil
	}
	item := a.items[cursor]
	return &item
}

func tabIndex(name state.List) int {
	for i, l := range state.Lists {
		if l == name {
			return i
		}
	}
	return 0
}
