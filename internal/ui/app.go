package ui

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/nurture/internal/app"
	"github.com/abelbrown/nurture/internal/config"
	"github.com/abelbrown/nurture/internal/feed"
	"github.com/abelbrown/nurture/internal/timer"
)

type view int

const (
	viewHome view = iota
	viewLog
	viewStats
	viewSettings
	viewCount
)

var viewNames = [viewCount]string{"Home", "Log", "Stats", "Settings"}

// encouragements rotate on every recorded feed.
var encouragements = []string{
	"You're doing great!", "One feed at a time.", "You got this!",
	"Deep breaths.", "Remember to hydrate.", "Super parent mode: ON",
	"Doing an amazing job.", "Love grows here.",
}

// App is the root Bubble Tea model. It owns presentation only: every
// display value comes from the app.Snapshot recomputed each tick, and
// every key maps onto an app.State operation.
type App struct {
	state      *app.State
	exportPath string

	snap app.Snapshot
	now  time.Time

	view   view
	cursor int
	form   *editForm

	styles Styles

	flash     string
	flashErr  bool
	encourage string

	pendingDelete string
	confirmClear  bool

	width  int
	height int
	ready  bool
}

// New creates the root model. The first snapshot is taken immediately so
// the display is populated before the first tick arrives.
func New(state *app.State, exportPath string) App {
	now := time.Now()
	settings := state.Settings()
	return App{
		state:      state,
		exportPath: exportPath,
		snap:       state.Tick(now),
		now:        now,
		styles:     NewStyles(settings.Theme, settings.DarkMode),
	}
}

// Init starts the 1 Hz tick loop.
func (a App) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		a.now = time.Time(msg)
		a.snap = a.state.Tick(a.now)
		if a.snap.Reminder {
			a.flash = "Time to feed!"
			a.flashErr = false
		}
		return a, tickCmd()

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		if a.form != nil {
			return a.handleFormKey(msg)
		}
		return a.handleKey(msg)
	}

	return a, nil
}

// refresh re-derives the snapshot right after a mutation, so the render
// that follows this Update never shows pre-mutation state.
func (a *App) refresh() {
	a.now = time.Now()
	a.snap = a.state.Tick(a.now)
	settings := a.state.Settings()
	a.styles = NewStyles(settings.Theme, settings.DarkMode)
	if count := a.state.FeedCount(); a.cursor >= count {
		a.cursor = count - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) setFlash(msg string) {
	a.flash = msg
	a.flashErr = false
}

func (a *App) setError(msg string) {
	a.flash = msg
	a.flashErr = true
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Pending confirmations swallow the next key.
	if a.pendingDelete != "" {
		id := a.pendingDelete
		a.pendingDelete = ""
		if key == "y" {
			if err := a.state.DeleteFeed(id); err != nil {
				a.setError("delete failed: " + err.Error())
			} else {
				a.setFlash("Feed deleted")
			}
			a.refresh()
		} else {
			a.setFlash("Delete cancelled")
		}
		return a, nil
	}
	if a.confirmClear {
		a.confirmClear = false
		if key == "y" {
			a.state.ClearFeeds()
			a.refresh()
			a.setFlash("History cleared")
		} else {
			a.setFlash("Clear cancelled")
		}
		return a, nil
	}

	switch key {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "tab":
		a.view = (a.view + 1) % viewCount
		a.flash = ""
		return a, nil

	case "1", "2", "3", "4":
		a.view = view(int(key[0] - '1'))
		a.flash = ""
		return a, nil

	case " ":
		a.state.StartFeed(time.Now())
		a.encourage = encouragements[rand.Intn(len(encouragements))]
		a.refresh()
		a.flash = ""
		return a, nil

	case "c":
		a.state.SetViewMode(timer.Countdown)
		a.refresh()
		return a, nil

	case "w":
		a.state.SetViewMode(timer.Stopwatch)
		a.refresh()
		return a, nil

	case "x":
		if err := a.state.Export(a.exportPath); err != nil {
			a.setError("export failed: " + err.Error())
		} else {
			a.setFlash("Exported to " + a.exportPath)
		}
		return a, nil
	}

	switch a.view {
	case viewHome, viewLog:
		return a.handleLogKey(key)
	case viewSettings:
		return a.handleSettingsKey(key)
	}
	return a, nil
}

func (a App) handleLogKey(key string) (tea.Model, tea.Cmd) {
	count := a.state.FeedCount()

	switch key {
	case "j", "down":
		if a.cursor < count-1 {
			a.cursor++
		}
	case "k", "up":
		if a.cursor > 0 {
			a.cursor--
		}
	case "g", "home":
		a.cursor = 0
	case "G", "end":
		if count > 0 {
			a.cursor = count - 1
		}
	case "e", "enter":
		if rec, ok := a.selectedRecord(); ok {
			a.view = viewLog
			a.form = newEditForm(rec)
		}
	case "d":
		if rec, ok := a.selectedRecord(); ok {
			a.pendingDelete = rec.ID
			a.setFlash("Delete this feed? y to confirm")
		}
	case "C":
		if count > 0 {
			a.confirmClear = true
			a.setFlash("Delete ALL history? y to confirm")
		}
	}
	return a, nil
}

func (a App) handleSettingsKey(key string) (tea.Model, tea.Cmd) {
	settings := a.state.Settings()

	switch key {
	case "+", "=":
		a.state.SetInterval(settings.IntervalHours + 0.5)
		a.refresh()
	case "-":
		if settings.IntervalHours > 0.5 {
			a.state.SetInterval(settings.IntervalHours - 0.5)
			a.refresh()
		}
	case "t":
		for i, t := range config.Themes {
			if t == settings.Theme {
				a.state.SetTheme(config.Themes[(i+1)%len(config.Themes)])
				break
			}
		}
		a.refresh()
	case "b":
		a.state.SetDarkMode(!settings.DarkMode)
		a.refresh()
	case "C":
		if a.state.FeedCount() > 0 {
			a.confirmClear = true
			a.setFlash("Delete ALL history? y to confirm")
		}
	}
	return a, nil
}

func (a App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.form = nil
		return a, nil

	case "enter":
		patch, errMsg := a.form.patch()
		if errMsg != "" {
			a.form.errMsg = errMsg
			return a, nil
		}
		if err := a.state.EditFeed(a.form.id, patch); err != nil {
			switch {
			case errors.Is(err, feed.ErrInvalidRange):
				a.form.errMsg = "end precedes start"
			case errors.Is(err, feed.ErrNotFound):
				a.form = nil
				a.setError("Record no longer exists")
			default:
				a.form.errMsg = err.Error()
			}
			return a, nil
		}
		a.form = nil
		a.refresh()
		a.setFlash("Saved")
		return a, nil
	}

	cmd := a.form.Update(msg)
	return a, cmd
}

func (a App) selectedRecord() (feed.Record, bool) {
	records := a.state.Records()
	if a.cursor < 0 || a.cursor >= len(records) {
		return feed.Record{}, false
	}
	return records[a.cursor], true
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var b strings.Builder

	// Ring the terminal bell on the tick where the reminder fired.
	if a.snap.Reminder {
		b.WriteString("\a")
	}

	b.WriteString(a.renderHeader() + "\n\n")

	if a.form != nil {
		b.WriteString(a.form.View(a.styles))
	} else {
		switch a.view {
		case viewHome:
			b.WriteString(a.renderHome())
		case viewLog:
			b.WriteString(a.renderLog())
		case viewStats:
			b.WriteString(a.renderStats())
		case viewSettings:
			b.WriteString(a.renderSettings())
		}
	}

	b.WriteString("\n\n" + a.renderFooter())
	return b.String()
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if view(i) == a.view {
			tabs = append(tabs, a.styles.Selected.Render(name))
		} else {
			tabs = append(tabs, a.styles.Muted.Render(name))
		}
	}
	clock := a.styles.Clock.Render(a.now.Local().Format("15:04:05"))
	return a.styles.Title.Render("Nurture") + " " + strings.Join(tabs, " ") + "  " + clock
}

func (a App) renderHome() string {
	st := a.snap.Timer
	var lines []string

	var display, sub string
	displayStyle := a.styles.Display
	switch {
	case !st.HasData:
		display = "--:--"
		sub = "No feeds recorded yet"
	case st.Mode == timer.Stopwatch:
		display = timer.FormatDuration(st.Elapsed)
		sub = "Last feed: " + st.Reference.Local().Format("15:04")
	case st.Overdue:
		display = "+" + timer.FormatDuration(st.OverdueFor)
		displayStyle = a.styles.Overdue
		sub = "Feed overdue"
	default:
		display = timer.FormatDuration(st.Remaining)
		sub = "Due at " + st.Due.Local().Format("15:04")
	}

	mode := "countdown"
	if st.Mode == timer.Stopwatch {
		mode = "stopwatch"
	}

	lines = append(lines, displayStyle.Render(display)+" "+a.styles.Muted.Render(mode))
	lines = append(lines, a.styles.Sub.Render(sub))

	if st.Overdue {
		lines = append(lines, a.styles.Banner.Render("Time to feed!"))
	}
	if a.encourage != "" {
		lines = append(lines, a.styles.Encourage.Render(a.encourage))
	}

	records := a.state.Records()
	if len(records) > 0 {
		lines = append(lines, "")
		lines = append(lines, a.styles.Title.Render("Recent"))
		limit := 3
		if len(records) < limit {
			limit = len(records)
		}
		for i := 0; i < limit; i++ {
			selected := a.view == viewHome && i == a.cursor
			lines = append(lines, a.renderRecord(records[i], selected))
		}
	}

	return strings.Join(lines, "\n")
}

func (a App) renderLog() string {
	records := a.state.Records()
	if len(records) == 0 {
		return a.styles.Muted.Render("No feeds recorded yet. Press space to start one.")
	}

	var lines []string
	for i, rec := range records {
		lines = append(lines, a.renderRecord(rec, i == a.cursor))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderRecord(rec feed.Record, selected bool) string {
	info := string(rec.Kind)
	if rec.Kind.HasAmount() && rec.Amount > 0 {
		info += fmt.Sprintf(" · %.0fml", rec.Amount)
	}
	if rec.Brand != "" {
		info += " · " + rec.Brand
	}
	if d, ok := rec.Duration(); ok {
		info += " · took " + timer.FormatDuration(d)
	}
	if rec.Notes != "" {
		info += " · ✎"
	}

	when := rec.Start.Local().Format("Jan 02 15:04")
	line := fmt.Sprintf("%s  %s", a.styles.Badge.Render(when), info)
	if selected {
		return a.styles.Selected.Render("▶") + line
	}
	return a.styles.Normal.Render(" ") + line
}

func (a App) renderStats() string {
	var lines []string
	lines = append(lines, a.styles.Title.Render("Last 24 hours"))
	lines = append(lines, a.styles.Normal.Render(fmt.Sprintf("%d feeds", a.snap.Count24h)))
	lines = append(lines, "")
	lines = append(lines, a.styles.Title.Render("Average gap"))
	if a.snap.HasAvg {
		lines = append(lines, a.styles.Normal.Render(fmt.Sprintf("%.1fh between feeds", a.snap.AvgGap.Hours())))
	} else {
		lines = append(lines, a.styles.Muted.Render("Need at least two feeds"))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderSettings() string {
	settings := a.state.Settings()

	dark := "off"
	if settings.DarkMode {
		dark = "on"
	}

	var lines []string
	lines = append(lines, a.styles.Title.Render("Settings"))
	lines = append(lines, a.styles.Normal.Render(fmt.Sprintf("Reminder interval  %.1fh   (+/- adjusts)", settings.IntervalHours)))
	lines = append(lines, a.styles.Normal.Render(fmt.Sprintf("Theme              %s   (t cycles)", settings.Theme)))
	lines = append(lines, a.styles.Normal.Render(fmt.Sprintf("Dark mode          %s   (b toggles)", dark)))
	lines = append(lines, a.styles.Normal.Render(fmt.Sprintf("Timer view         %s   (c/w switches)", settings.ViewMode)))
	lines = append(lines, "")
	lines = append(lines, a.styles.Muted.Render("C clears all history"))
	return strings.Join(lines, "\n")
}

func (a App) renderFooter() string {
	var lines []string

	if !a.state.Durable() {
		lines = append(lines, a.styles.Warning.Render("⚠ saving failed — changes may not survive restart"))
	}
	if a.flash != "" {
		if a.flashErr {
			lines = append(lines, a.styles.Error.Render(a.flash))
		} else {
			lines = append(lines, a.styles.Sub.Render(a.flash))
		}
	}

	hints := []string{"space start", "tab views", "c/w timer mode", "x export", "q quit"}
	if a.view == viewLog {
		hints = []string{"j/k move", "e edit", "d delete", "space start", "x export", "q quit"}
	}
	var parts []string
	for _, h := range hints {
		k, rest, _ := strings.Cut(h, " ")
		parts = append(parts, a.styles.StatusKey.Render(k)+" "+rest)
	}
	lines = append(lines, a.styles.StatusBar.Width(max(a.width, 0)).Render(strings.Join(parts, "  ")))

	return strings.Join(lines, "\n")
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
