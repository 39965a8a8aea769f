package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/nurture/internal/feed"
)

// timeLayout is the edit form's instant format, in local time.
const timeLayout = "2006-01-02 15:04"

// Form fields, in focus order. The kind row is not a text input; it
// cycles with left/right.
const (
	fieldStart = iota
	fieldEnd
	fieldKind
	fieldAmount
	fieldBrand
	fieldNotes
	fieldCount
)

var fieldLabels = [fieldCount]string{"Start", "End", "Kind", "Amount (ml)", "Brand", "Notes"}

// editForm is the modal for editing one record. Validation failures
// (unparseable input, negative amount) are shown inline and never reach
// the core; core errors (NotFound, InvalidRange) are shown the same way
// for correction.
type editForm struct {
	id      string
	inputs  [fieldCount]textinput.Model // kind slot unused
	kindIdx int
	focus   int
	errMsg  string
}

func newEditForm(rec feed.Record) *editForm {
	f := &editForm{id: rec.ID}

	for i := range f.inputs {
		if i == fieldKind {
			continue
		}
		in := textinput.New()
		in.CharLimit = 120
		in.Width = 32
		f.inputs[i] = in
	}

	f.inputs[fieldStart].SetValue(rec.Start.Local().Format(timeLayout))
	if rec.End != nil {
		f.inputs[fieldEnd].SetValue(rec.End.Local().Format(timeLayout))
	}
	f.inputs[fieldEnd].Placeholder = "empty = none"
	if rec.Amount > 0 {
		f.inputs[fieldAmount].SetValue(strconv.FormatFloat(rec.Amount, 'f', -1, 64))
	}
	f.inputs[fieldBrand].SetValue(rec.Brand)
	f.inputs[fieldNotes].SetValue(rec.Notes)

	for i, k := range feed.Kinds {
		if k == rec.Kind {
			f.kindIdx = i
		}
	}

	f.inputs[fieldStart].Focus()
	return f
}

// next/prev move focus, managing text input focus state.
func (f *editForm) next() { f.setFocus((f.focus + 1) % fieldCount) }
func (f *editForm) prev() { f.setFocus((f.focus + fieldCount - 1) % fieldCount) }

func (f *editForm) setFocus(idx int) {
	if f.focus != fieldKind {
		f.inputs[f.focus].Blur()
	}
	f.focus = idx
	if idx != fieldKind {
		f.inputs[idx].Focus()
	}
}

// Update handles one key. It returns a command for the focused input.
func (f *editForm) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		f.next()
		return nil
	case "shift+tab", "up":
		f.prev()
		return nil
	}

	if f.focus == fieldKind {
		switch msg.String() {
		case "left", "h":
			f.kindIdx = (f.kindIdx + len(feed.Kinds) - 1) % len(feed.Kinds)
		case "right", "l", " ":
			f.kindIdx = (f.kindIdx + 1) % len(feed.Kinds)
		}
		return nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// patch builds the partial update from the form contents. Returns a
// human-readable error string for inline display when input is invalid.
func (f *editForm) patch() (feed.Patch, string) {
	var p feed.Patch

	start, err := time.ParseInLocation(timeLayout, strings.TrimSpace(f.inputs[fieldStart].Value()), time.Local)
	if err != nil {
		return p, "start must look like " + timeLayout
	}
	p.Start = &start

	if v := strings.TrimSpace(f.inputs[fieldEnd].Value()); v == "" {
		p.ClearEnd = true
	} else {
		end, err := time.ParseInLocation(timeLayout, v, time.Local)
		if err != nil {
			return p, "end must look like " + timeLayout
		}
		p.End = &end
	}

	kind := feed.Kinds[f.kindIdx]
	p.Kind = &kind

	amount := 0.0
	if v := strings.TrimSpace(f.inputs[fieldAmount].Value()); v != "" {
		amount, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return p, "amount must be a number"
		}
		if amount < 0 {
			return p, "amount must be non-negative"
		}
	}
	p.Amount = &amount

	brand := strings.TrimSpace(f.inputs[fieldBrand].Value())
	p.Brand = &brand
	notes := strings.TrimSpace(f.inputs[fieldNotes].Value())
	p.Notes = &notes

	return p, ""
}

// View renders the form.
func (f *editForm) View(st Styles) string {
	var b strings.Builder
	b.WriteString(st.Title.Render("Edit feed") + "\n\n")

	for i := 0; i < fieldCount; i++ {
		label := fieldLabels[i]
		if i == f.focus {
			label = "> " + label
		} else {
			label = "  " + label
		}

		var value string
		if i == fieldKind {
			var chips []string
			for j, k := range feed.Kinds {
				chip := string(k)
				if j == f.kindIdx {
					chip = st.Selected.Render(chip)
				} else {
					chip = st.Muted.Render(chip)
				}
				chips = append(chips, chip)
			}
			value = strings.Join(chips, " ")
		} else {
			value = f.inputs[i].View()
		}

		b.WriteString(fmt.Sprintf("%s %s\n", st.Normal.Render(fmt.Sprintf("%-14s", label)), value))
	}

	if f.errMsg != "" {
		b.WriteString("\n" + st.Error.Render(f.errMsg) + "\n")
	}
	b.WriteString("\n" + st.Muted.Render("enter save · esc cancel · tab next field · ←/→ change kind"))
	return b.String()
}
