package ui

import (
	"fmt"
	"strings"

	"ddbin-editor/ddbin"
	"ddbin-editor/ddbin/dobject"
	"ddbin-editor/ds"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
)

const (
	LevelLists   = "lists"
	LevelObjects = "objects"
	LevelFields  = "fields"
	pageSize     = 20
)

// Browser walks a decoded file: lists, then the objects of one list, then the fields of one
// object. It never modifies the file.
type Browser struct {
	title  string
	file   *ddbin.File
	level  string
	cursor int
	list   *dobject.ObjectList
	object *dobject.DataObject
	// cursors of the levels above the current one, restored when going back
	parents []int
}

func CreateBrowser(title string, file *ddbin.File) Browser {
	return Browser{
		title: title,
		file:  file,
		level: LevelLists,
	}
}

func (b Browser) Level() string {
	return b.level
}

func (b Browser) Cursor() int {
	return b.cursor
}

func (b Browser) Rows() []string {
	switch b.level {
	case LevelLists:
		return lo.Map(
			b.file.ListValues(),
			func(list *dobject.ObjectList, _ int) string {
				return fmt.Sprintf("%s (%s, %d objects)", list.Name, list.Type.Name, len(list.Objects))
			},
		)
	case LevelObjects:
		return b.list.Names()
	case LevelFields:
		return lo.Map(
			b.object.FieldList(),
			func(field *dobject.DataField, _ int) string {
				if !field.IsResolved() {
					return fmt.Sprintf("%s [%s] = <unresolved>", field.Name, field.VarType)
				}
				return fmt.Sprintf("%s [%s] = %s", field.Name, field.VarType, field.Text())
			},
		)
	}
	panic(ds.ErrUnreachableCode{Caller: "Browser.Rows", Value: b.level})
}

func (b Browser) breadcrumb() string {
	parts := []string{b.title}
	if b.list != nil {
		parts = append(parts, b.list.Name)
	}
	if b.object != nil {
		parts = append(parts, b.object.Name)
	}
	return strings.Join(parts, " > ")
}

func (b Browser) View() string {
	output := b.breadcrumb() + "\n\n"

	rows := b.Rows()
	if len(rows) == 0 {
		output += "  (empty)\n"
	}
	first := b.cursor - b.cursor%pageSize
	last := first + pageSize
	if last > len(rows) {
		last = len(rows)
	}
	for i := first; i < last; i++ {
		marker := "  "
		if i == b.cursor {
			marker = "> "
		}
		output += marker + rows[i] + "\n"
	}
	if len(rows) > pageSize {
		output += fmt.Sprintf("\n%d/%d\n", b.cursor+1, len(rows))
	}

	output += "\nj/k move, enter open, esc back, q quit\n"
	return output
}

func (b Browser) descend() Browser {
	switch b.level {
	case LevelLists:
		lists := b.file.ListValues()
		if b.cursor >= len(lists) {
			return b
		}
		b.list = lists[b.cursor]
		b.level = LevelObjects
	case LevelObjects:
		if b.cursor >= len(b.list.Objects) {
			return b
		}
		b.object = b.list.Objects[b.cursor]
		b.level = LevelFields
	default:
		return b
	}
	b.parents = append(ds.ShallowCopy(b.parents), b.cursor)
	b.cursor = 0
	return b
}

func (b Browser) ascend() Browser {
	switch b.level {
	case LevelObjects:
		b.list = nil
		b.level = LevelLists
	case LevelFields:
		b.object = nil
		b.level = LevelObjects
	default:
		return b
	}
	b.cursor, _ = lo.Last(b.parents)
	b.parents = b.parents[:len(b.parents)-1]
	return b
}

func (b Browser) move(delta int) Browser {
	rows := len(b.Rows())
	if rows == 0 {
		return b
	}
	b.cursor += delta
	if b.cursor < 0 {
		b.cursor = 0
	}
	if b.cursor >= rows {
		b.cursor = rows - 1
	}
	return b
}

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return b, tea.Quit
	case "up", "k":
		return b.move(-1), nil
	case "down", "j":
		return b.move(1), nil
	case "pgup":
		return b.move(-pageSize), nil
	case "pgdown":
		return b.move(pageSize), nil
	case "enter", "right", "l":
		return b.descend(), nil
	case "esc", "backspace", "left", "h":
		return b.ascend(), nil
	}
	return b, nil
}

func (b Browser) Init() tea.Cmd {
	return nil
}
