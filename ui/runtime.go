package ui

import (
	"ddbin-editor/ddbin"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

func Start(title string, file *ddbin.File) error {
	browser := CreateBrowser(title, file)
	if err := tea.NewProgram(browser).Start(); err != nil {
		err := errors.Wrap(err, "ui.Start error")
		return err
	}
	return nil
}
