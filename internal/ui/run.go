package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"novel/internal/driver"
)

// Run shows progress for files while work runs in the background. work
// receives a sink to report through; the UI exits once work returns.
func Run[T any](out io.Writer, title string, files []string, work func(driver.ProgressSink) (T, error)) (T, error) {
	type outcome struct {
		res T
		err error
	}
	events := make(chan driver.Event, 256)
	done := make(chan outcome, 1)

	go func() {
		res, err := work(driver.ChannelSink(events))
		done <- outcome{res: res, err: err}
		close(events)
	}()

	program := tea.NewProgram(NewProgressModel(title, files, events), tea.WithOutput(out))
	_, uiErr := program.Run()
	// UI мог выйти раньше (Ctrl+C): дочитываем события, чтобы воркеры не застряли на отправке
	go func() {
		for range events {
		}
	}()
	o := <-done
	if uiErr != nil {
		return o.res, uiErr
	}
	return o.res, o.err
}
