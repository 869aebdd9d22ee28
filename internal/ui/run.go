package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"jcodemodel/internal/buildpipeline"
)

// Run shows the progress of a run until events is closed. work starts the
// run with a sink feeding the view and must return once the run is over.
func Run(out io.Writer, title string, work func(sink buildpipeline.ProgressSink) error) error {
	events := make(chan buildpipeline.Event, 256)
	errCh := make(chan error, 1)
	go func() {
		err := work(buildpipeline.ChannelSink{Ch: events})
		close(events)
		errCh <- err
	}()

	program := tea.NewProgram(NewProgressModel(title, nil, events), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// drain what work still sends
		for range events {
		}
	}
	err := <-errCh
	if uiErr != nil {
		return uiErr
	}
	return err
}
