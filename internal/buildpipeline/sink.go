package buildpipeline

import "time"

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// FuncSink adapts a function to ProgressSink.
type FuncSink func(Event)

func (fn FuncSink) OnEvent(evt Event) { fn(evt) }

func emitQueued(sink ProgressSink, files []string) {
	emitStage(sink, files, StageValidate, StatusQueued, nil, 0)
}

func emitStage(sink ProgressSink, files []string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	if len(files) == 0 {
		sink.OnEvent(Event{Stage: stage, Status: status, Err: err, Elapsed: elapsed})
		return
	}
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
	}
}
