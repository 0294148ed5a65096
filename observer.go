package photoviewer

import "time"

// Stage names a step of a Load call reported to an Observer.
type Stage string

const (
	StageRead    Stage = "read"
	StageDecode  Stage = "decode"
	StageConvert Stage = "convert"
	StageTotal   Stage = "total"
)

// Event describes one finished stage. Err is set when the stage failed, in
// which case no later stage is reported except StageTotal.
type Event struct {
	Stage   Stage
	Path    string
	Ext     string
	Layout  ChannelLayout
	Width   int
	Height  int
	Elapsed time.Duration
	Err     error
}

// Observer receives stage events synchronously on the goroutine running
// the decode.
type Observer func(Event)

func (o Observer) emit(ev Event) {
	if o != nil {
		o(ev)
	}
}
