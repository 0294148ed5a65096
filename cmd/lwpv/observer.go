package main

import (
	log "github.com/sirupsen/logrus"

	photoviewer "github.com/TommyGymer/LW-Photo-Viewer"
)

// logObserver reports every pipeline stage at debug level and failures as
// warnings.
func logObserver(logger *log.Logger) photoviewer.Observer {
	return func(ev photoviewer.Event) {
		fields := log.Fields{
			"stage":   ev.Stage,
			"path":    ev.Path,
			"ext":     ev.Ext,
			"elapsed": ev.Elapsed,
		}
		if ev.Width > 0 || ev.Height > 0 {
			fields["size"] = [2]int{ev.Width, ev.Height}
		}
		if ev.Layout != 0 {
			fields["layout"] = ev.Layout.String()
		}

		entry := logger.WithFields(fields)
		if ev.Err != nil {
			// The total event repeats the failing stage's error.
			if ev.Stage != photoviewer.StageTotal {
				entry.WithError(ev.Err).Warn("stage failed")
			}
			return
		}
		entry.Debug("stage done")
	}
}
