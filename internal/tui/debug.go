package tui

import (
	"fmt"
	"os"
	"time"
)

// debugEvent appends one line per selection event to RYDSCHEME_TUI_DEBUG_LOG.
func (m appModel) debugEvent(event string, err error) {
	if m.debugLogPath == "" {
		return
	}
	f, ferr := os.OpenFile(m.debugLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if ferr != nil {
		return
	}
	defer f.Close()

	sc := m.session.Scheme()
	errText := ""
	if err != nil {
		errText = err.Error()
	}
	fmt.Fprintf(f, "%s session=%s event=%s state=%s anchors=%t exci=%d spon=%d err=%q\n",
		time.Now().UTC().Format(time.RFC3339Nano),
		m.session.ID(),
		event,
		m.session.State(),
		sc.HasAnchors(),
		len(sc.Excitation),
		len(sc.Spontaneous),
		errText,
	)
}
