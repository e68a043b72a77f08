package worker

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/globemeasure/measure/internal/dispatcher"
)

var scriptCommands = map[string]string{
	"start":   CmdStart,
	"end":     CmdEnd,
	"destroy": CmdDestroy,
	"result":  CmdResult,
	"add":     CmdAdd,
	"move":    CmdMove,
	"finish":  CmdFinish,
}

// ParseScript reads one command per line:
//
//	start surface-area
//	add 7.0,46.0
//	move 0 7.001,46.0,12
//	finish
//	result
//	end
//
// Blank lines and lines starting with # are skipped.
func ParseScript(r io.Reader) ([]dispatcher.Event, error) {
	var events []dispatcher.Event
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		cmd, ok := scriptCommands[strings.ToLower(fields[0])]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown command %q", line, fields[0])
		}
		events = append(events, dispatcher.Event{
			Command:   cmd,
			Args:      fields[1:],
			Timestamp: time.Now(),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return events, nil
}
