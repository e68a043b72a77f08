// Package worker replays scripted drawing sessions against measurement
// tools through the dispatcher.
package worker

import (
	"errors"
	"fmt"

	"github.com/globemeasure/measure/internal/dispatcher"
	"github.com/globemeasure/measure/internal/measure"
	"github.com/globemeasure/measure/pkg/core"
)

// ErrNoActiveMeasurement is returned when a command needs a measurement
// but none has been started.
var ErrNoActiveMeasurement = errors.New("no active measurement")

// Measurement is the lifecycle surface of a measurement tool.
type Measurement interface {
	Start(opts ...measure.StartOption)
	End()
	Destroy()
	Destroyed() bool
	State() measure.State
	Result() core.MeasurementResult
}

// Drawer is a drawing tool that can be driven by commands.
type Drawer interface {
	AddPoint(core.WorldPoint) error
	MovePoint(int, core.WorldPoint) error
	Finish() error
}

// Dependencies holds all dependencies for the worker manager
type Dependencies struct {
	Drawer   Drawer
	Measures map[string]Measurement // by strategy name
	Logger   dispatcher.Logger
}

// Manager routes replayed commands to the drawing tool and the active
// measurement.
type Manager struct {
	deps   Dependencies
	active string
}

// NewManager creates a new worker manager
func NewManager(deps Dependencies) *Manager {
	return &Manager{deps: deps}
}

// Active returns the active measurement and its name.
func (m *Manager) Active() (Measurement, string) {
	if m.active == "" {
		return nil, ""
	}
	return m.deps.Measures[m.active], m.active
}

// Replay dispatches events in order and stops at the first failure.
func (m *Manager) Replay(d *dispatcher.Dispatcher, events []dispatcher.Event) ([]any, error) {
	results := make([]any, 0, len(events))
	for i, e := range events {
		res, err := d.Dispatch(e)
		if err != nil {
			return results, fmt.Errorf("event %d (%s): %w", i+1, e.Command, err)
		}
		results = append(results, res)
	}
	return results, nil
}
