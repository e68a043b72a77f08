package worker

import (
	"fmt"
	"strconv"

	"github.com/globemeasure/measure/internal/dispatcher"
	"github.com/globemeasure/measure/internal/geo"
	"github.com/globemeasure/measure/pkg/core"
)

// Replay commands.
const (
	CmdStart   = ":MEASURE:START:"
	CmdEnd     = ":MEASURE:END:"
	CmdDestroy = ":MEASURE:DESTROY:"
	CmdResult  = ":MEASURE:RESULT:"
	CmdAdd     = ":DRAW:ADD:"
	CmdMove    = ":DRAW:MOVE:"
	CmdFinish  = ":DRAW:FINISH:"
)

// RegisterHandlers registers all replay handlers with the dispatcher.
func (m *Manager) RegisterHandlers(d *dispatcher.Dispatcher) {
	// Lifecycle
	d.Register(CmdStart, m.handleStart, dispatcher.Logged())
	d.Register(CmdEnd, m.handleEnd, dispatcher.Logged())
	d.Register(CmdDestroy, m.handleDestroy, dispatcher.Logged())
	d.Register(CmdResult, m.handleResult)

	// Drawing input
	d.Register(CmdAdd, m.handleAdd, dispatcher.Logged())
	d.Register(CmdMove, m.handleMove, dispatcher.Logged())
	d.Register(CmdFinish, m.handleFinish, dispatcher.Logged())
}

func (m *Manager) handleStart(e dispatcher.Event) (any, error) {
	if len(e.Args) != 1 {
		return nil, fmt.Errorf("expected 1 argument, got %d", len(e.Args))
	}
	ms, ok := m.deps.Measures[e.Args[0]]
	if !ok {
		return nil, fmt.Errorf("unknown measurement: %s", e.Args[0])
	}
	// measurements share the drawing tool, only one may hold it
	if prev, name := m.Active(); prev != nil && name != e.Args[0] && !prev.Destroyed() {
		prev.End()
		m.deps.Logger.Debug("ended measurement", "name", name, "next", e.Args[0])
	}
	m.active = e.Args[0]
	ms.Start()
	return ms.State().String(), nil
}

func (m *Manager) handleEnd(e dispatcher.Event) (any, error) {
	ms, _ := m.Active()
	if ms == nil {
		return nil, ErrNoActiveMeasurement
	}
	ms.End()
	return ms.State().String(), nil
}

func (m *Manager) handleDestroy(e dispatcher.Event) (any, error) {
	ms, _ := m.Active()
	if ms == nil {
		return nil, ErrNoActiveMeasurement
	}
	ms.Destroy()
	return ms.State().String(), nil
}

func (m *Manager) handleResult(e dispatcher.Event) (any, error) {
	ms, _ := m.Active()
	if ms == nil {
		return nil, ErrNoActiveMeasurement
	}
	return ms.Result(), nil
}

func (m *Manager) handleAdd(e dispatcher.Event) (any, error) {
	if len(e.Args) != 1 {
		return nil, fmt.Errorf("expected 1 argument, got %d", len(e.Args))
	}
	p, err := parsePoint(e.Args[0])
	if err != nil {
		return nil, err
	}
	if err := m.deps.Drawer.AddPoint(p); err != nil {
		return nil, err
	}
	return nil, nil
}

func (m *Manager) handleMove(e dispatcher.Event) (any, error) {
	if len(e.Args) != 2 {
		return nil, fmt.Errorf("expected 2 arguments, got %d", len(e.Args))
	}
	i, err := strconv.Atoi(e.Args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid point index %q: %w", e.Args[0], err)
	}
	p, err := parsePoint(e.Args[1])
	if err != nil {
		return nil, err
	}
	if err := m.deps.Drawer.MovePoint(i, p); err != nil {
		return nil, err
	}
	return nil, nil
}

func (m *Manager) handleFinish(e dispatcher.Event) (any, error) {
	if err := m.deps.Drawer.Finish(); err != nil {
		return nil, err
	}
	return nil, nil
}

func parsePoint(s string) (core.WorldPoint, error) {
	g, err := geo.GeodeticFromString(s)
	if err != nil {
		return core.WorldPoint{}, err
	}
	return geo.ToWorld(g), nil
}
