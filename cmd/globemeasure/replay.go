package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/globemeasure/measure/internal/dispatcher"
	"github.com/globemeasure/measure/internal/geo"
	"github.com/globemeasure/measure/internal/measure"
	"github.com/globemeasure/measure/internal/scene"
	"github.com/globemeasure/measure/internal/worker"
	"github.com/globemeasure/measure/pkg/core"
)

func newReplayCmd(a *app) *cobra.Command {
	var labels bool

	cmd := &cobra.Command{
		Use:   "replay <script>",
		Short: "Replay a scripted drawing session",
		Long: `Replay a drawing script against all four measurement tools.

Each line is one command:

  start <distance|surface-distance|area|surface-area>
  add <lon,lat[,h]>
  move <index> <lon,lat[,h]>
  finish
  result
  end
  destroy

Use - to read the script from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			events, err := worker.ParseScript(bytes.NewReader(data))
			if err != nil {
				return err
			}

			v, err := a.newViewer(scriptPoints(events))
			if err != nil {
				return err
			}
			measures, err := a.newMeasures(v)
			if err != nil {
				return err
			}

			d, err := dispatcher.New(a.console)
			if err != nil {
				return err
			}
			manager := worker.NewManager(worker.Dependencies{
				Drawer:   v.ScriptDrawer(),
				Measures: measures,
				Logger:   a.console,
			})
			manager.RegisterHandlers(d)

			a.active = func() (string, string) {
				ms, name := manager.Active()
				if ms == nil {
					return "", ""
				}
				return name, ms.State().String()
			}
			defer func() { a.active = nil }()

			results, replayErr := manager.Replay(d, events)
			for i, res := range results {
				fmt.Fprintf(a.out, "%3d %-18s %s\n", i+1, events[i].Command, describe(res))
			}
			if labels {
				printLabels(a.out, v)
			}
			for _, ms := range measures {
				if !ms.Destroyed() {
					ms.Destroy()
				}
			}
			return replayErr
		},
	}

	cmd.Flags().BoolVar(&labels, "labels", false, "print the labels left on the scene")
	return cmd
}

// newMeasures creates one measurement per strategy, all sharing v.
func (a *app) newMeasures(v *scene.Viewer) (map[string]worker.Measurement, error) {
	opts, err := a.measureOptions()
	if err != nil {
		return nil, err
	}

	dist, err := measure.NewDistanceMeasure(v, opts...)
	if err != nil {
		return nil, err
	}
	surfDist, err := measure.NewDistanceSurfaceMeasure(v, opts...)
	if err != nil {
		return nil, err
	}
	area, err := measure.NewAreaMeasure(v, opts...)
	if err != nil {
		return nil, err
	}
	surfArea, err := measure.NewAreaSurfaceMeasure(v, opts...)
	if err != nil {
		return nil, err
	}

	out := make(map[string]worker.Measurement, 4)
	for _, m := range []*measure.Measure{dist.Measure, surfDist.Measure, area.Measure, surfArea.Measure} {
		out[m.Strategy().Name()] = m
	}
	return out, nil
}

// scriptPoints collects every vertex the script draws so the camera can
// frame them all.
func scriptPoints(events []dispatcher.Event) []core.GeodeticPoint {
	var points []core.GeodeticPoint
	for _, e := range events {
		if (e.Command != worker.CmdAdd && e.Command != worker.CmdMove) || len(e.Args) == 0 {
			continue
		}
		if p, err := geo.GeodeticFromString(e.Args[len(e.Args)-1]); err == nil {
			points = append(points, p)
		}
	}
	return points
}

func describe(res any) string {
	switch r := res.(type) {
	case core.MeasurementResult:
		if r.DisplayText == "" {
			return fmt.Sprintf("%s: -", r.Quantity)
		}
		return fmt.Sprintf("%s: %s", r.Quantity, r.DisplayText)
	case nil:
		return ""
	default:
		return fmt.Sprint(r)
	}
}
