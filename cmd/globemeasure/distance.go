package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/globemeasure/measure/internal/geo"
	"github.com/globemeasure/measure/internal/measure"
	"github.com/globemeasure/measure/pkg/core"
)

func newDistanceCmd(a *app) *cobra.Command {
	var (
		surface bool
		labels  bool
	)

	cmd := &cobra.Command{
		Use:   "distance <lon,lat[,h]> <lon,lat[,h]> [more points...]",
		Short: "Measure the length of a path",
		Long: `Measure the length of a path through two or more points.

By default the ellipsoidal geodesic length is reported. With --surface the
path is sampled against the configured terrain.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			points := make([]core.GeodeticPoint, len(args))
			for i, arg := range args {
				p, err := geo.GeodeticFromString(arg)
				if err != nil {
					return fmt.Errorf("point %d %q: %w", i+1, arg, err)
				}
				points[i] = p
			}

			v, err := a.newViewer(points)
			if err != nil {
				return err
			}
			opts, err := a.measureOptions()
			if err != nil {
				return err
			}

			var dm *measure.DistanceMeasure
			if surface {
				dm, err = measure.NewDistanceSurfaceMeasure(v, opts...)
			} else {
				dm, err = measure.NewDistanceMeasure(v, opts...)
			}
			if err != nil {
				return err
			}

			res, err := draw(v, dm.Measure, points)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s: %s (%.3f m)\n", dm.Strategy().Name(), res.DisplayText, res.Value)
			if labels {
				printLabels(a.out, v)
			}
			dm.Destroy()
			return nil
		},
	}

	cmd.Flags().BoolVar(&surface, "surface", false, "follow the terrain surface")
	cmd.Flags().BoolVar(&labels, "labels", false, "print the placed labels")
	return cmd
}
