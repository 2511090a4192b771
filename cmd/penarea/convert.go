package main

import (
	"github.com/spf13/cobra"

	"github.com/penarea/penarea/pkg/area"
	"github.com/penarea/penarea/pkg/config"
)

func NewConvertCommand() *cobra.Command {
	var profiles profileFlags

	cmd := &cobra.Command{
		Use:     "convert <minX> <minY> <maxX> <maxY>",
		Short:   "Convert a pixel bounding box to tablet millimeters",
		GroupID: gCalibration,
		Long: `Convert a pixel bounding box to tablet millimeters.

Use this to redo the conversion of an earlier run for a different screen
or tablet without sampling again.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := parseBox(args)
			if err != nil {
				return err
			}

			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}
			screen, tablet, err := profiles.resolve(cmd, conf)
			if err != nil {
				return err
			}

			res, err := area.Convert(box, screen, tablet)
			if err != nil {
				return err
			}

			printResult(cmd.OutOrStdout(), &res)
			return nil
		},
	}

	profiles.register(cmd)

	return cmd
}

func parseBox(args []string) (area.BoundingBox, error) {
	var v [4]int
	names := [4]string{"minX", "minY", "maxX", "maxY"}
	for i := range v {
		n, err := parseIntArg(args[i], names[i])
		if err != nil {
			return area.BoundingBox{}, err
		}
		v[i] = n
	}

	box := area.BoundingBox{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}
	if box.MinX > box.MaxX || box.MinY > box.MaxY {
		return box, area.NewInvalidInputError("bounding box", box.String(), "min must not exceed max")
	}
	return box, nil
}
