package main

import (
	"github.com/spf13/cobra"

	"github.com/penarea/penarea/pkg/config"
	"github.com/penarea/penarea/pkg/preset"
)

func NewPresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "presets",
		Short:   "List known tablet sizes",
		GroupID: gConfig,
		Long: `List known tablet sizes.

The selected tablet is marked. Use 'penarea config tablet <name>' to select one, or
'penarea config tablet Custom <width> <height>' for a tablet that is not listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.NewFile(configPath)
			if err != nil {
				return err
			}
			selected := conf.Tablet()

			for _, p := range preset.Profiles() {
				cmd.Printf("  %s %-18s %g x %g mm\n", bool2Text(p.Name == selected), p.Name, p.WidthMm, p.HeightMm)
			}

			custom := "enter width and height"
			if preset.IsCustom(selected) {
				if w, h, ok := conf.CustomTabletSize(); ok {
					custom = bold("%g x %g mm", w, h)
				}
			}
			cmd.Printf("  %s %-18s %s\n", bool2Text(preset.IsCustom(selected)), preset.Custom, custom)
			return nil
		},
	}
}
