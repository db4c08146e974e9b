package cli

import (
	"github.com/spf13/cobra"
	"github.com/swipectl/swipectl/device"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List input devices",
	Long:  `List the input device nodes under /dev/input and mark the ones usable as a swipe source.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := device.List()
		if err != nil {
			return err
		}

		if !showAllDevices {
			touchpads := infos[:0]
			for _, info := range infos {
				if info.Touchpad {
					touchpads = append(touchpads, info)
				}
			}
			infos = touchpads
		}

		printJson(infos)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)

	// devices command flags
	devicesCmd.Flags().BoolVar(&showAllDevices, "all", false, "show all input devices, not just touchpads")
}
