package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/swipectl/swipectl/actions"
	"github.com/swipectl/swipectl/config"
	"github.com/swipectl/swipectl/daemon"
	"github.com/swipectl/swipectl/device"
	"github.com/swipectl/swipectl/dispatcher"
	"github.com/swipectl/swipectl/events"
	"github.com/swipectl/swipectl/ipc"
	"github.com/swipectl/swipectl/server"
	"github.com/swipectl/swipectl/utils"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start listening for touchpad swipes",
	Long: `Resolves the configuration, opens the touchpad and dispatches swipe
gestures to their configured actions until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runAsDaemon && !daemon.IsChild() {
			_, err := daemon.Daemonize()
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}

			fmt.Printf("swipectl daemon spawned\n")
			return nil
		}

		settings := resolveSettings(cmd)
		utils.SetVerbose(verbose || settings.Verbose)

		var source *device.EvdevSource
		var err error
		if settings.Device != "" {
			source, err = device.Open(settings.Device)
		} else {
			source, err = device.Discover()
		}
		if err != nil {
			return err
		}
		defer source.Close()

		manager := ipc.NewManager()
		defer manager.Close()

		registry := actions.NewRegistry(settings.Actions, settings.EnabledActionKinds, manager)
		d := dispatcher.New(source, registry, settings.Threshold, settings.InvertX, settings.InvertY)

		if listenAddr == "" {
			return d.Run()
		}

		// run the gesture loop and the control server side by side; whichever
		// stops first takes the process down with it
		srv := server.New(d, settings)
		errs := make(chan error, 2)
		go func() { errs <- d.Run() }()
		go func() { errs <- srv.Start(listenAddr, enableCORS) }()
		return <-errs
	},
}

// resolveSettings layers the start command's flags over the settings loaded
// from the configuration files. Only flags the user actually set override
// file values.
func resolveSettings(cmd *cobra.Command) *config.Settings {
	settings := config.Resolve(configFile)

	flags := cmd.Flags()
	if flags.Changed("device") {
		settings.Device = devicePath
	}
	if flags.Changed("threshold") {
		settings.Threshold = threshold
	}
	if flags.Changed("invert-x") {
		settings.InvertX = invertX
	}
	if flags.Changed("invert-y") {
		settings.InvertY = invertY
	}
	if flags.Changed("enabled-action-kinds") {
		settings.EnabledActionKinds = enabledKinds
	}

	for name, values := range actionBindings {
		if !flags.Changed(name) {
			continue
		}

		specs := make([]actions.Spec, 0, len(*values))
		for _, raw := range *values {
			spec, err := actions.ParseSpec(raw)
			if err != nil {
				utils.Warn("invalid action %q for %s: %v, skipping", raw, name, err)
				continue
			}
			specs = append(specs, spec)
		}
		settings.Actions[name] = specs
	}

	settings.Prune()
	return settings
}

func init() {
	rootCmd.AddCommand(startCmd)

	// start command flags
	startCmd.Flags().StringVarP(&configFile, "config-file", "c", "", "configuration file to use instead of the default search path")
	startCmd.Flags().StringVar(&devicePath, "device", "", "touchpad device node (e.g. /dev/input/event5, default: autodiscover)")
	startCmd.Flags().Float64VarP(&threshold, "threshold", "t", 0, "minimum swipe displacement in mm")
	startCmd.Flags().BoolVar(&invertX, "invert-x", false, "flip the horizontal axis before classifying")
	startCmd.Flags().BoolVar(&invertY, "invert-y", false, "flip the vertical axis before classifying")
	startCmd.Flags().StringSliceVarP(&enabledKinds, "enabled-action-kinds", "e", nil, "action kinds allowed to run (command, ipc)")
	startCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "address for the control server (e.g. 'localhost:12000', default: disabled)")
	startCmd.Flags().BoolVar(&enableCORS, "cors", false, "enable CORS support on the control server")
	startCmd.Flags().BoolVarP(&runAsDaemon, "daemon", "d", false, "run in the background")

	// one repeatable binding flag per action event, e.g.
	// --three-finger-swipe-up "command:notify-send up"
	actionBindings = make(map[string]*[]string)
	for _, event := range events.AllActionEvents() {
		name := event.String()
		actionBindings[name] = startCmd.Flags().StringArray(name, nil, fmt.Sprintf("actions bound to a %s gesture", name))
	}
}
