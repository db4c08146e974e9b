package cli

var (
	verbose bool

	// for the start command
	configFile     string
	devicePath     string
	threshold      float64
	invertX        bool
	invertY        bool
	enabledKinds   []string
	listenAddr     string
	enableCORS     bool
	runAsDaemon    bool
	actionBindings map[string]*[]string

	// for the devices command
	showAllDevices bool

	// for server subcommands
	serverAddr string
)
