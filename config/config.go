// Package config resolves the application settings from defaults,
// configuration files, and command-line overrides, in that order.
//
// Configuration files are INI. The [swipe] section carries the gesture
// options; each action event has its own section named after the event,
// holding repeated "action" keys:
//
//	[swipe]
//	threshold = 20.0
//	invert-x = false
//	enabled-action-kinds = ipc,command
//
//	[three-finger-swipe-left]
//	action = ipc:workspace prev
//
//	[three-finger-swipe-right]
//	action = ipc:workspace next
//	action = command:notify-send "next workspace"
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/swipectl/swipectl/actions"
	"github.com/swipectl/swipectl/events"
	"github.com/swipectl/swipectl/utils"
	"gopkg.in/ini.v1"
)

const configFileName = "swipectl.ini"

// Settings is the fully resolved application configuration.
type Settings struct {
	// Verbose enables debug logging.
	Verbose bool
	// Device is the input device path; empty means autodiscover.
	Device string
	// Threshold is the minimum displacement magnitude for a swipe.
	Threshold float64
	// InvertX flips the horizontal axis before classification.
	InvertX bool
	// InvertY flips the vertical axis before classification.
	InvertY bool
	// EnabledActionKinds lists the action kinds allowed to run.
	EnabledActionKinds []string
	// Actions maps action event names to their configured action specs.
	Actions map[string][]actions.Spec
}

// Default returns the built-in settings: three-finger horizontal swipes
// switch workspaces over IPC, everything else is unbound.
func Default() *Settings {
	return &Settings{
		Threshold:          20.0,
		EnabledActionKinds: []string{actions.KindIpc},
		Actions: map[string][]actions.Spec{
			events.ThreeFingerSwipeLeft.String(): {
				{Kind: actions.KindIpc, Command: "workspace prev"},
			},
			events.ThreeFingerSwipeRight.String(): {
				{Kind: actions.KindIpc, Command: "workspace next"},
			},
		},
	}
}

// defaultFiles returns the config file search path, least specific first.
func defaultFiles() []string {
	files := []string{filepath.Join("/etc", configFileName)}

	if configDir, err := os.UserConfigDir(); err == nil {
		files = append(files, filepath.Join(configDir, "swipectl", configFileName))
	}

	return append(files, configFileName)
}

// Resolve loads settings from the default configuration files, or from an
// explicit file when configFile is non-empty. Files may be partial; later
// files override earlier ones. Unreadable or malformed files are logged and
// skipped rather than treated as fatal.
func Resolve(configFile string) *Settings {
	settings := Default()

	files := defaultFiles()
	if configFile != "" {
		files = []string{configFile}
	}

	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := settings.applyFile(file); err != nil {
			utils.Warn("unable to parse %s: %v, skipping", file, err)
		}
	}

	return settings
}

func (s *Settings) applyFile(path string) error {
	cfg, err := ini.LoadSources(ini.LoadOptions{AllowShadows: true}, path)
	if err != nil {
		return err
	}

	swipe := cfg.Section("swipe")
	if key, err := swipe.GetKey("verbose"); err == nil {
		if v, err := key.Bool(); err == nil {
			s.Verbose = v
		}
	}
	if key, err := swipe.GetKey("device"); err == nil {
		s.Device = key.String()
	}
	if key, err := swipe.GetKey("threshold"); err == nil {
		if v, err := key.Float64(); err == nil {
			s.Threshold = v
		}
	}
	if key, err := swipe.GetKey("invert-x"); err == nil {
		if v, err := key.Bool(); err == nil {
			s.InvertX = v
		}
	}
	if key, err := swipe.GetKey("invert-y"); err == nil {
		if v, err := key.Bool(); err == nil {
			s.InvertY = v
		}
	}
	if key, err := swipe.GetKey("enabled-action-kinds"); err == nil {
		s.EnabledActionKinds = splitList(key.String())
	}

	for _, event := range events.AllActionEvents() {
		section, err := cfg.GetSection(event.String())
		if err != nil {
			continue
		}

		key, err := section.GetKey("action")
		if err != nil {
			// an empty section unbinds the event
			s.Actions[event.String()] = nil
			continue
		}

		var specs []actions.Spec
		for _, raw := range key.ValueWithShadows() {
			spec, err := actions.ParseSpec(raw)
			if err != nil {
				utils.Warn("removing malformed action in %s: %v", event, err)
				continue
			}
			specs = append(specs, spec)
		}
		s.Actions[event.String()] = specs
	}

	return nil
}

// Prune drops action entries whose kind is not enabled, logging a warning
// per dropped entry. Malformed entries were already dropped at parse time.
func (s *Settings) Prune() {
	enabled := make(map[string]bool, len(s.EnabledActionKinds))
	for _, kind := range s.EnabledActionKinds {
		enabled[kind] = true
	}

	for name, specs := range s.Actions {
		kept := specs[:0]
		for _, spec := range specs {
			if !enabled[spec.Kind] {
				utils.Warn("removing disabled action in %s: %s", name, spec)
				continue
			}
			kept = append(kept, spec)
		}
		s.Actions[name] = kept
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
