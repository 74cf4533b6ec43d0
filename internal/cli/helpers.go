package cli

import "github.com/ahorify/ahorify/internal/daemon"

// userFlag selects the acting profile for all data commands.
var userFlag string

func init() {
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "Profile to act as (defaults to config)")
}

// openDaemon wires the full service stack against the configured data
// directory. Callers must Close it.
func openDaemon() (*daemon.Daemon, error) {
	return daemon.New(cliVersion)
}

// activeUser resolves the profile: --user flag beats config.
func activeUser(d *daemon.Daemon) string {
	if userFlag != "" {
		return userFlag
	}
	if d.Config.User.ID != "" {
		return d.Config.User.ID
	}
	return "default_user"
}
