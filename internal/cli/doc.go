// Package cli implements the usagedash command-line interface.
//
// The root command runs the live dashboard. The remaining commands are
// one-shot views and actions against the same tracker API:
//
//	usagedash [dashboard]        - live terminal dashboard
//	usagedash status [--json]    - current session snapshot
//	usagedash start | stop       - toggle monitoring
//	usagedash autostart [on|off] - show or change autostart
//	usagedash apps               - app usage table
//	usagedash week               - weekly comparison, trend and summary
//	usagedash export             - render charts to PNG
//	usagedash init               - write a config file
//
// Global flags (--config, --server, --no-color, --verbose) live on the root
// command. Every command builds its environment through loadApp, which
// resolves config, the logger and the API client in one place.
package cli
