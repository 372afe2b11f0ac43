// Package dashboard implements the interactive usage dashboard.
//
// The dashboard is a Bubble Tea program that mirrors the tracker's web
// dashboard in the terminal. It shows a live clock, a status badge, the
// session stat cards, a productivity ring and four charts split across
// three tabs (overview, apps, stats), plus two remote settings toggles.
//
// # Timers
//
// The clock tick is armed in Init and re-arms itself forever. The status
// poll loop only runs while monitoring is on. StartPolling is guarded by
// State.Polling so the loop is never registered twice, and every poll
// tick carries the epoch it was armed under. StopPolling bumps the epoch,
// which turns any tick already in flight into a no-op.
//
// # Loads
//
// Each tab load is tagged with the tab's generation at issue time and
// runs under a cancellable context. Leaving or re-entering a tab cancels
// the old context and moves the generation on, so a late response for a
// previous visit is dropped instead of overwriting newer content.
//
// # Errors
//
// Failed fetches are logged and leave the view in its last good state.
// Only the monitoring and autostart toggles surface an error label.
//
// # Keyboard
//
//   - 1/2/3, tab, shift+tab: switch tabs
//   - p: cycle period (apps tab)
//   - r: reload status and the current tab
//   - space: start/stop monitoring
//   - a: toggle autostart
//   - up/down, pgup/pgdn: scroll
//   - ?: help
//   - q, ctrl+c: quit
package dashboard
