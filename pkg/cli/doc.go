// Package cli provides the command-line interface for roster.
//
// The cli package implements the roster commands:
//   - students: Print one page of the All Students or Excellent Students view
//   - honor: Print one page of the Honor Candidates view
//   - add: Create a student (interactive form when no field flags are given)
//   - edit: Update a student by ID
//   - filters: Show or reset the saved filters and sorts of each view
//   - config: Display effective configuration and where each value came from
//   - tui: Start the interactive terminal client
//   - version: Show roster version
//
// Filter and sort flags on the list commands behave like the column menus of
// the TUI: they update the saved view state, so the next run (in either
// surface) starts from the same filters and sort.
package cli
