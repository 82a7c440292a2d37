// Package ui contains the Bubble Tea program that browses and searches the
// image gallery. The Model type focuses on message orchestration, while
// dedicated helpers own navigation, search, upload and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, window sizes, collaborator completions).
//   - Key presses go to the focused input first: the query prompt, the upload
//     prompt, or the grid key map (internal/ui/navigation.go).
//
// State ownership:
//   - The catalog lives in internal/state.CatalogStore. Loads may overlap; the
//     last one to settle wins and a failure keeps the previous collection.
//   - internal/ui/state.SearchSession holds the browse/search switch. Each
//     submit issues a token and a response is applied only while its token is
//     still the latest, so a cleared or superseded search never comes back.
//   - internal/ui/state.Pager pages the browse list. Search results are always
//     rendered in full.
//   - internal/ui/state.UploadJob tracks the single outstanding upload; a
//     successful upload triggers exactly one catalog load.
//
// Backend interactions:
//   - Collaborator calls are wrapped into tea.Cmd values by the command bus
//     (internal/ui/command) and report back as typed messages.
//   - An optional backend.Watcher re-fetches the catalog in the background;
//     its snapshots are applied through the dispatcher without touching the
//     loading indicator or the search session.
package ui
