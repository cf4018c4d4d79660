// Package ui implements an interactive query browser using bubbletea's Elm architecture.
//
// The browser has three views:
//  1. [InputView] : Type an API path or absolute URL and run it
//  2. [HistoryView] : Pick a previous query to run again
//  3. [ResultView] : Scroll the pretty-printed response body
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Queries run as [tea.Cmd] functions so the UI never blocks on the network; responses come back through the cache like
// any other client call.
package ui
