package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgQueryDone MsgKind = iota
)

type queryResult struct {
	query string
	body  string
	err   error
}

// queryDoneMsg is the constructor for [MsgQueryDone]
func queryDoneMsg(query, body string, err error) Msg {
	return Msg{kind: MsgQueryDone, data: queryResult{query: query, body: body, err: err}}
}
