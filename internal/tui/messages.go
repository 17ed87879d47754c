package tui

// Async message types for Bubble Tea commands.

// dispatchMsg carries work from other goroutines, such as driver ticks,
// onto the Update loop, which owns the session state.
type dispatchMsg func()

type statusMsg string
