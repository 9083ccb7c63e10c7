package tui

import "github.com/jask/newsscreen/internal/newsapi"

// fetchState is the screen's single source of truth for what to draw. Exactly
// one variant is active, so "loading with an error" cannot be expressed.
type fetchState interface {
	isFetchState()
}

// stateIdle is the state before the first fetch starts.
type stateIdle struct{}

// stateMissingKey is terminal: no fetch is ever attempted.
type stateMissingKey struct{}

type stateLoading struct{}

type stateFailed struct {
	message string
}

type stateReady struct {
	articles []newsapi.Article
}

func (stateIdle) isFetchState()       {}
func (stateMissingKey) isFetchState() {}
func (stateLoading) isFetchState()    {}
func (stateFailed) isFetchState()     {}
func (stateReady) isFetchState()      {}

// messages

// articlesMsg carries a successful fetch. seq identifies the request.
type articlesMsg struct {
	seq      uint64
	query    string
	articles []newsapi.Article
}

type fetchErrMsg struct {
	seq   uint64
	query string
	err   error
}
