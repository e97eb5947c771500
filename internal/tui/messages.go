package tui

import "time"

type photoStateMsg struct {
	err error
}

type contentStateMsg struct {
	err error
}

type syncDoneMsg struct {
	err error
}

type copiedMsg struct {
	err error
}

type clockTickMsg time.Time

type clearStatusMsg struct{}
