// Package transition schedules timed visual swaps of displayed values.
//
// Components follow the bubbles conventions: they are values updated through
// methods returning (model, tea.Cmd), and every timer message carries the
// component id and a tag. Any change bumps the tag, so a timer scheduled for
// an older change is dropped when it fires.
package transition
