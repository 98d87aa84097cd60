// Where: internal/infra/ui/ui.go
// What: UserInterface used by use cases and commands.
// Why: Let use cases report progress without knowing where output goes.
package ui

import "io"

// KeyValue is a row rendered inside a block.
type KeyValue struct {
	Key   string
	Value any
}

// UserInterface exposes the output surface of a run.
type UserInterface interface {
	Info(msg string)
	Detail(msg string)
	Warn(msg string)
	Success(msg string)
	Block(emoji, title string, rows []KeyValue)
}

// Options configures NewUI.
type Options struct {
	Emoji   bool
	Verbose bool
}

// NewUI returns a UserInterface writing to out.
func NewUI(out io.Writer, opts Options) UserInterface {
	return consoleUI{console: &Console{Out: out, EmojiEnabled: opts.Emoji, Verbose: opts.Verbose}}
}

// Discard returns a UserInterface that drops everything.
func Discard() UserInterface {
	return NewUI(io.Discard, Options{})
}

type consoleUI struct {
	console *Console
}

func (u consoleUI) Info(msg string)    { u.console.Info(msg) }
func (u consoleUI) Detail(msg string)  { u.console.Detail(msg) }
func (u consoleUI) Warn(msg string)    { u.console.Warn(msg) }
func (u consoleUI) Success(msg string) { u.console.Success(msg) }

func (u consoleUI) Block(emoji, title string, rows []KeyValue) {
	u.console.Header(emoji, title)
	for _, row := range rows {
		u.console.Item(row.Key, row.Value)
	}
}
