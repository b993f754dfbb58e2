// Package promptsvc renders dialog requests on a terminal; it is the CLI's
// Presenter. A GUI surface would supply its own.
package promptsvc

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/labstack/gommon/color"

	"github.com/trezcool/masomo-admin/core/dialog"
)

type Terminal struct {
	out io.Writer

	mu sync.Mutex // serializes stdin reads across dialogs
	in *bufio.Reader
}

var _ dialog.Presenter = (*Terminal)(nil)

func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Show renders the request and reports the answer asynchronously; the
// coordinator ignores answers for dialogs it has since displaced.
func (t *Terminal) Show(req dialog.Request, respond func(confirmed bool)) {
	go func() {
		t.mu.Lock()
		defer t.mu.Unlock()

		switch req.Kind {
		case dialog.Info, dialog.Success:
			title := req.Title
			if req.Kind == dialog.Success {
				title = color.Green(title)
			}
			fmt.Fprintf(t.out, "\n%s\n%s\n[press enter to continue] ", title, req.Message)
			_, _ = t.in.ReadString('\n')
			respond(true)
		default:
			title, prompt := req.Title, "[y/N]"
			if req.Kind == dialog.Delete {
				title = color.Red(title)
				prompt = "[y/N] (this cannot be undone)"
			}
			fmt.Fprintf(t.out, "\n%s\n%s\n%s: ", title, req.Message, prompt)
			line, err := t.in.ReadString('\n')
			ans := strings.ToLower(strings.TrimSpace(line))
			respond(err == nil && (ans == "y" || ans == "yes"))
		}
	}()
}

func (t *Terminal) Hide() {}
