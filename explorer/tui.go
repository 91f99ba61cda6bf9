package explorer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TUI is the terminal interface for walking a cfloat's encoding space
// live: a set of read-only view panels plus a command input at the
// bottom.
type TUI struct {
	Session *Session
	App     *tview.Application

	MainLayout   *tview.Flex
	ValueView    *tview.TextView
	BitsView     *tview.TextView
	OutputView   *tview.TextView
	CommandInput *tview.InputField
}

// NewTUI builds a TUI bound to session, with its views already
// populated from the session's starting value.
func NewTUI(session *Session) *TUI {
	t := &TUI{
		Session: session,
		App:     tview.NewApplication(),
	}
	t.initializeViews()
	t.buildLayout()
	t.setupKeyBindings()
	t.RefreshAll()
	return t
}

func (t *TUI) initializeViews() {
	t.ValueView = tview.NewTextView().SetDynamicColors(true)
	t.ValueView.SetBorder(true).SetTitle(" Value ")

	t.BitsView = tview.NewTextView().SetDynamicColors(true)
	t.BitsView.SetBorder(true).SetTitle(" Encoding ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ").SetFieldWidth(0)
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	top := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(t.ValueView, 0, 1, false).
		AddItem(t.BitsView, 0, 1, false)

	t.MainLayout = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 9, 0, false).
		AddItem(t.OutputView, 0, 1, false).
		AddItem(t.CommandInput, 3, 0, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			t.executeCommand("help")
			return nil
		case tcell.KeyRight:
			t.executeCommand("next")
			return nil
		case tcell.KeyLeft:
			t.executeCommand("prev")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		case tcell.KeyCtrlL:
			t.RefreshAll()
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := t.CommandInput.GetText()
	if cmd == "quit" || cmd == "q" {
		t.App.Stop()
		return
	}
	if cmd != "" {
		t.executeCommand(cmd)
		t.CommandInput.SetText("")
	}
}

func (t *TUI) executeCommand(cmd string) {
	t.Session.Output.Reset()
	err := t.Session.ExecuteCommand(cmd)
	output := t.Session.GetOutput()
	if err != nil {
		t.WriteOutput(fmt.Sprintf("[red]error:[white] %v\n", err))
	}
	if output != "" {
		t.WriteOutput(output)
	}
	t.RefreshAll()
}

// WriteOutput appends to the output view and scrolls to the bottom.
func (t *TUI) WriteOutput(text string) {
	_, _ = t.OutputView.Write([]byte(text))
	t.OutputView.ScrollToEnd()
}

// RefreshAll redraws every panel from the session's current value.
func (t *TUI) RefreshAll() {
	v := t.Session.Current
	t.ValueView.SetText(fmt.Sprintf(
		"decimal : %s\nshape   : cfloat<%d,%d>\npolicy  : %s\n\nzero=%v inf=%v nan=%v\nnormal=%v subnormal=%v supernormal=%v",
		v.String(), v.NBits(), v.ES(), v.PolicyName(),
		v.IsZero(), v.IsInf(), v.IsNaN(), v.IsNormal(), v.IsSubnormal(), v.IsSupernormal(),
	))
	t.BitsView.SetText(fmt.Sprintf("bits  : %s\nraw   : 0x%x\n\n<- prev / next -> (F1 for help)", v.Binary(), v.Raw()))
	t.App.Draw()
}

// Run starts the TUI's event loop.
func (t *TUI) Run() error {
	return t.App.SetRoot(t.MainLayout, true).SetFocus(t.CommandInput).Run()
}
