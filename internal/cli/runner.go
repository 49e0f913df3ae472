package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/screen"
	"github.com/idilsaglam/tasks/internal/store/taskstore"
	"github.com/idilsaglam/tasks/internal/ui"
)

const (
	FormatPanel = "panel"
	FormatJSON  = "json"
)

// Options tune a scripted session.
type Options struct {
	Format    string    // panel or json
	AssumeYes bool      // accept every removal prompt
	Answers   io.Reader // where prompt answers are read from
	Out       io.Writer
	Err       io.Writer
	Logger    *log.Logger
	Store     *taskstore.Store
}

// RunScript applies gesture lines from r to a fresh task list and prints the
// result. It returns an exit code (0 ok, 1 error, 2 usage).
func RunScript(r io.Reader, opt Options) int {
	if opt.Store == nil {
		opt.Store = taskstore.New()
	}
	if opt.Answers == nil {
		opt.Answers = strings.NewReader("")
	}
	prompts := &linePrompter{in: bufio.NewReader(opt.Answers), out: opt.Err, assumeYes: opt.AssumeYes}
	home := screen.NewHome(opt.Store, prompts, opt.Logger)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if code := runLine(home, line, opt); code != 0 {
			fmt.Fprintln(opt.Err, ui.C(ui.Current().Muted, fmt.Sprintf("  at line %d: %s", lineNo, line)))
			return code
		}
	}
	if err := sc.Err(); err != nil {
		ui.Fail(opt.Err, "read script: "+err.Error())
		return 1
	}
	return render(home.Tasks(), opt)
}

func runLine(home *screen.Home, line string, opt Options) int {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "ls":
		return render(home.Tasks(), opt)

	case "add":
		if rest == "" {
			ui.Fail(opt.Err, "usage: add <title...>")
			return 2
		}
		home.AddTask(rest)
		return 0

	case "done":
		id, code := resolveIndex(home.Tasks(), "done", rest, opt.Err)
		if code != 0 {
			return code
		}
		home.ToggleTaskDone(id)
		return 0

	case "rm":
		id, code := resolveIndex(home.Tasks(), "rm", rest, opt.Err)
		if code != 0 {
			return code
		}
		home.RemoveTask(id)
		return 0

	case "rename":
		idx, title, _ := strings.Cut(rest, " ")
		id, code := resolveIndex(home.Tasks(), "rename", idx, opt.Err)
		if code != 0 {
			return code
		}
		home.EditTask(id, strings.TrimSpace(title))
		return 0
	}

	ui.Fail(opt.Err, "unknown command: "+cmd)
	return 2
}

// resolveIndex maps a 1-based row number to a task id.
func resolveIndex(tasks []model.Task, cmd, arg string, errOut io.Writer) (int64, int) {
	if arg == "" || strings.ContainsAny(arg, " \t") {
		ui.Fail(errOut, fmt.Sprintf("usage: %s <index>", cmd))
		return 0, 2
	}
	n, err := strconv.Atoi(arg)
	if err != nil {
		ui.Fail(errOut, cmd+": not a number: "+arg)
		return 0, 2
	}
	if n < 1 || n > len(tasks) {
		ui.Fail(errOut, fmt.Sprintf("index out of range: have %d, got %d", len(tasks), n))
		fmt.Fprintln(errOut, ui.C(ui.Current().Muted, "Hint: add `ls` to the script to see valid indexes"))
		return 0, 2
	}
	return tasks[n-1].ID, 0
}

func render(tasks []model.Task, opt Options) int {
	switch opt.Format {
	case FormatJSON:
		b, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			ui.Fail(opt.Err, "json marshal: "+err.Error())
			return 1
		}
		fmt.Fprintln(opt.Out, string(b))
	default:
		ui.Panel(opt.Out, ui.TaskLines(tasks))
	}
	return 0
}

// linePrompter answers screen prompts on a line-oriented terminal. Prompts go
// to stderr so stdout carries only the rendered list.
type linePrompter struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
}

var _ screen.Alerter = (*linePrompter)(nil)

func (p *linePrompter) Alert(title, message string) {
	fmt.Fprintln(p.out, ui.C(ui.Current().Pending, "! "+title+": "+message))
}

func (p *linePrompter) Confirm(title, message string, onConfirm func()) {
	if p.assumeYes {
		onConfirm()
		return
	}
	fmt.Fprintf(p.out, "%s: %s [y/N] ", title, message)
	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		fmt.Fprintln(p.out)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		onConfirm()
	}
}
