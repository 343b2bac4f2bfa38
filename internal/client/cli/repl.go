package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

type command func(ctx context.Context, args []string) error

// execIface is the command surface the REPL drives. App satisfies it; tests
// use a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	mustChangePassword() bool

	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	ChangePassword(ctx context.Context, args []string) error

	Tasks(ctx context.Context, args []string) error
	AddTask(ctx context.Context, args []string) error
	SetTask(ctx context.Context, args []string) error
	RemoveTask(ctx context.Context, args []string) error
	RemoveTasks(ctx context.Context, args []string) error

	Projects(ctx context.Context, args []string) error
	AddProject(ctx context.Context, args []string) error
	RemoveProject(ctx context.Context, args []string) error

	Subtasks(ctx context.Context, args []string) error
	AddSubtask(ctx context.Context, args []string) error
	ToggleSubtask(ctx context.Context, args []string) error
	RemoveSubtask(ctx context.Context, args []string) error
	SyncSubtasks(ctx context.Context, args []string) error

	Entries(ctx context.Context, args []string) error
	AddEntry(ctx context.Context, args []string) error
	RemoveEntry(ctx context.Context, args []string) error

	Dashboard(ctx context.Context, args []string) error
	Start(ctx context.Context, args []string) error
	Stop(ctx context.Context, args []string) error
	Timer(ctx context.Context, args []string) error
	Refresh(ctx context.Context, args []string) error
}

func commands(a execIface) map[string]command {
	return map[string]command{
		"register":   a.Register,
		"login":      a.Login,
		"logout":     a.Logout,
		"whoami":     a.WhoAmI,
		"passwd":     a.ChangePassword,
		"tasks":      a.Tasks,
		"addtask":    a.AddTask,
		"settask":    a.SetTask,
		"rmtask":     a.RemoveTask,
		"rmtasks":    a.RemoveTasks,
		"projects":   a.Projects,
		"addproject": a.AddProject,
		"rmproject":  a.RemoveProject,
		"subtasks":   a.Subtasks,
		"addsub":     a.AddSubtask,
		"togglesub":  a.ToggleSubtask,
		"rmsub":      a.RemoveSubtask,
		"syncsub":    a.SyncSubtasks,
		"entries":    a.Entries,
		"addentry":   a.AddEntry,
		"rmentry":    a.RemoveEntry,
		"dashboard":  a.Dashboard,
		"start":      a.Start,
		"stop":       a.Stop,
		"timer":      a.Timer,
		"refresh":    a.Refresh,
	}
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = `Available commands:
  tasks [pending|in_progress|completed], addtask, settask <id> <field> <value>,
  rmtask <id>, rmtasks <id>...,
  projects, addproject <name> [color], rmproject <id>,
  subtasks <task>, addsub <task> <title>, togglesub <subtask> done|open,
  rmsub <subtask> <task>, syncsub <task>,
  entries [task], addentry <task> <minutes> [notes], rmentry <id>,
  start <task> [notes], stop, timer, dashboard, refresh,
  whoami, passwd, logout, exit`
	helpMustChange = "Available commands: passwd, logout, exit"
)

// guard decides whether cmd may run in the current session. It returns the
// refusal message, or "" when the command is allowed.
func guard(a execIface, cmd string) string {
	switch cmd {
	case "login", "register":
		if a.isLoggedIn() {
			return "Already logged in. Use 'logout' first."
		}
		return ""
	}
	if !a.isLoggedIn() {
		return "Please log in first (login or register)."
	}
	if a.mustChangePassword() && cmd != "passwd" && cmd != "logout" {
		return "You must change your password first (passwd)."
	}
	return ""
}

// runREPL reads commands from reader until EOF, "exit" or "quit". The first
// word of a line picks the command, the rest are its arguments. Commands
// prompt through the same reader, so no input is buffered away from them.
// Errors returned by commands are printed and the loop goes on. The prompt,
// help and errors go to out, the same writer the commands print to.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	say := func(args ...any) { fmt.Fprintln(out, args...) }
	table := commands(a)
	for {
		say(fmt.Sprintf("tracker %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			switch {
			case !a.isLoggedIn():
				say(helpLoggedOut)
			case a.mustChangePassword():
				say(helpMustChange)
			default:
				say(helpLoggedIn)
			}
			continue
		case "exit", "quit":
			say("Bye!")
			return
		}

		run, ok := table[cmd]
		if !ok {
			say("Unknown command:", cmd)
			continue
		}
		if msg := guard(a, cmd); msg != "" {
			say(msg)
			continue
		}
		if err := run(ctx, args); err != nil {
			say(renderError(err))
		}
	}
}
