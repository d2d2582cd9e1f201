package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return []string{"--help", "-h"} }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, rt *Runtime, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, HelpText)
	return exitcode.Success
}

// HelpText is printed by help and for unknown commands.
const HelpText = `Usage: todo [COMMAND] [ARGUMENTS]
Keeps a task list in a plain text file, one task per line.
Example: todo list
Available commands:
    - add [TASK/s]
        adds new task/s
        Example: todo add "buy carrots"
    - list
        lists all tasks
        Example: todo list
    - done [INDEX]
        marks task as done
        Example: todo done 2 (marks second item as done)
    - rm [INDEX]
        removes a task
        Example: todo rm 4
    - reset
        deletes all tasks
    - sort [--write]
        sorts completed and uncompleted tasks
        Example: todo sort
    - raw [todo/done]
        prints nothing but done/incompleted tasks in plain text, useful for scripting
        Example: todo raw done
    - edit [INDEX] [EDITED TASK/s]
        edits an existing task/s
        Example: todo edit 1 banana
    - lists
        lists task lists in Google Tasks
    - push [--list NAME]
        copies all tasks to a Google Tasks list
    - pull [--list NAME]
        appends open tasks from a Google Tasks list
    - login / logout
        manages Google credentials
    - version
        prints the version

Common flags:
    --config <dir>   Override config directory
    --file <path>    Use another task file
    --no-lock        Do not lock the task file
    --quiet          Suppress informational output
    --debug          Print debug logs to stderr

Flags go right after the command and stop at the first task word.
Use -- before text that starts with a dash: todo add -- -5 apples
Errors are printed to stderr and exit with a non-zero status.
`
