// Package repl implements the interactive glcheck shell.
package repl

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/codehealth/glcheck/internal/compliance"
	"github.com/codehealth/glcheck/internal/gitlab"
	"github.com/codehealth/glcheck/internal/history"
	"github.com/codehealth/glcheck/internal/report"
)

// REPL is the interactive shell. It keeps the last resolved project list so
// the user can pick a candidate with 'select'.
type REPL struct {
	checker  *compliance.Checker
	store    *history.Store
	rl       *readline.Instance
	ctx      context.Context
	commands map[string]CommandHandler

	candidates []gitlab.Project
	lastInput  string
}

// CommandHandler handles a specific command.
type CommandHandler func(args []string) error

// Config holds REPL configuration.
type Config struct {
	Checker *compliance.Checker
	Store   *history.Store
}

// New creates a new REPL instance.
func New(cfg *Config) (*REPL, error) {
	if cfg.Checker == nil {
		return nil, fmt.Errorf("checker is required")
	}
	r := &REPL{
		checker:  cfg.Checker,
		store:    cfg.Store,
		commands: make(map[string]CommandHandler),
	}
	r.registerCommands()
	return r, nil
}

// Run starts the REPL loop.
func (r *REPL) Run(ctx context.Context) error {
	r.ctx = ctx

	cyan := color.New(color.FgCyan).SprintFunc()
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            cyan("glcheck> "),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()
	r.rl = rl

	r.printWelcome()

	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			} else if err == io.EOF {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if err := r.processInput(line); err != nil {
			if err == io.EOF {
				return nil
			}
			red := color.New(color.FgRed).SprintFunc()
			fmt.Printf("%s %v\n", red("Error:"), err)
		}
	}
}

// processInput dispatches a single line. Unrecognized commands are treated
// as check inputs, so a bare username, ID, or URL just works.
func (r *REPL) processInput(line string) error {
	parts := strings.Fields(line)
	command := parts[0]
	args := parts[1:]

	if handler, ok := r.commands[command]; ok {
		return handler(args)
	}
	return r.cmdCheck([]string{line})
}

func (r *REPL) registerCommands() {
	r.commands["help"] = r.cmdHelp
	r.commands["?"] = r.cmdHelp
	r.commands["check"] = r.cmdCheck
	r.commands["select"] = r.cmdSelect
	r.commands["profile"] = r.cmdProfile
	r.commands["history"] = r.cmdHistory
	r.commands["exit"] = r.cmdExit
	r.commands["quit"] = r.cmdExit
}

func (r *REPL) printWelcome() {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	fmt.Printf("\n%s\n", cyan("glcheck — GitLab compliance checker"))
	fmt.Println("Enter a username, project ID, or project URL to run a check.")
	fmt.Println("Type 'help' for available commands.")
	fmt.Println()
}

func (r *REPL) cmdHelp(args []string) error {
	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Printf("%s\n", yellow("Commands:"))
	fmt.Println("  check <input>      Run a compliance check (username, ID, or URL)")
	fmt.Println("  select <n>         Check the n-th project from the last candidate list")
	fmt.Println("  profile <username> Check a user's profile repository README")
	fmt.Println("  history            Show recent check runs")
	fmt.Println("  help               Show this help")
	fmt.Println("  exit               Leave the shell")
	fmt.Println()
	fmt.Println("Bare input is treated as 'check <input>'.")
	return nil
}

func (r *REPL) cmdExit(args []string) error {
	fmt.Println("Goodbye!")
	return io.EOF
}

func (r *REPL) cmdCheck(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: check <username | project-id | project-url>")
	}
	input := strings.Join(args, " ")

	result := r.checker.Classify(r.ctx, input)
	switch result.Kind {
	case compliance.KindError:
		return fmt.Errorf("%s", result.Message)

	case compliance.KindProject:
		r.candidates = nil
		return r.runCheck(input, result.Project)

	case compliance.KindProjectList:
		r.candidates = result.Projects
		r.lastInput = input
		r.printCandidates(result.Truncated)
	}
	return nil
}

func (r *REPL) printCandidates(truncated bool) {
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()

	fmt.Printf("%s Found %d projects\n", green("✓"), len(r.candidates))
	if truncated {
		fmt.Printf("%s Reached pagination limit; some projects might not be listed\n", yellow("⚠"))
	}
	for i, p := range r.candidates {
		fmt.Printf("  %3d. %s %s\n", i+1, p.NameWithNamespace, gray(fmt.Sprintf("(%d)", p.ID)))
	}
	fmt.Println("Use 'select <n>' to check one of them.")
}

func (r *REPL) cmdSelect(args []string) error {
	if len(r.candidates) == 0 {
		return fmt.Errorf("no candidate list; run 'check <username>' first")
	}
	if len(args) != 1 {
		return fmt.Errorf("usage: select <n>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(r.candidates) {
		return fmt.Errorf("pick a number between 1 and %d", len(r.candidates))
	}
	return r.runCheck(r.lastInput, &r.candidates[n-1])
}

func (r *REPL) runCheck(input string, project *gitlab.Project) error {
	status := r.checker.Evaluate(r.ctx, project.ID)
	if len(status) == 0 {
		return fmt.Errorf("failed to fetch compliance info")
	}

	report.PrintProject(project, r.checker.API().BaseURL())
	report.PrintStatus(status)

	if r.store != nil {
		if _, err := r.store.RecordRun(r.ctx, input, project.ID, project.NameWithNamespace, status); err != nil {
			log.Printf("record run: %v", err)
		}
	}
	return nil
}

func (r *REPL) cmdProfile(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: profile <username>")
	}
	username := args[0]

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	result := r.checker.CheckProfileReadme(r.ctx, username)
	if result.Found {
		fmt.Printf("%s README.md is present in the profile repo\n", green("✓"))
		if result.ReadmeURL != "" {
			fmt.Printf("  %s\n", result.ReadmeURL)
		}
	} else {
		fmt.Printf("%s README.md is missing in the profile repo\n", red("✗"))
	}
	return nil
}

func (r *REPL) cmdHistory(args []string) error {
	if r.store == nil {
		fmt.Println("History is not enabled.")
		return nil
	}
	runs, err := r.store.ListRuns(r.ctx, 20)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs yet.")
		return nil
	}

	yellow := color.New(color.FgYellow).SprintFunc()
	fmt.Printf("%s\n", yellow("Recent runs:"))
	for _, run := range runs {
		fmt.Printf("  %s  %-40s %d/%d\n",
			run.CreatedAt.Format("2006-01-02 15:04"), run.ProjectName, run.Score, run.Total)
	}
	return nil
}
