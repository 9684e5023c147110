// Package cli provides the terminal interface to the agent: a one-shot
// question mode and an interactive loop with a few console commands.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sahilm/fuzzy"
	"github.com/shravya-mutyala/agent-test/internal/agent"
	"github.com/shravya-mutyala/agent-test/internal/config"
	"github.com/sirupsen/logrus"
)

// consoleCommands are handled by the loop itself instead of the agent.
var consoleCommands = []string{"help", "config", "clear", "quit", "exit"}

// Runner drives the terminal surfaces. It only ever calls agent.Ask and
// renders the returned text.
type Runner struct {
	agent  *agent.Agent
	cfg    *config.Config
	logger *logrus.Logger
	in     io.Reader
	out    io.Writer
}

// NewRunner creates a Runner reading from stdin and writing to stdout.
func NewRunner(a *agent.Agent, cfg *config.Config, logger *logrus.Logger) *Runner {
	return &Runner{agent: a, cfg: cfg, logger: logger, in: os.Stdin, out: os.Stdout}
}

// PrintBanner writes the application banner.
func (r *Runner) PrintBanner() {
	rule := strings.Repeat("=", 60)
	title := color.New(color.FgCyan, color.Bold)
	fmt.Fprintln(r.out, rule)
	title.Fprintln(r.out, "  STRANDS AGENT - Real-time Information Assistant")
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, "Ask questions and get answers with current information!")
	fmt.Fprintln(r.out)
}

// AskOnce processes a single question and prints the answer.
func (r *Runner) AskOnce(ctx context.Context, question string) {
	fmt.Fprintf(r.out, "Question: %s\n\n", question)
	fmt.Fprintf(r.out, "%s\n", r.agent.Ask(ctx, question))
}

// Interactive runs the read-answer loop until quit/exit or EOF.
func (r *Runner) Interactive(ctx context.Context) error {
	fmt.Fprintln(r.out, "Type 'help' for commands, or ask me anything. 'quit' to exit.")
	fmt.Fprintln(r.out)

	scanner := bufio.NewScanner(r.in)
	prompt := color.New(color.FgGreen, color.Bold)

	for {
		prompt.Fprint(r.out, "You: ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "quit", "exit":
			fmt.Fprintln(r.out, "Goodbye!")
			return nil
		case "help":
			r.printHelp()
			continue
		case "config":
			r.printConfigStatus()
			continue
		case "clear":
			// ANSI clear screen, cursor home.
			fmt.Fprint(r.out, "\033[2J\033[H")
			continue
		}

		if suggestion := suggestCommand(input); suggestion != "" {
			fmt.Fprintf(r.out, "(Did you mean '%s'? Treating this as a question.)\n", suggestion)
		}

		fmt.Fprintf(r.out, "\nAgent: %s\n\n", r.agent.Ask(ctx, input))
	}
}

// suggestCommand fuzzy-matches short single-word inputs against the console
// commands so typos like "qit" get a hint instead of a puzzled answer.
func suggestCommand(input string) string {
	if strings.ContainsAny(input, " ?") || len(input) > 6 {
		return ""
	}
	lower := strings.ToLower(input)
	for _, cmd := range consoleCommands {
		if lower == cmd {
			return ""
		}
	}
	matches := fuzzy.Find(lower, consoleCommands)
	if len(matches) == 0 {
		return ""
	}
	return consoleCommands[matches[0].Index]
}

func (r *Runner) printHelp() {
	fmt.Fprintln(r.out, "COMMANDS:")
	fmt.Fprintln(r.out, "  help     - Show this help information")
	fmt.Fprintln(r.out, "  config   - Show configuration status")
	fmt.Fprintln(r.out, "  clear    - Clear the screen")
	fmt.Fprintln(r.out, "  quit     - Exit the application")
	fmt.Fprintln(r.out, "  exit     - Exit the application")
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "EXAMPLES:")
	fmt.Fprintln(r.out, "  What are the latest AWS certification discounts?")
	fmt.Fprintln(r.out, "  Current Azure pricing for virtual machines")
	fmt.Fprintln(r.out, "  Tell me about cloud computing")
	fmt.Fprintln(r.out)
}

func (r *Runner) printConfigStatus() {
	if r.cfg.IsConfigured() {
		color.New(color.FgGreen).Fprintln(r.out, "Configuration OK: API credentials present.")
	} else {
		color.New(color.FgYellow).Fprintln(r.out, "Configuration incomplete. Missing:")
		for _, name := range r.cfg.MissingConfig() {
			fmt.Fprintf(r.out, "  - %s\n", name)
		}
		fmt.Fprintln(r.out, "Set these in your environment or a .env file.")
	}
	fmt.Fprintf(r.out, "Request interval: %s, results per search: %d\n",
		r.cfg.MinRequestInterval(), r.cfg.NumResults())
	fmt.Fprintln(r.out)
}
