package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/shravya-mutyala/agent-test/internal/agent"
	"github.com/shravya-mutyala/agent-test/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestRunner(input string) (*Runner, *bytes.Buffer) {
	color.NoColor = true
	out := &bytes.Buffer{}
	cfg := &config.Config{
		GoogleAPIKey:   "key",
		SearchEngineID: "id",
		Settings:       config.DefaultSettings(),
	}
	r := NewRunner(agent.New(nil, testLogger()), cfg, testLogger())
	r.in = strings.NewReader(input)
	r.out = out
	return r, out
}

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"qit", "quit"},
		{"hlp", "help"},
		{"exi", "exit"},
		{"confg", "config"},
		{"help", ""},                      // exact commands are handled upstream
		{"what is aws", ""},               // multi-word input is a question
		{"something", ""},                 // too long for a typo hint
		{"latest aws deals today?", ""},   // question mark disables the hint
		{"zzz", ""},                       // nothing close enough
	}

	for _, tt := range tests {
		if got := suggestCommand(tt.input); got != tt.want {
			t.Errorf("suggestCommand(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestAskOnce(t *testing.T) {
	r, out := newTestRunner("")

	r.AskOnce(context.Background(), "Tell me about cloud computing")

	assert.Contains(t, out.String(), "Question: Tell me about cloud computing")
	assert.Contains(t, out.String(), "I can help with that")
}

func TestInteractive_QuitExits(t *testing.T) {
	r, out := newTestRunner("quit\n")

	err := r.Interactive(context.Background())

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Goodbye!")
}

func TestInteractive_AnswersQuestions(t *testing.T) {
	r, out := newTestRunner("Tell me about cloud computing\nexit\n")

	err := r.Interactive(context.Background())

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Agent: ")
	assert.Contains(t, out.String(), "I can help with that")
}

func TestInteractive_HelpAndConfig(t *testing.T) {
	r, out := newTestRunner("help\nconfig\nquit\n")

	err := r.Interactive(context.Background())

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "COMMANDS:")
	assert.Contains(t, out.String(), "Configuration OK")
}

func TestInteractive_SkipsBlankLines(t *testing.T) {
	r, out := newTestRunner("\n   \nquit\n")

	err := r.Interactive(context.Background())

	assert.NoError(t, err)
	assert.NotContains(t, out.String(), "Agent: ")
}

func TestInteractive_EOFEndsLoop(t *testing.T) {
	r, _ := newTestRunner("")

	assert.NoError(t, r.Interactive(context.Background()))
}

func TestPrintBanner(t *testing.T) {
	r, out := newTestRunner("")

	r.PrintBanner()

	assert.Contains(t, out.String(), "STRANDS AGENT")
}
