package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kioku/pkg/model"
	"github.com/m-mizutani/kioku/pkg/usecase/assistant"
	"github.com/m-mizutani/kioku/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// replyWidth is the column replies are re-flowed to in the transcript.
const replyWidth = 100

func chatCommand() *cli.Command {
	var cfg config

	flags := globalFlags(&cfg)
	flags = append(flags, memoryFlags(&cfg)...)
	flags = append(flags, llmFlags(&cfg)...)

	return &cli.Command{
		Name:  "chat",
		Usage: "Start the interactive assistant",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.New(cfg.logLevel, os.Stderr).
				With("session_id", uuid.NewString())
			logging.SetDefault(logger)
			ctx = logging.With(ctx, logger)

			// Initialize dependencies
			memory, err := cfg.newMemory()
			if err != nil {
				return err
			}

			completer, err := cfg.newCompleter()
			if err != nil {
				return err
			}

			heuristic, err := cfg.newHeuristic()
			if err != nil {
				return err
			}

			uc := assistant.New(assistant.NewInput{
				Memory:    memory,
				Completer: completer,
				Heuristic: heuristic,
				AgentID:   model.AgentID(cfg.agentID),
			})

			return runREPL(ctx, c.Root().Writer, uc)
		},
	}
}

func runREPL(ctx context.Context, w io.Writer, uc *assistant.UseCase) error {
	rl, err := readline.New("\nYou: ")
	if err != nil {
		return goerr.Wrap(err, "failed to initialize terminal input")
	}
	defer rl.Close()

	fmt.Fprintln(w, "Local assistant wired to Mem0.")
	fmt.Fprintln(w, "Type 'exit' to quit.")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  /mem, /mem search <q>, /mem show <id>, /mem delete <id>, /mem clear")
	fmt.Fprintln(w, "  /agent, /agent <name>")

	for {
		line, err := rl.Readline()
		if err != nil {
			// io.EOF or interrupt: leave gracefully
			fmt.Fprintln(w, "\nBye.")
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if lower := strings.ToLower(input); lower == "exit" || lower == "quit" {
			fmt.Fprintln(w, "Bye.")
			return nil
		}

		switch {
		case strings.HasPrefix(input, "/mem"):
			out := uc.HandleMemCommand(ctx, input)
			fmt.Fprintln(w, "\n[MEMORIES]")
			fmt.Fprintln(w, out)

		case strings.HasPrefix(input, "/agent"):
			out := uc.HandleAgentCommand(input)
			fmt.Fprintln(w, "\n[AGENT]")
			fmt.Fprintln(w, out)

		default:
			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
				spinner.WithWriter(os.Stderr))
			sp.Start()
			answer, err := uc.ProcessTurn(ctx, input)
			sp.Stop()

			if err != nil {
				// The turn is lost but the loop stays alive for the next input
				logging.From(ctx).Error("turn failed", "error", err)
				fmt.Fprintf(w, "\n[chat error] %v\n", err)
				continue
			}

			fmt.Fprintln(w, "\nAssistant:")
			fmt.Fprintln(w, wrapText(answer, replyWidth))
		}
	}
}

// wrapText re-flows text to the given width, preserving existing paragraph
// breaks. Words longer than the width stay on their own line.
func wrapText(s string, width int) string {
	paragraphs := strings.Split(s, "\n")
	out := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}

		var b strings.Builder
		lineLen := 0
		for i, word := range words {
			if i > 0 {
				if lineLen+1+len(word) > width {
					b.WriteByte('\n')
					lineLen = 0
				} else {
					b.WriteByte(' ')
					lineLen++
				}
			}
			b.WriteString(word)
			lineLen += len(word)
		}
		out = append(out, b.String())
	}

	return strings.Join(out, "\n")
}
