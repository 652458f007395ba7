package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/abhisek/coursebuddy/internal/app"
	"github.com/abhisek/coursebuddy/internal/session"
	"github.com/abhisek/coursebuddy/internal/store"
)

type chatOptions struct {
	plain    bool
	courseID string
	ask      string
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the course catalog with the assistant",
	RunE: func(cmd *cobra.Command, args []string) error {
		var opts chatOptions
		opts.plain, _ = cmd.Flags().GetBool("plain")
		opts.courseID, _ = cmd.Flags().GetString("course")
		opts.ask, _ = cmd.Flags().GetString("ask")
		return runChat(cmd, opts)
	},
}

func init() {
	chatCmd.Flags().Bool("plain", false, "Use a line-based prompt instead of the full-screen UI")
	chatCmd.Flags().String("course", "", "Focus the assistant on this course ID")
	chatCmd.Flags().String("ask", "", "Seed the assistant with this question")
}

// runChat opens the store, builds the session, and launches the TUI or the
// plain prompt.
func runChat(cmd *cobra.Command, opts chatOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.EngagementRepo().Record(ctx, time.Now()); err != nil {
		slog.Warn("Failed to record engagement", "error", err)
	}

	if !opts.plain {
		restore, err := logToFile()
		if err != nil {
			return err
		}
		defer restore()
	}

	deps, err := newSessionDeps(ctx, st)
	if err != nil {
		return err
	}
	sess := session.New(cfg.SessionTiming(), deps, opts.courseID)
	defer sess.Close()

	if opts.ask != "" {
		sess.SeedQuestion(opts.ask, opts.courseID)
	}

	if opts.plain {
		return plainChat(ctx, sess, st, os.Stdout)
	}
	return app.Run(ctx, app.Options{Session: sess, Store: st})
}

// plainChat runs a readline prompt against the session.
func plainChat(ctx context.Context, sess *session.Session, st *store.Store, out io.Writer) error {
	updates, unsubscribe := sess.Subscribe()
	defer unsubscribe()

	hist := sess.State().History
	printMessage(out, hist[len(hist)-1])

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "You: ",
		HistoryFile:     historyFile(),
		HistoryLimit:    100,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	if seed, ok := sess.TakeSeed(); ok {
		rl.WriteStdin([]byte(seed))
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				fmt.Fprintln(out, "\nGoodbye!")
				return nil
			}
			return err
		}

		input := strings.TrimSpace(line)
		switch input {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		case "/clear":
			sess.Clear()
			continue
		}

		sess.Touch()
		before := len(sess.State().History)
		if err := sess.Submit(input); err != nil {
			fmt.Fprintln(out, "Error:", err)
			continue
		}
		if err := awaitReply(ctx, updates, before, out); err != nil {
			return err
		}
	}
}

// awaitReply prints the assistant reply following the learner message at
// history index userIdx as it is revealed, returning once it is complete.
func awaitReply(ctx context.Context, updates <-chan session.State, userIdx int, out io.Writer) error {
	printed := 0
	header := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case st, ok := <-updates:
			if !ok {
				return session.ErrClosed
			}
			if len(st.History) <= userIdx+1 {
				continue
			}
			m := st.History[userIdx+1]
			if m.Sender != session.SenderAssistant {
				continue
			}
			if !header {
				fmt.Fprintf(out, "\nBuddy (%s): ", m.Tone.Label())
				header = true
			}
			if len(m.Text) > printed {
				fmt.Fprint(out, m.Text[printed:])
				printed = len(m.Text)
			}
			if m.Delivery == session.DeliveryComplete {
				fmt.Fprintln(out)
				printResources(out, m)
				fmt.Fprintln(out)
				return nil
			}
		}
	}
}

func printMessage(out io.Writer, m session.Message) {
	label := "You"
	if m.Sender == session.SenderAssistant {
		label = "Buddy (" + m.Tone.Label() + ")"
	}
	fmt.Fprintf(out, "%s: %s\n", label, m.Text)
	printResources(out, m)
	fmt.Fprintln(out)
}

func printResources(out io.Writer, m session.Message) {
	for _, r := range m.Resources {
		line := fmt.Sprintf("  [%s] %s", r.Kind, r.Title)
		if r.URL != "" {
			line += "  " + r.URL
		}
		fmt.Fprintln(out, line)
	}
}

func historyFile() string {
	dir, err := store.DataDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".coursebuddy_history")
	}
	return filepath.Join(dir, "chat_history")
}
