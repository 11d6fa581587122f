package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/preplock/internal/cli/formatter"
	"github.com/alexanderramin/preplock/internal/content"
	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/spf13/cobra"
)

func newDeckCmd(app *App, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Save and review flashcard decks",
	}

	cmd.AddCommand(
		newDeckCreateCmd(app, opts),
		newDeckListCmd(app, opts),
		newDeckShowCmd(app, opts),
		newDeckReviewCmd(app, opts),
		newDeckDeleteCmd(app, opts),
	)

	return cmd
}

func newDeckCreateCmd(app *App, opts *options) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "create <source-id>",
		Short: "Generate and save a flashcard deck for a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			id, err := resolveSourceID(cmd.Context(), app, owner, args[0])
			if err != nil {
				return err
			}
			deck, err := app.Study.CreateDeck(cmd.Context(), owner, id, count)
			if err != nil {
				return err
			}
			return render(cmd, opts, contract.NewDeckView(deck), formatter.FormatDeck(deck))
		},
	}

	cmd.Flags().IntVar(&count, "count", content.DefaultFlashcardCount, "Number of cards")

	return cmd
}

func newDeckListCmd(app *App, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved flashcard decks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			decks, err := app.Study.ListDecks(cmd.Context(), owner)
			if err != nil {
				return err
			}
			return render(cmd, opts, contract.NewDeckViews(decks), formatter.FormatDeckList(decks))
		},
	}
}

func newDeckShowCmd(app *App, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <deck-id>",
		Short: "Show a deck's cards and review state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			id, err := resolveDeckID(cmd.Context(), app, owner, args[0])
			if err != nil {
				return err
			}
			deck, err := app.Study.GetDeck(cmd.Context(), owner, id)
			if err != nil {
				return err
			}
			return render(cmd, opts, contract.NewDeckView(deck), formatter.FormatDeck(deck))
		},
	}
}

func newDeckReviewCmd(app *App, opts *options) *cobra.Command {
	var mastered bool

	cmd := &cobra.Command{
		Use:   "review <deck-id> <card>",
		Short: "Record a review of one card (numbered from 1)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			card, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid card %q: want a card number", args[1])
			}
			id, err := resolveDeckID(cmd.Context(), app, owner, args[0])
			if err != nil {
				return err
			}
			now := app.now()
			deck, err := app.Study.ReviewCard(cmd.Context(), contract.ReviewCardRequest{
				OwnerID:   owner,
				DeckID:    id,
				CardIndex: card - 1,
				Mastered:  mastered,
				Now:       &now,
			})
			if err != nil {
				return err
			}
			verb := "Reviewed"
			if mastered {
				verb = "Mastered"
			}
			text := fmt.Sprintf("%s card %d. %d/%d mastered.\n", verb, card, deck.MasteredCount(), len(deck.Cards))
			return render(cmd, opts, contract.NewDeckView(deck), text)
		},
	}

	cmd.Flags().BoolVar(&mastered, "mastered", false, "Mark the card as mastered")

	return cmd
}

func newDeckDeleteCmd(app *App, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <deck-id>",
		Short: "Delete a flashcard deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			id, err := resolveDeckID(cmd.Context(), app, owner, args[0])
			if err != nil {
				return err
			}
			if err := app.Study.DeleteDeck(cmd.Context(), owner, id); err != nil {
				return err
			}
			return render(cmd, opts, map[string]string{"deleted": id}, fmt.Sprintf("Deleted deck %s\n", formatter.TruncID(id)))
		},
	}
}

func newMockCmd(app *App, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Save, take and review mock tests",
	}

	cmd.AddCommand(
		newMockCreateCmd(app, opts),
		newMockListCmd(app, opts),
		newMockShowCmd(app, opts),
		newMockSubmitCmd(app, opts),
		newMockAttemptsCmd(app, opts),
		newMockDeleteCmd(app, opts),
	)

	return cmd
}

func newMockCreateCmd(app *App, opts *options) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "create <source-id>",
		Short: "Generate and save a mock test for a source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			id, err := resolveSourceID(cmd.Context(), app, owner, args[0])
			if err != nil {
				return err
			}
			test, err := app.Study.CreateMockTest(cmd.Context(), owner, id, count)
			if err != nil {
				return err
			}
			return render(cmd, opts, contract.NewMockTestView(test), formatter.FormatMockTest(test))
		},
	}

	cmd.Flags().IntVar(&count, "count", content.DefaultQuestionCount, "Number of questions")

	return cmd
}

func newMockListCmd(app *App, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved mock tests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			tests, err := app.Study.ListMockTests(cmd.Context(), owner)
			if err != nil {
				return err
			}
			return render(cmd, opts, contract.NewMockTestViews(tests), formatter.FormatMockTestList(tests))
		},
	}
}

func newMockShowCmd(app *App, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show <test-id>",
		Short: "Show a mock test's questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			id, err := resolveMockTestID(cmd.Context(), app, owner, args[0])
			if err != nil {
				return err
			}
			test, err := app.Study.GetMockTest(cmd.Context(), owner, id)
			if err != nil {
				return err
			}
			return render(cmd, opts, contract.NewMockTestView(test), formatter.FormatMockTest(test))
		},
	}
}

func newMockSubmitCmd(app *App, opts *options) *cobra.Command {
	var answers []string
	var seconds int

	cmd := &cobra.Command{
		Use:   "submit <test-id>",
		Short: "Grade answers to a mock test",
		Long: `Grade answers to a mock test. Each --answer is QUESTION=OPTION with the
question numbered from 1 and the option as a letter, e.g. --answer 2=C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			submissions, err := parseAnswers(answers)
			if err != nil {
				return err
			}
			id, err := resolveMockTestID(cmd.Context(), app, owner, args[0])
			if err != nil {
				return err
			}
			now := app.now()
			resp, err := app.Study.SubmitMockTest(cmd.Context(), contract.SubmitTestRequest{
				OwnerID:          owner,
				MockTestID:       id,
				Answers:          submissions,
				TimeSpentSeconds: seconds,
				Now:              &now,
			})
			if err != nil {
				return err
			}
			return render(cmd, opts, contract.NewSubmitTestView(resp), formatter.FormatSubmission(resp))
		},
	}

	cmd.Flags().StringArrayVarP(&answers, "answer", "a", nil, "Answer as QUESTION=OPTION, repeatable")
	cmd.Flags().IntVar(&seconds, "time", 0, "Seconds spent on the test")

	return cmd
}

func newMockAttemptsCmd(app *App, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "attempts <test-id>",
		Short: "List graded attempts of a mock test",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			id, err := resolveMockTestID(cmd.Context(), app, owner, args[0])
			if err != nil {
				return err
			}
			attempts, err := app.Study.ListAttempts(cmd.Context(), owner, id)
			if err != nil {
				return err
			}
			return render(cmd, opts, contract.NewAttemptViews(attempts), formatter.FormatAttempts(attempts))
		},
	}
}

func newMockDeleteCmd(app *App, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <test-id>",
		Short: "Delete a mock test and its attempts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			id, err := resolveMockTestID(cmd.Context(), app, owner, args[0])
			if err != nil {
				return err
			}
			if err := app.Study.DeleteMockTest(cmd.Context(), owner, id); err != nil {
				return err
			}
			return render(cmd, opts, map[string]string{"deleted": id}, fmt.Sprintf("Deleted mock test %s\n", formatter.TruncID(id)))
		},
	}
}

// parseAnswers reads QUESTION=OPTION pairs, both given from the learner's
// side: questions from 1 and options as letters (or numbers from 1).
func parseAnswers(raw []string) ([]domain.AnswerSubmission, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("no answers: pass --answer QUESTION=OPTION at least once")
	}
	out := make([]domain.AnswerSubmission, 0, len(raw))
	for _, r := range raw {
		q, opt, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("invalid answer %q: want QUESTION=OPTION", r)
		}
		question, err := strconv.Atoi(strings.TrimSpace(q))
		if err != nil || question < 1 {
			return nil, fmt.Errorf("invalid answer %q: question must be a number from 1", r)
		}
		selected, err := parseOption(strings.TrimSpace(opt))
		if err != nil {
			return nil, fmt.Errorf("invalid answer %q: %w", r, err)
		}
		out = append(out, domain.AnswerSubmission{QuestionIndex: question - 1, Selected: selected})
	}
	return out, nil
}

func parseOption(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 {
			return 0, fmt.Errorf("option numbers start at 1")
		}
		return n - 1, nil
	}
	if len(s) == 1 {
		c := strings.ToUpper(s)[0]
		if c >= 'A' && c <= 'Z' {
			return int(c - 'A'), nil
		}
	}
	return 0, fmt.Errorf("option must be a letter like B")
}

func resolveDeckID(ctx context.Context, app *App, owner, input string) (string, error) {
	decks, err := app.Study.ListDecks(ctx, owner)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(decks))
	for i, d := range decks {
		ids[i] = d.ID
	}
	return resolveID("deck", input, ids)
}

func resolveMockTestID(ctx context.Context, app *App, owner, input string) (string, error) {
	tests, err := app.Study.ListMockTests(ctx, owner)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(tests))
	for i, t := range tests {
		ids[i] = t.ID
	}
	return resolveID("mock test", input, ids)
}
