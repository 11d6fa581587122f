package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/preplock/internal/cli/formatter"
	"github.com/alexanderramin/preplock/internal/content"
	"github.com/spf13/cobra"
)

type narrativeOutput struct {
	RoadmapID string `json:"roadmapId"`
	Day       int    `json:"day"`
	Narrative string `json:"narrative"`
}

func newContentCmd(app *App, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Generate study material",
	}

	cmd.AddCommand(
		newFlashcardsCmd(app, opts),
		newMockTestCmd(app, opts),
		newNarrativeCmd(app, opts),
	)

	return cmd
}

func newFlashcardsCmd(app *App, opts *options) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "flashcards <source-id>",
		Short: "Generate flashcards for a source",
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
			cards, err := app.Content.Flashcards(cmd.Context(), owner, id, count)
			if err != nil {
				return err
			}
			return render(cmd, opts, cards, formatter.FormatFlashcards(cards))
		},
	}

	cmd.Flags().IntVar(&count, "count", content.DefaultFlashcardCount, "Number of flashcards")

	return cmd
}

func newMockTestCmd(app *App, opts *options) *cobra.Command {
	var count int
	var answers bool

	cmd := &cobra.Command{
		Use:   "mocktest <source-id>",
		Short: "Generate a multiple-choice mock test for a source",
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
			questions, err := app.Content.MockTest(cmd.Context(), owner, id, count)
			if err != nil {
				return err
			}
			return render(cmd, opts, questions, formatter.FormatQuestions(questions, answers))
		},
	}

	cmd.Flags().IntVar(&count, "count", content.DefaultQuestionCount, "Number of questions")
	cmd.Flags().BoolVar(&answers, "answers", false, "Mark the correct options")

	return cmd
}

func newNarrativeCmd(app *App, opts *options) *cobra.Command {
	var roadmapID string

	cmd := &cobra.Command{
		Use:   "narrative <day>",
		Short: "Describe what to focus on for a roadmap day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, err := opts.owner()
			if err != nil {
				return err
			}

			day, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid day %q: want a day number", args[0])
			}
			r, err := resolveRoadmap(cmd.Context(), app, owner, roadmapID)
			if err != nil {
				return err
			}
			text, err := app.Content.DayNarrative(cmd.Context(), owner, r.ID, day)
			if err != nil {
				return err
			}
			out := narrativeOutput{RoadmapID: r.ID, Day: day, Narrative: text}
			return render(cmd, opts, out, text+"\n")
		},
	}

	cmd.Flags().StringVar(&roadmapID, "roadmap", "", "Roadmap ID or unique prefix (default: the active one)")

	return cmd
}
