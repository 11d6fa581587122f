package cli

import (
	"encoding/json"
	"testing"

	"github.com/alexanderramin/preplock/internal/contract"
	"github.com/alexanderramin/preplock/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeck_CreateReviewAndDelete(t *testing.T) {
	app := testApp(t)
	srcID, _ := seedRoadmap(t, app)

	out, err := executeCmd(t, app, "deck", "create", srcID[:8], "--count", "3", "--format", "json")
	require.NoError(t, err)
	var deck contract.DeckView
	require.NoError(t, json.Unmarshal([]byte(out), &deck))
	assert.Equal(t, 3, deck.TotalCards)

	out, err = executeCmd(t, app, "deck", "review", deck.ID[:8], "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Reviewed card 2. 0/3 mastered.")

	out, err = executeCmd(t, app, "deck", "review", deck.ID[:8], "2", "--mastered")
	require.NoError(t, err)
	assert.Contains(t, out, "Mastered card 2. 1/3 mastered.")

	out, err = executeCmd(t, app, "deck", "show", deck.ID[:8], "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &deck))
	assert.Equal(t, 2, deck.Cards[1].ReviewCount)
	assert.True(t, deck.Cards[1].Mastered)

	_, err = executeCmd(t, app, "deck", "review", deck.ID[:8], "4")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = executeCmd(t, app, "deck", "review", deck.ID[:8], "two")
	assert.Error(t, err)

	out, err = executeCmd(t, app, "deck", "delete", deck.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted deck")
	out, err = executeCmd(t, app, "deck", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No flashcard decks")
}

func TestMock_SubmitAndAttempts(t *testing.T) {
	app := testApp(t)
	srcID, _ := seedRoadmap(t, app)

	out, err := executeCmd(t, app, "mock", "create", srcID[:8], "--count", "4", "--format", "json")
	require.NoError(t, err)
	var test contract.MockTestView
	require.NoError(t, json.Unmarshal([]byte(out), &test))
	require.Equal(t, 4, test.TotalQuestions)

	out, err = executeCmd(t, app, "mock", "submit", test.ID[:8], "-a", "1=A", "-a", "2=a", "-a", "3=B", "-a", "4=1", "--time", "300")
	require.NoError(t, err)
	assert.Contains(t, out, "3/4 correct")
	assert.Contains(t, out, "Q3: you chose B, answer is A")

	_, err = executeCmd(t, app, "mock", "submit", test.ID[:8], "-a", "9=A")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err = executeCmd(t, app, "mock", "attempts", test.ID[:8], "--format", "json")
	require.NoError(t, err)
	var attempts []contract.AttemptView
	require.NoError(t, json.Unmarshal([]byte(out), &attempts))
	require.Len(t, attempts, 1)
	assert.Equal(t, 75, attempts[0].Percentage)
	assert.Equal(t, 300, attempts[0].TimeSpent)
	require.Len(t, attempts[0].WeakTopics, 1)
	assert.Equal(t, "B", attempts[0].WeakTopics[0].Topic)
}

func TestSourceDelete_RequiresForceWithRoadmap(t *testing.T) {
	app := testApp(t)
	srcID, _ := seedRoadmap(t, app)
	_, err := executeCmd(t, app, "deck", "create", srcID[:8])
	require.NoError(t, err)

	_, err = executeCmd(t, app, "source", "delete", srcID[:8])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	out, err := executeCmd(t, app, "source", "delete", srcID[:8], "--force", "--format", "json")
	require.NoError(t, err)
	var got contract.DeleteSourceView
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, srcID, got.SourceID)
	assert.Equal(t, 1, got.RoadmapsDeleted)

	out, err = executeCmd(t, app, "source", "list", "--format", "json")
	require.NoError(t, err)
	var sources []contract.SourceView
	require.NoError(t, json.Unmarshal([]byte(out), &sources))
	assert.Empty(t, sources)

	out, err = executeCmd(t, app, "deck", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No flashcard decks")
}

func TestSourceDelete_WithoutRoadmap(t *testing.T) {
	app := testApp(t)
	out, err := executeCmd(t, app, "source", "import", writeSyllabus(t), "--format", "json")
	require.NoError(t, err)
	var src contract.SourceView
	require.NoError(t, json.Unmarshal([]byte(out), &src))

	out, err = executeCmd(t, app, "source", "delete", src.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted source")
	assert.NotContains(t, out, "roadmap")
}

func TestParseAnswers(t *testing.T) {
	got, err := parseAnswers([]string{"1=A", "2 = c", "3=4"})
	require.NoError(t, err)
	assert.Equal(t, []domain.AnswerSubmission{
		{QuestionIndex: 0, Selected: 0},
		{QuestionIndex: 1, Selected: 2},
		{QuestionIndex: 2, Selected: 3},
	}, got)

	for _, bad := range [][]string{nil, {"1"}, {"0=A"}, {"x=A"}, {"1=AB"}, {"1=0"}, {"1=?"}} {
		_, err := parseAnswers(bad)
		assert.Error(t, err, "%v", bad)
	}
}
