package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examdrill/examdrill/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionRepo_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	sess := quiz.New(quiz.Settings{
		Mode:           quiz.ModeExam,
		CountMode:      "10",
		Shuffle:        true,
		ShuffleChoices: true,
		ExamMinutes:    30,
	}, []int{3, 1, 7}, 50)
	sess.Answers[3] = []int{0, 2}
	sess.Revealed[1] = true
	sess.ChoiceOrder[3] = []int{2, 0, 1}

	require.NoError(t, repo.Save(ctx, sess))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, quiz.ModeExam, got.Mode)
	assert.Equal(t, []int{3, 1, 7}, got.QuestionIDs)
	assert.Equal(t, []int{0, 2}, got.Answers[3])
	assert.True(t, got.Revealed[1])
	assert.Equal(t, []int{2, 0, 1}, got.ChoiceOrder[3])
	require.NotNil(t, got.Exam)
	assert.Equal(t, 1800, got.Exam.RemainingSec)
}

func TestSessionRepo_LoadMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.SessionRepo().Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_Supersede(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	first := quiz.New(quiz.Settings{Mode: quiz.ModePractice, CountMode: quiz.CountAll}, []int{1}, 1)
	second := quiz.New(quiz.Settings{Mode: quiz.ModeExam, CountMode: quiz.CountAll}, []int{2}, 1)

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID, "newer record supersedes")
}

func TestSessionRepo_Clear(t *testing.T) {
	s := openTestStore(t)
	repo := s.SessionRepo()
	ctx := context.Background()

	sess := quiz.New(quiz.Settings{Mode: quiz.ModePractice, CountMode: quiz.CountAll}, []int{1}, 1)
	require.NoError(t, repo.Save(ctx, sess))
	require.NoError(t, repo.Clear(ctx))

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	// Clearing again is a no-op.
	assert.NoError(t, repo.Clear(ctx))
}

func TestSessionRepo_BackfillsOldRecord(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// A record persisted by an older build without the optional maps.
	old := `{"version":1,"id":"x","mode":"practice","questionIds":[1,2],"index":0}`
	require.NoError(t, s.putSlot(ctx, slotSession, []byte(old)))

	got, err := s.SessionRepo().Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, got.Answers)
	assert.NotNil(t, got.Revealed)
	assert.NotNil(t, got.ChoiceOrder)
}

func TestSetRepo_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	missed := s.MissedRepo()
	flagged := s.FlaggedRepo()

	// Empty before first save.
	set, err := missed.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, set)

	require.NoError(t, missed.Save(ctx, map[int]bool{4: true, 2: true, 9: true}))
	require.NoError(t, flagged.Save(ctx, map[int]bool{7: true}))

	set, err = missed.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{2: true, 4: true, 9: true}, set)

	// The two sets are independent slots.
	set, err = flagged.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{7: true}, set)
}

func TestSetRepo_SkipsFalseEntries(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.MissedRepo()

	require.NoError(t, repo.Save(ctx, map[int]bool{1: true, 2: false}))
	set, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{1: true}, set)
}

func TestSetRepo_Clear(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.FlaggedRepo()

	require.NoError(t, repo.Save(ctx, map[int]bool{1: true}))
	require.NoError(t, repo.Clear(ctx))

	set, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestOpen_BadPath(t *testing.T) {
	_, err := Open("/nonexistent-dir/sub/db.sqlite")
	assert.Error(t, err)
}

func TestGetSlot_Missing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.getSlot(context.Background(), "nope")
	assert.True(t, errors.Is(err, ErrNotFound))
}
