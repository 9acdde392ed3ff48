package storage

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var errHSetRejected = errors.New("hset rejected")

// failFirstHSet makes the first HSET sent through the client fail, whether
// it is sent alone or inside a MULTI/EXEC block.
type failFirstHSet struct {
	fired atomic.Bool
}

func (h *failFirstHSet) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *failFirstHSet) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		if cmd.Name() == "hset" && h.fired.CompareAndSwap(false, true) {
			cmd.SetErr(errHSetRejected)
			return errHSetRejected
		}
		return next(ctx, cmd)
	}
}

func (h *failFirstHSet) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		for _, cmd := range cmds {
			if cmd.Name() == "hset" && h.fired.CompareAndSwap(false, true) {
				return errHSetRejected
			}
		}
		return next(ctx, cmds)
	}
}

func newRedisTestStore(t *testing.T) (*RedisQuizStore, *redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisQuizStore(client, ""), client, mr
}

func TestRedisQuizStore_Behaviour(t *testing.T) {
	testQuizStore(t, func(t *testing.T) QuizStore {
		s, _, _ := newRedisTestStore(t)
		return s
	})
}

func TestRedisQuizStore_Keys(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	s := NewRedisQuizStore(client, "")
	require.Equal(t, "quizzes:data", s.key(quizDataKey))

	s = NewRedisQuizStore(client, "trainer:")
	require.Equal(t, "trainer:questions", s.key(quizQuestionsKey))
	require.Equal(t, "trainer:seq", s.key(quizSeqKey))
}

func TestRedisQuizStore_Layout(t *testing.T) {
	s, _, mr := newRedisTestStore(t)
	ctx := context.Background()

	q, err := s.CreateQuiz(ctx, QuizInput{Question: "Capital de Italia", Answer: "Roma"})
	require.NoError(t, err)
	require.Equal(t, int64(1), q.ID)

	seq, err := mr.Get("quizzes:seq")
	require.NoError(t, err)
	require.Equal(t, "1", seq)
	require.Equal(t, "1", mr.HGet("quizzes:questions", "Capital de Italia"))
	require.JSONEq(t, `{"ID":1,"Question":"Capital de Italia","Answer":"Roma"}`, mr.HGet("quizzes:data", "1"))
}

func TestRedisQuizStore_FailedCreateLeavesQuestionFree(t *testing.T) {
	s, client, mr := newRedisTestStore(t)
	client.AddHook(&failFirstHSet{})
	ctx := context.Background()

	_, err := s.CreateQuiz(ctx, QuizInput{Question: "Capital de Italia", Answer: "Roma"})
	require.ErrorIs(t, err, errHSetRejected)
	require.Empty(t, mr.HGet("quizzes:questions", "Capital de Italia"))

	n, err := s.CountQuizzes(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	q, err := s.CreateQuiz(ctx, QuizInput{Question: "Capital de Italia", Answer: "Roma"})
	require.NoError(t, err)

	list, err := s.ListQuizzes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, q, list[0])
}

func TestRedisQuizStore_FailedUpdateKeepsOldQuiz(t *testing.T) {
	s, client, _ := newRedisTestStore(t)
	ctx := context.Background()

	q, err := s.CreateQuiz(ctx, QuizInput{Question: "Old", Answer: "A"})
	require.NoError(t, err)

	client.AddHook(&failFirstHSet{})
	_, err = s.UpdateQuiz(ctx, q.ID, QuizInput{Question: "New", Answer: "B"})
	require.ErrorIs(t, err, errHSetRejected)

	got, err := s.GetQuiz(ctx, q.ID)
	require.NoError(t, err)
	require.Equal(t, q, got)

	_, err = s.CreateQuiz(ctx, QuizInput{Question: "Old", Answer: "C"})
	require.ErrorIs(t, err, ErrDuplicateQuestion)

	_, err = s.CreateQuiz(ctx, QuizInput{Question: "New", Answer: "C"})
	require.NoError(t, err)
}
