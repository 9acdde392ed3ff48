package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
)

func DefaultQuizzes() []QuizInput {
	return []QuizInput{
		{Question: "Capital de Italia", Answer: "Roma"},
		{Question: "Capital de Francia", Answer: "París"},
		{Question: "Capital de España", Answer: "Madrid"},
		{Question: "Capital de Portugal", Answer: "Lisboa"},
	}
}

// ParseCSV reads "question,answer" records. Lines starting with # are skipped.
func ParseCSV(r io.Reader) ([]QuizInput, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse quiz csv: %w", err)
	}

	inputs := lo.Map(records, func(rec []string, _ int) QuizInput {
		return QuizInput{
			Question: strings.TrimSpace(rec[0]),
			Answer:   strings.TrimSpace(rec[1]),
		}
	})
	for i, in := range inputs {
		if in.Question == "" || in.Answer == "" {
			return nil, fmt.Errorf("quiz csv record %d: empty question or answer", i+1)
		}
	}
	return inputs, nil
}

func LoadSeedFile(path string) ([]QuizInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	return ParseCSV(f)
}

// Seed inserts inputs into an empty store. A store that already holds quizzes
// is left alone. It returns how many quizzes were created.
func Seed(ctx context.Context, store QuizStore, inputs []QuizInput) (int, error) {
	n, err := store.CountQuizzes(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}

	created := 0
	for _, in := range inputs {
		if _, err := store.CreateQuiz(ctx, in); err != nil {
			if errors.Is(err, ErrDuplicateQuestion) {
				continue
			}
			return created, err
		}
		created++
	}
	return created, nil
}
