package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/stewartburton/brainblitz/internal/domain"
)

// QuestionLoader loads the active trivia catalog from Postgres.
type QuestionLoader struct {
	pool *pgxpool.Pool
}

func NewQuestionLoader(pool *pgxpool.Pool) *QuestionLoader {
	return &QuestionLoader{pool: pool}
}

func (l *QuestionLoader) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	rows, err := l.pool.Query(ctx, `
		SELECT id, category, difficulty, question, correct_answer,
		       incorrect_answers, explanation, fun_fact, is_premium
		FROM questions
		WHERE is_active`)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		var q domain.Question
		var explanation, funFact *string
		if err := rows.Scan(&q.ID, &q.Category, &q.Difficulty, &q.Question,
			&q.CorrectAnswer, &q.IncorrectAnswers, &explanation, &funFact, &q.IsPremium); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if explanation != nil {
			q.Explanation = *explanation
		}
		if funFact != nil {
			q.FunFact = *funFact
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}
	return questions, nil
}
