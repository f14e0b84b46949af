// Package exam records mock exam attempts and summarizes a user's exam
// history.
package exam

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/muhammadolammi/careerworker/internal/database"
)

const (
	// PassingPercentage is the lowest percentage score that passes.
	PassingPercentage = 60.0
	// HistoryLimit is how many recent attempts a history covers.
	HistoryLimit      = 10

	StatusCompleted = "completed"
)

var ErrInvalidSubmission = errors.New("invalid exam submission")

// Submission is a finished exam as scored by the client.
type Submission struct {
	ExamTitle       string                     `json:"examTitle"`
	Industry        string                     `json:"industry"`
	Answers         map[string]json.RawMessage `json:"answers"`
	TotalScore      float64                    `json:"totalScore"`
	PercentageScore float64                    `json:"percentageScore"`
	CorrectAnswers  int                        `json:"correctAnswers"`
	TotalQuestions  int                        `json:"totalQuestions"`
	// TimeSpent is in seconds.
	TimeSpent       int                        `json:"timeSpent"`
}

type Answer struct {
	QuestionID string          `json:"questionId"`
	UserAnswer json.RawMessage `json:"userAnswer"`
}

func IsPassing(percentage float64) bool {
	return percentage >= PassingPercentage
}

func (s Submission) Validate() error {
	switch {
	case math.IsNaN(s.PercentageScore) || s.PercentageScore < 0 || s.PercentageScore > 100:
		return fmt.Errorf("%w: percentageScore must be between 0 and 100", ErrInvalidSubmission)
	case math.IsNaN(s.TotalScore) || math.IsInf(s.TotalScore, 0) || s.TotalScore < 0:
		return fmt.Errorf("%w: totalScore must be a non-negative number", ErrInvalidSubmission)
	case s.TimeSpent < 0 || s.TimeSpent > math.MaxInt32:
		return fmt.Errorf("%w: timeSpent out of range", ErrInvalidSubmission)
	case s.TotalQuestions < 0 || s.TotalQuestions > math.MaxInt32:
		return fmt.Errorf("%w: totalQuestions out of range", ErrInvalidSubmission)
	case s.CorrectAnswers < 0 || s.CorrectAnswers > s.TotalQuestions:
		return fmt.Errorf("%w: correctAnswers must be between 0 and totalQuestions", ErrInvalidSubmission)
	}
	return nil
}

// OrderedAnswers lists the answers sorted by question id.
func (s Submission) OrderedAnswers() []Answer {
	out := make([]Answer, 0, len(s.Answers))
	for id, answer := range s.Answers {
		if len(answer) == 0 {
			answer = json.RawMessage("null")
		}
		out = append(out, Answer{QuestionID: id, UserAnswer: answer})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuestionID < out[j].QuestionID })
	return out
}

// Attempt builds the stored record for a submission finished at now. The
// start time is derived from the time spent.
func (s Submission) Attempt(userID uuid.UUID, now time.Time) (database.CreateExamAttemptParams, error) {
	if err := s.Validate(); err != nil {
		return database.CreateExamAttemptParams{}, err
	}
	answers, err := json.Marshal(s.OrderedAnswers())
	if err != nil {
		return database.CreateExamAttemptParams{}, fmt.Errorf("failed to marshal answers: %w", err)
	}
	return database.CreateExamAttemptParams{
		UserID:          userID,
		ExamTitle:       s.ExamTitle,
		Industry:        s.Industry,
		StartTime:       now.Add(-time.Duration(s.TimeSpent) * time.Second),
		EndTime:         now,
		TimeSpent:       int32(s.TimeSpent),
		Status:          StatusCompleted,
		TotalScore:      s.TotalScore,
		PercentageScore: s.PercentageScore,
		CorrectAnswers:  int32(s.CorrectAnswers),
		TotalQuestions:  int32(s.TotalQuestions),
		IsPassing:       IsPassing(s.PercentageScore),
		Answers:         answers,
	}, nil
}

// Summary aggregates recent attempts.
type Summary struct {
	TotalAttempts int     `json:"totalAttempts"`
	AverageScore  float64 `json:"averageScore"`
}

// Summarize averages the total score of attempts, rounded to two decimals.
func Summarize(attempts []database.ExamAttempt) Summary {
	if len(attempts) == 0 {
		return Summary{}
	}
	var sum float64
	for _, a := range attempts {
		sum += a.TotalScore
	}
	avg := sum / float64(len(attempts))
	return Summary{
		TotalAttempts: len(attempts),
		AverageScore:  math.Round(avg*100) / 100,
	}
}
