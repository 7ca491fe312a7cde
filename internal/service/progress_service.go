package service

import (
	"math"
	"sort"
	"time"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
)

// DayActivity is one weekday bucket of the trailing-7-day histogram.
type DayActivity struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// TrendPoint is one day of the trailing-30-day learning trend.
type TrendPoint struct {
	Date  string  `json:"date"`
	Score float64 `json:"score"`
}

// ProgressStats is the per-user summary view. Everything here is
// derived from append-only results; nothing is written back.
type ProgressStats struct {
	TotalWords         int           `json:"totalWords"`
	LearnedWords       int           `json:"learnedWords"`
	CurrentStreak      int           `json:"currentStreak"`
	LongestStreak      int           `json:"longestStreak"`
	QuizScore          int           `json:"quizScore"`
	TotalAnswers       int           `json:"totalAnswers"`
	OverallProgress    int           `json:"overallProgress"`
	WeeklyGoalProgress int           `json:"weeklyGoalProgress"`
	WeeklyActivity     []DayActivity `json:"weeklyActivity"`
	LearningTrends     []TrendPoint  `json:"learningTrends"`
}

// ProgressService composes result history and streak analysis into
// display statistics. Read-only, recomputed on every call.
type ProgressService struct {
	ResultRepo *repository.ResultRepository
	VocabRepo  *repository.VocabularyRepository

	weeklyGoal int
}

func NewProgressService(
	resultRepo *repository.ResultRepository,
	vocabRepo *repository.VocabularyRepository,
	engineCfg config.EngineConfig,
) *ProgressService {
	return &ProgressService{
		ResultRepo: resultRepo,
		VocabRepo:  vocabRepo,
		weeklyGoal: engineCfg.WeeklyGoal,
	}
}

func (s *ProgressService) ComputeStats(userID uint) (*ProgressStats, error) {
	results, err := s.ResultRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	totalWords, err := s.VocabRepo.Count()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	learned := s.learnedWordCount(results)

	activity := make([]time.Time, 0, len(results))
	scoreSum := 0
	for _, r := range results {
		activity = append(activity, r.CreatedAt)
		scoreSum += r.Score
	}

	quizScore := 0
	if len(results) > 0 {
		quizScore = int(math.Round(float64(scoreSum) / float64(len(results))))
	}

	weeklyActivity, weekCount := s.weeklyActivity(results, now)

	weeklyGoalProgress := int(math.Round(float64(weekCount) / float64(s.weeklyGoal) * 100))
	if weeklyGoalProgress > 100 {
		weeklyGoalProgress = 100
	}

	overall := int(math.Round(float64(learned) / math.Max(float64(totalWords), 1) * 100))

	return &ProgressStats{
		TotalWords:         int(totalWords),
		LearnedWords:       learned,
		CurrentStreak:      CurrentStreak(activity, now),
		LongestStreak:      LongestStreak(activity),
		QuizScore:          quizScore,
		TotalAnswers:       len(results),
		OverallProgress:    overall,
		WeeklyGoalProgress: weeklyGoalProgress,
		WeeklyActivity:     weeklyActivity,
		LearningTrends:     s.learningTrends(results, now),
	}, nil
}

// learnedWordCount applies the statistics-only learned bar: a word
// counts when the user has at least one correct answer for it and at
// least 80% of all answers for it were correct. Independent of the
// per-submission mastery flag on VocabularyProgress.
func (s *ProgressService) learnedWordCount(results []model.Result) int {
	type tally struct{ total, correct int }
	byVocab := make(map[uint]*tally)
	for _, r := range results {
		t, ok := byVocab[r.VocabID]
		if !ok {
			t = &tally{}
			byVocab[r.VocabID] = t
		}
		t.total++
		if r.IsCorrect {
			t.correct++
		}
	}

	learned := 0
	for _, t := range byVocab {
		if t.correct >= 1 && float64(t.correct)/float64(t.total) >= 0.8 {
			learned++
		}
	}
	return learned
}

// weeklyActivity buckets the trailing 7 days of answers by ISO
// weekday, Monday first. Returns the histogram and the total count.
func (s *ProgressService) weeklyActivity(results []model.Result, now time.Time) ([]DayActivity, int) {
	days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	counts := make(map[string]int, len(days))
	weekAgo := now.Add(-7 * 24 * time.Hour)

	total := 0
	for _, r := range results {
		if r.CreatedAt.Before(weekAgo) {
			continue
		}
		idx := (int(r.CreatedAt.UTC().Weekday()) + 6) % 7
		counts[days[idx]]++
		total++
	}

	histogram := make([]DayActivity, len(days))
	for i, day := range days {
		histogram[i] = DayActivity{Day: day, Count: counts[day]}
	}
	return histogram, total
}

// learningTrends averages per-answer scores (correct=100, incorrect=0)
// per UTC calendar day over the trailing 30 days, oldest first.
func (s *ProgressService) learningTrends(results []model.Result, now time.Time) []TrendPoint {
	cutoff := now.Add(-30 * 24 * time.Hour)
	type tally struct {
		sum   int
		count int
	}
	byDate := make(map[string]*tally)

	for _, r := range results {
		if r.CreatedAt.Before(cutoff) {
			continue
		}
		date := r.CreatedAt.UTC().Format("2006-01-02")
		t, ok := byDate[date]
		if !ok {
			t = &tally{}
			byDate[date] = t
		}
		if r.IsCorrect {
			t.sum += 100
		}
		t.count++
	}

	trends := make([]TrendPoint, 0, len(byDate))
	for date, t := range byDate {
		trends = append(trends, TrendPoint{
			Date:  date,
			Score: float64(t.sum) / float64(t.count),
		})
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Date < trends[j].Date })
	return trends
}
