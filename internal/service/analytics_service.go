package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"feedbackpro/internal/cache"
	"feedbackpro/internal/model"
	"feedbackpro/internal/repository"
)

// Sentiment bucket labels, highest first. Boundaries are deliberately
// uneven: [4.5,5] / [3.5,4.5) / [2.5,3.5) / [1.5,2.5) / [0,1.5).
var sentimentLabels = []string{"Very Positive", "Positive", "Neutral", "Negative", "Very Negative"}

// Channel split proportions for responsesByChannel. The split is an
// illustrative placeholder, not measured attribution; replace only when
// real channel tracking exists.
var channelRatios = []struct {
	channel model.Channel
	percent int
}{
	{model.ChannelEmail, 40},
	{model.ChannelDirectLink, 30},
	{model.ChannelSocialMedia, 20},
	{model.ChannelQRCode, 10},
}

// topSurveyLimit caps the ranked survey list
const topSurveyLimit = 5

// trendDays is the length of the trailing response trend
const trendDays = 7

// AnalyticsService computes dashboard rollups from surveys and responses
type AnalyticsService struct {
	surveyRepo   repository.SurveyRepo
	responseRepo repository.ResponseRepo
	summaryCache cache.SummaryCache
	now          func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(surveyRepo repository.SurveyRepo, responseRepo repository.ResponseRepo, summaryCache cache.SummaryCache) *AnalyticsService {
	return &AnalyticsService{
		surveyRepo:   surveyRepo,
		responseRepo: responseRepo,
		summaryCache: summaryCache,
		now:          time.Now,
	}
}

// Summary returns the dashboard rollup for an account, serving a cached
// copy when one is fresh. The window filters which responses feed the
// aggregate fields; see Aggregate for the one field that ignores it.
func (s *AnalyticsService) Summary(ctx context.Context, accountID string, window model.Window) (*model.AnalyticsSummary, error) {
	windowKey := fmt.Sprintf("%s:%s", window.Start.Format("2006-01-02"), window.End.Format("2006-01-02"))

	if s.summaryCache != nil {
		if cached, err := s.summaryCache.Get(ctx, accountID, windowKey); err == nil && cached != nil {
			return cached, nil
		}
	}

	surveys, err := s.surveyRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	surveyIDs := make([]string, len(surveys))
	for i, sv := range surveys {
		surveyIDs[i] = sv.ID
	}

	var responses []*model.SurveyResponse
	if len(surveyIDs) > 0 {
		responses, err = s.responseRepo.GetBySurveyIDs(ctx, surveyIDs, window.Start, window.End)
		if err != nil {
			return nil, err
		}
	}

	summary := s.Aggregate(surveys, responses, window)

	if s.summaryCache != nil {
		if err := s.summaryCache.Set(ctx, accountID, windowKey, summary); err != nil {
			log.Printf("summary cache set failed for account %s: %v", accountID, err)
		}
	}

	return summary, nil
}

// Aggregate computes the full analytics summary from already-fetched rows.
// It is pure and synchronous, never returns an error, and treats malformed
// or absent numeric fields as "not counted" rather than zero.
//
// The caller pre-filters responses to the window; Aggregate does not
// re-filter, with one intentional exception: the response trend always
// anchors at today and spans the trailing 7 local calendar days regardless
// of the window. That divergence is inherited behavior; see DESIGN.md
// before unifying the two windows.
func (s *AnalyticsService) Aggregate(surveys []*model.Survey, responses []*model.SurveyResponse, window model.Window) *model.AnalyticsSummary {
	summary := &model.AnalyticsSummary{
		TotalSurveys:   len(surveys),
		TotalResponses: len(responses),
		GeneratedAt:    s.now(),
	}

	summary.AverageSentiment = meanOfPositive(responses, func(r *model.SurveyResponse) *float64 { return r.SentimentScore })
	summary.CompletionRate = meanOfPositive(responses, func(r *model.SurveyResponse) *float64 { return r.CompletionRate })
	summary.ResponseTrend = s.responseTrend(responses)
	summary.SentimentDistribution = sentimentDistribution(responses)
	summary.TopPerformingSurveys = topPerformingSurveys(surveys, responses)
	summary.ResponsesByChannel = responsesByChannel(len(responses))

	return summary
}

// meanOfPositive averages a numeric field over the responses where it is
// present and strictly positive. An explicit 0 is excluded from both the
// numerator and the denominator, matching the upstream truthiness rule.
// Returns 0 when no response qualifies.
func meanOfPositive(responses []*model.SurveyResponse, field func(*model.SurveyResponse) *float64) float64 {
	var sum float64
	var count int
	for _, r := range responses {
		v := field(r)
		if v == nil || *v <= 0 || math.IsNaN(*v) {
			continue
		}
		sum += *v
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// responseTrend buckets responses into the trailing 7 local calendar days
// ending today. Always returns exactly 7 entries.
func (s *AnalyticsService) responseTrend(responses []*model.SurveyResponse) []model.TrendPoint {
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	trend := make([]model.TrendPoint, 0, trendDays)
	for i := trendDays - 1; i >= 0; i-- {
		dayStart := today.AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)

		count := 0
		for _, r := range responses {
			t := r.SubmittedAt.In(now.Location())
			if !t.Before(dayStart) && t.Before(dayEnd) {
				count++
			}
		}

		trend = append(trend, model.TrendPoint{
			Day:   dayStart.Weekday().String()[:3],
			Count: count,
		})
	}
	return trend
}

// sentimentDistribution splits sentiment-bearing responses into the five
// fixed buckets and converts each to an integer percentage. A recorded 0
// lands in Very Negative; a nil score is skipped entirely. All buckets
// report 0 when no response carries a score.
func sentimentDistribution(responses []*model.SurveyResponse) []model.SentimentBucket {
	counts := make([]int, len(sentimentLabels))
	total := 0
	for _, r := range responses {
		if r.SentimentScore == nil {
			continue
		}
		total++
		switch score := *r.SentimentScore; {
		case score >= 4.5:
			counts[0]++
		case score >= 3.5:
			counts[1]++
		case score >= 2.5:
			counts[2]++
		case score >= 1.5:
			counts[3]++
		default:
			counts[4]++
		}
	}

	buckets := make([]model.SentimentBucket, len(sentimentLabels))
	for i, label := range sentimentLabels {
		percent := 0
		if total > 0 {
			percent = int(math.Round(float64(counts[i]) / float64(total) * 100))
		}
		buckets[i] = model.SentimentBucket{Label: label, Percent: percent}
	}
	return buckets
}

// topPerformingSurveys ranks surveys descending by response count and
// truncates to the top 5. The sort is stable: ties keep input order.
func topPerformingSurveys(surveys []*model.Survey, responses []*model.SurveyResponse) []model.SurveyRank {
	countByID := make(map[string]int)
	for _, r := range responses {
		countByID[r.SurveyID]++
	}

	ranked := make([]model.SurveyRank, 0, len(surveys))
	for _, sv := range surveys {
		ranked = append(ranked, model.SurveyRank{
			SurveyID:      sv.ID,
			Title:         sv.Title,
			ResponseCount: countByID[sv.ID],
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ResponseCount > ranked[j].ResponseCount
	})

	if len(ranked) > topSurveyLimit {
		ranked = ranked[:topSurveyLimit]
	}
	return ranked
}

// responsesByChannel splits the response total into fixed illustrative
// proportions using floor division. Deterministic placeholder until real
// channel attribution is recorded at intake.
func responsesByChannel(total int) []model.ChannelCount {
	counts := make([]model.ChannelCount, len(channelRatios))
	for i, ratio := range channelRatios {
		counts[i] = model.ChannelCount{
			Channel: string(ratio.channel),
			Count:   total * ratio.percent / 100,
		}
	}
	return counts
}
