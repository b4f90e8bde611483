package model

import "time"

// Window bounds the responses handed to the aggregator. Callers filter by
// it before aggregating; the aggregator itself only uses it for counts, not
// for re-filtering.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TrendPoint is one day's response count in the trailing-week trend.
type TrendPoint struct {
	Day   string `json:"day"` // weekday label, e.g. "Mon"
	Count int    `json:"count"`
}

// SentimentBucket is one labeled slice of the sentiment distribution,
// expressed as an integer percentage of sentiment-bearing responses.
type SentimentBucket struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}

// SurveyRank is one entry of the top-performing list.
type SurveyRank struct {
	SurveyID      string `json:"surveyId"`
	Title         string `json:"title"`
	ResponseCount int    `json:"responseCount"`
}

// ChannelCount is one entry of the per-channel response split.
type ChannelCount struct {
	Channel string `json:"channel"`
	Count   int    `json:"count"`
}

// AnalyticsSummary is the dashboard rollup. Derived on demand from surveys
// and responses, never stored as its own entity (the Redis copy is a pure
// cache with a short TTL).
type AnalyticsSummary struct {
	TotalSurveys          int               `json:"totalSurveys"`
	TotalResponses        int               `json:"totalResponses"`
	AverageSentiment      float64           `json:"averageSentiment"`
	CompletionRate        float64           `json:"completionRate"`
	ResponseTrend         []TrendPoint      `json:"responseTrend"`
	SentimentDistribution []SentimentBucket `json:"sentimentDistribution"`
	TopPerformingSurveys  []SurveyRank      `json:"topPerformingSurveys"`
	ResponsesByChannel    []ChannelCount    `json:"responsesByChannel"`
	GeneratedAt           time.Time         `json:"generatedAt"`
}
