package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"feedbackpro/internal/model"
	"feedbackpro/internal/repository"
	"feedbackpro/internal/service"
)

func main() {
	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "feedbackpro"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(dbName)
	accountRepo := repository.NewAccountRepo(db)
	surveyRepo := repository.NewSurveyRepo(db)
	responseRepo := repository.NewResponseRepo(db)

	// Demo account
	hash, _ := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	accountID, err := accountRepo.Create(ctx, &model.Account{
		Email:        "demo@feedbackpro.dev",
		Name:         "Demo Account",
		PasswordHash: hash,
	})
	if err != nil {
		log.Fatalf("Failed to create account: %v", err)
	}
	fmt.Printf("Account: demo@feedbackpro.dev / demo1234 (%s)\n", accountID)

	// Product feedback survey exercising all five question types
	product := &model.Survey{
		AccountID:   accountID,
		Title:       "Product Feedback",
		Description: "Tell us what you think of the new release.",
		Status:      model.SurveyActive,
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionRating, Title: "How would you rate the product overall?", Required: true},
			{ID: "q2", Type: model.QuestionLikert, Title: "The product is easy to use.", Scale: 5},
			{ID: "q3", Type: model.QuestionMultipleChoice, Title: "Which feature do you use most?", Options: []string{"Dashboards", "Surveys", "Exports"}},
			{ID: "q4", Type: model.QuestionYesNo, Title: "Would you recommend us to a colleague?"},
			{ID: "q5", Type: model.QuestionOpenEnded, Title: "What should we improve next?"},
		},
	}
	productID, err := surveyRepo.Create(ctx, product)
	if err != nil {
		log.Fatalf("Failed to create survey: %v", err)
	}

	onboarding := &model.Survey{
		AccountID:   accountID,
		Title:       "Onboarding Experience",
		Description: "A quick check-in after your first week.",
		Status:      model.SurveyActive,
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionRating, Title: "How smooth was your onboarding?", Required: true},
			{ID: "q2", Type: model.QuestionOpenEnded, Title: "What confused you the most?"},
		},
	}
	onboardingID, err := surveyRepo.Create(ctx, onboarding)
	if err != nil {
		log.Fatalf("Failed to create survey: %v", err)
	}

	// Spread responses across the trailing week so the trend has shape
	analyzer := service.NewPlaceholderAnalyzer()
	choices := []string{"Dashboards", "Surveys", "Exports"}
	yesNo := []string{"yes", "no"}

	seeded := 0
	for day := 6; day >= 0; day-- {
		count := rand.Intn(5) + 1
		for i := 0; i < count; i++ {
			answers := map[string]string{
				"q1": fmt.Sprint(rand.Intn(5) + 1),
				"q2": fmt.Sprint(rand.Intn(5) + 1),
				"q3": choices[rand.Intn(len(choices))],
				"q4": yesNo[rand.Intn(len(yesNo))],
			}
			score := analyzer.Score(product, answers)
			rate := float64(len(answers)) / float64(len(product.Questions)) * 100

			_, err := responseRepo.Create(ctx, &model.SurveyResponse{
				SurveyID:       productID,
				Answers:        answers,
				SentimentScore: &score,
				CompletionRate: &rate,
				SubmittedAt:    time.Now().AddDate(0, 0, -day).Add(-time.Duration(rand.Intn(8)) * time.Hour),
			})
			if err != nil {
				log.Fatalf("Failed to create response: %v", err)
			}
			seeded++
		}
	}

	// A couple of onboarding responses for the ranking
	for i := 0; i < 3; i++ {
		score := analyzer.Score(onboarding, nil)
		rate := 50.0
		_, err := responseRepo.Create(ctx, &model.SurveyResponse{
			SurveyID:       onboardingID,
			Answers:        map[string]string{"q1": fmt.Sprint(rand.Intn(5) + 1)},
			SentimentScore: &score,
			CompletionRate: &rate,
			SubmittedAt:    time.Now().AddDate(0, 0, -rand.Intn(7)),
		})
		if err != nil {
			log.Fatalf("Failed to create response: %v", err)
		}
		seeded++
	}

	fmt.Printf("Seeded surveys %s, %s with %d responses\n", productID, onboardingID, seeded)
}
