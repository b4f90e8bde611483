package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedbackpro/internal/model"
)

type recordingSender struct {
	sent    []string
	failFor string
}

func (s *recordingSender) SendEmail(_ context.Context, to, _, _ string) error {
	return s.deliver(to)
}

func (s *recordingSender) SendSMS(_ context.Context, to, _ string) error {
	return s.deliver(to)
}

func (s *recordingSender) deliver(to string) error {
	if to == s.failFor {
		return fmt.Errorf("provider rejected %s", to)
	}
	s.sent = append(s.sent, to)
	return nil
}

func newDistributionFixture(t *testing.T) (*DistributionService, *recordingSender, string) {
	t.Helper()

	surveyRepo := newStubSurveyRepo()
	surveyID, err := surveyRepo.Create(context.Background(), &model.Survey{
		AccountID: "acct1",
		Title:     "Launch Survey",
		Status:    model.SurveyActive,
	})
	require.NoError(t, err)

	sender := &recordingSender{}
	notification := NewNotificationService(sender, sender)
	svc := NewDistributionService(surveyRepo, newStubShareCache(), notification,
		"https://feedback.example.com/", "https://qr.example.com/render")
	return svc, sender, surveyID
}

func TestShareLinkRoundTrip(t *testing.T) {
	svc, _, surveyID := newDistributionFixture(t)

	link, err := svc.CreateShareLink(context.Background(), "acct1", surveyID, 0)
	require.NoError(t, err)
	require.NotEmpty(t, link.Token)
	assert.True(t, link.ExpiresAt.IsZero(), "zero ttl means permanent")

	resolved, err := svc.Resolve(context.Background(), link.Token)
	require.NoError(t, err)
	assert.Equal(t, surveyID, resolved)

	_, err = svc.Resolve(context.Background(), "bogus")
	assert.ErrorIs(t, err, ErrShareLinkNotFound)
}

func TestShareLinkOwnership(t *testing.T) {
	svc, _, surveyID := newDistributionFixture(t)

	_, err := svc.CreateShareLink(context.Background(), "intruder", surveyID, 0)
	assert.ErrorIs(t, err, ErrNotSurveyOwner)

	_, err = svc.CreateShareLink(context.Background(), "acct1", "missing", 0)
	assert.ErrorIs(t, err, ErrSurveyNotFound)
}

func TestShareURLs(t *testing.T) {
	svc, _, _ := newDistributionFixture(t)

	url := svc.ShareURL("tok123")
	assert.Equal(t, "https://feedback.example.com/s/tok123", url, "trailing slash on the base is trimmed")

	qr := svc.QRCodeURL("tok123")
	assert.True(t, strings.HasPrefix(qr, "https://qr.example.com/render?size=200x200&data="))
	assert.Contains(t, qr, "https%3A%2F%2Ffeedback.example.com%2Fs%2Ftok123")

	widget := svc.WidgetSnippet("tok123")
	assert.Contains(t, widget, "<iframe")
	assert.Contains(t, widget, "https://feedback.example.com/s/tok123?embed=1")
}

func TestInviteByEmailReportsPerRecipient(t *testing.T) {
	svc, sender, surveyID := newDistributionFixture(t)
	sender.failFor = "bad@example.com"

	results, err := svc.InviteByEmail(context.Background(), "acct1", surveyID,
		[]string{"a@example.com", "bad@example.com", "b@example.com"})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.True(t, results[0].Sent)
	assert.False(t, results[1].Sent)
	assert.NotEmpty(t, results[1].Error)
	assert.True(t, results[2].Sent)

	// One attempt per recipient, no retries
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, sender.sent)
}

func TestInviteBySMSIncludesLink(t *testing.T) {
	svc, sender, surveyID := newDistributionFixture(t)

	results, err := svc.InviteBySMS(context.Background(), "acct1", surveyID, []string{"+15550100"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Sent)
	assert.Equal(t, []string{"+15550100"}, sender.sent)
}
