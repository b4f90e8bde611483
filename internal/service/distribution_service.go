package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"feedbackpro/internal/cache"
	"feedbackpro/internal/model"
	"feedbackpro/internal/repository"
)

// ErrShareLinkNotFound covers missing and expired tokens alike
var ErrShareLinkNotFound = fmt.Errorf("share link not found")

// DistributionService manages the ways a survey reaches respondents:
// share links, QR codes over those links, email/SMS invitations, and the
// embeddable widget snippet.
type DistributionService struct {
	surveyRepo   repository.SurveyRepo
	shareCache   cache.ShareCache
	notification *NotificationService
	publicBase   string // e.g. https://feedbackpro.example.com
	qrAPIBase    string // third-party QR image renderer
}

// NewDistributionService creates a new distribution service
func NewDistributionService(
	surveyRepo repository.SurveyRepo,
	shareCache cache.ShareCache,
	notification *NotificationService,
	publicBase, qrAPIBase string,
) *DistributionService {
	return &DistributionService{
		surveyRepo:   surveyRepo,
		shareCache:   shareCache,
		notification: notification,
		publicBase:   strings.TrimRight(publicBase, "/"),
		qrAPIBase:    qrAPIBase,
	}
}

// CreateShareLink mints a public token for a survey. ttl of zero makes the
// link permanent.
func (s *DistributionService) CreateShareLink(ctx context.Context, accountID, surveyID string, ttl time.Duration) (*model.ShareLink, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if survey == nil {
		return nil, ErrSurveyNotFound
	}
	if survey.AccountID != accountID {
		return nil, ErrNotSurveyOwner
	}

	link := &model.ShareLink{
		Token:     uuid.New().String(),
		SurveyID:  surveyID,
		CreatedAt: time.Now(),
	}
	if ttl > 0 {
		link.ExpiresAt = link.CreatedAt.Add(ttl)
	}

	if err := s.shareCache.Set(ctx, link, ttl); err != nil {
		return nil, err
	}
	return link, nil
}

// Resolve maps a share token back to its survey id.
func (s *DistributionService) Resolve(ctx context.Context, token string) (string, error) {
	link, err := s.shareCache.Get(ctx, token)
	if err != nil {
		return "", err
	}
	if link == nil {
		return "", ErrShareLinkNotFound
	}
	return link.SurveyID, nil
}

// ShareURL is the public respondent-facing URL for a token.
func (s *DistributionService) ShareURL(token string) string {
	return fmt.Sprintf("%s/s/%s", s.publicBase, token)
}

// QRCodeURL builds the third-party image-render URL for a share link. QR
// generation itself is delegated; we only hand out the URL.
func (s *DistributionService) QRCodeURL(token string) string {
	return fmt.Sprintf("%s?size=200x200&data=%s", s.qrAPIBase, url.QueryEscape(s.ShareURL(token)))
}

// WidgetSnippet is the embeddable HTML snippet for a share link.
func (s *DistributionService) WidgetSnippet(token string) string {
	return fmt.Sprintf(
		`<iframe src="%s?embed=1" style="width:100%%;height:600px;border:0" title="Feedback survey"></iframe>`,
		s.ShareURL(token),
	)
}

// InviteByEmail creates (or reuses) nothing; it sends the survey link to
// each address through the notification layer and returns per-recipient
// outcomes.
func (s *DistributionService) InviteByEmail(ctx context.Context, accountID, surveyID string, recipients []string) ([]model.InviteResult, error) {
	survey, link, err := s.ownedLink(ctx, accountID, surveyID)
	if err != nil {
		return nil, err
	}

	invites := make([]model.Invite, len(recipients))
	for i, to := range recipients {
		invites[i] = model.Invite{
			Recipient: to,
			Message:   fmt.Sprintf("You're invited to take the survey %q: %s", survey.Title, s.ShareURL(link.Token)),
		}
	}
	return s.notification.SendEmailInvites(ctx, "We'd love your feedback", invites), nil
}

// InviteBySMS sends the survey link to each phone number.
func (s *DistributionService) InviteBySMS(ctx context.Context, accountID, surveyID string, recipients []string) ([]model.InviteResult, error) {
	survey, link, err := s.ownedLink(ctx, accountID, surveyID)
	if err != nil {
		return nil, err
	}

	invites := make([]model.Invite, len(recipients))
	for i, to := range recipients {
		invites[i] = model.Invite{
			Recipient: to,
			Message:   fmt.Sprintf("%s: %s", survey.Title, s.ShareURL(link.Token)),
		}
	}
	return s.notification.SendSMSInvites(ctx, invites), nil
}

func (s *DistributionService) ownedLink(ctx context.Context, accountID, surveyID string) (*model.Survey, *model.ShareLink, error) {
	survey, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, nil, err
	}
	if survey == nil {
		return nil, nil, ErrSurveyNotFound
	}
	if survey.AccountID != accountID {
		return nil, nil, ErrNotSurveyOwner
	}

	link, err := s.CreateShareLink(ctx, accountID, surveyID, 0)
	if err != nil {
		return nil, nil, err
	}
	return survey, link, nil
}
