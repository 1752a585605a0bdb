package notifications

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/mailer"
)

// Service fans a message out to an in-app notification row and an email.
// Every send is best-effort: failures are logged and swallowed so a broken
// mailbox can never roll back the order/refund transition it is attached to.
type Service struct {
	db       *gorm.DB
	mail     mailer.Service
	from     string
	fromName string
	logger   *slog.Logger
}

func NewService(db *gorm.DB, mail mailer.Service, from, fromName string) *Service {
	return &Service{db: db, mail: mail, from: from, fromName: fromName, logger: slog.Default()}
}

func (s *Service) SetLogger(l *slog.Logger) { s.logger = l }

func (s *Service) Notify(ctx context.Context, userID, title, body string) {
	n := Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		s.logger.WarnContext(ctx, "in-app notification failed", "user_id", userID, "title", title, "err", err)
	}

	if s.mail == nil {
		return
	}
	email := s.lookupEmail(ctx, userID)
	if email == "" {
		return
	}
	e := mailer.Email{
		FromName: s.fromName,
		From:     s.from,
		To:       []string{email},
		Subject:  title,
		TextBody: body,
	}
	if err := s.mail.Send(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "notification email failed", "user_id", userID, "title", title, "err", err)
	}
}

func (s *Service) lookupEmail(ctx context.Context, userID string) string {
	var email string
	if err := s.db.WithContext(ctx).Table("users").Select("email").Where("id = ?", userID).Scan(&email).Error; err != nil {
		s.logger.WarnContext(ctx, "email lookup failed", "user_id", userID, "err", err)
		return ""
	}
	return email
}
