package services

import (
	"context"
	"fmt"
	"log"

	"culturalstay/internal/models"
	"culturalstay/internal/repository"
	"culturalstay/internal/utils/push"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationService сохраняет уведомление в БД, шлёт письмо и,
// если у получателя есть device token, push. Вызывается синхронно
// на пути запроса: ошибка доставки — ошибка запроса.
type NotificationService struct {
	repo   repository.NotificationRepository
	users  repository.UserRepository
	mailer EmailService
	fcm    *push.FCMClient
}

func NewNotificationService(repo repository.NotificationRepository, users repository.UserRepository, mailer EmailService, fcm *push.FCMClient) *NotificationService {
	return &NotificationService{repo: repo, users: users, mailer: mailer, fcm: fcm}
}

func (s *NotificationService) BookingCreated(ctx context.Context, booking *models.Booking, hostProfile *models.Host, guest, hostUser *models.User) error {
	if err := s.deliver(ctx, guest, "guest", models.TypeBookingCreated,
		"Booking created",
		fmt.Sprintf("Your booking with %s %s is pending confirmation.", hostUser.FirstName, hostUser.LastName),
	); err != nil {
		return err
	}
	if err := s.deliver(ctx, hostUser, "host", models.TypeBookingCreated,
		"New booking received",
		fmt.Sprintf("You have a new booking request from %s %s.", guest.FirstName, guest.LastName),
	); err != nil {
		return err
	}
	return s.mailer.SendBookingConfirmation(booking, hostProfile, guest, hostUser)
}

func (s *NotificationService) BookingCancelled(ctx context.Context, booking *models.Booking, hostProfile *models.Host, guest, hostUser *models.User) error {
	if err := s.deliver(ctx, guest, "guest", models.TypeBookingCancelled,
		"Booking cancelled", "One of your bookings has been cancelled.",
	); err != nil {
		return err
	}
	if err := s.deliver(ctx, hostUser, "host", models.TypeBookingCancelled,
		"Booking cancelled", "One of your bookings has been cancelled.",
	); err != nil {
		return err
	}
	return s.mailer.SendBookingCancellation(booking, hostProfile, guest, hostUser)
}

func (s *NotificationService) BookingStatusChanged(ctx context.Context, recipient *models.User, role string, status models.BookingStatus) error {
	return s.deliver(ctx, recipient, role, models.TypeBookingStatus,
		"Booking status updated", fmt.Sprintf("One of your bookings is now %s.", status))
}

func (s *NotificationService) MessageReceived(ctx context.Context, recipient *models.User, role string, sender *models.User) error {
	return s.deliver(ctx, recipient, role, models.TypeMessageReceived,
		"New message", fmt.Sprintf("%s %s sent you a message.", sender.FirstName, sender.LastName))
}

func (s *NotificationService) ReviewReceived(ctx context.Context, review *models.Review) error {
	reviewee, err := s.users.GetByID(ctx, review.Reviewee)
	if err != nil {
		return err
	}
	role := "host"
	if review.Type == models.HostToGuest {
		role = "guest"
	}
	return s.deliver(ctx, reviewee, role, models.TypeReviewReceived,
		"New review received", "Someone left you a review. Check it out on your profile.")
}

func (s *NotificationService) deliver(ctx context.Context, user *models.User, role string, t models.NotificationType, title, message string) error {
	notification := &models.Notification{
		UserID:  user.ID,
		Role:    role,
		Title:   title,
		Message: message,
		Type:    t,
	}
	if err := s.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}

	if s.fcm != nil && user.DeviceToken != "" {
		if err := s.fcm.SendPushNotification(ctx, user.DeviceToken, title, message); err != nil {
			// протухший токен не должен ронять запрос
			log.Printf("Failed to send push to %s: %v", user.ID.Hex(), err)
		}
	}
	return nil
}

func (s *NotificationService) List(ctx context.Context, userID primitive.ObjectID, limit, offset int64) ([]models.Notification, error) {
	return s.repo.GetByUserID(ctx, userID, limit, offset)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID primitive.ObjectID) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}
