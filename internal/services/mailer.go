package services

import (
	"fmt"
	"net/smtp"
	"strings"

	"culturalstay/internal/models"
)

type EmailService interface {
	SendBookingConfirmation(booking *models.Booking, hostProfile *models.Host, guest, hostUser *models.User) error
	SendBookingCancellation(booking *models.Booking, hostProfile *models.Host, guest, hostUser *models.User) error
}

type SMTPMailer struct {
	Host        string
	Port        string
	Username    string
	Password    string
	From        string
	FrontendURL string
}

func NewSMTPMailer(host, port, username, password, from, frontendURL string) *SMTPMailer {
	return &SMTPMailer{
		Host:        host,
		Port:        port,
		Username:    username,
		Password:    password,
		From:        from,
		FrontendURL: frontendURL,
	}
}

func (m *SMTPMailer) send(to []string, subject, htmlBody string) error {
	auth := smtp.PlainAuth("", m.Username, m.Password, m.Host)
	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		m.From, strings.Join(to, ", "), subject, htmlBody,
	)
	addr := fmt.Sprintf("%s:%s", m.Host, m.Port)
	return smtp.SendMail(addr, auth, m.From, to, []byte(message))
}

func bookingDetails(b *models.Booking, hostProfile *models.Host) string {
	return fmt.Sprintf(
		`<div style="background-color: #f9f9f9; padding: 15px; border-radius: 6px; margin: 20px 0;">
<h3>Booking Details:</h3>
<p><strong>Experience:</strong> %s</p>
<p><strong>Location:</strong> %s</p>
<p><strong>Check-in:</strong> %s</p>
<p><strong>Check-out:</strong> %s</p>
<p><strong>Guests:</strong> %d adults</p>
<p><strong>Total:</strong> $%.2f</p>
</div>`,
		b.Experience,
		hostProfile.FullAddress(),
		b.CheckIn.Format("Mon Jan 2 2006"),
		b.CheckOut.Format("Mon Jan 2 2006"),
		b.Guests.Adults,
		b.Pricing.Total,
	)
}

func (m *SMTPMailer) SendBookingConfirmation(booking *models.Booking, hostProfile *models.Host, guest, hostUser *models.User) error {
	guestName := guest.FirstName + " " + guest.LastName
	hostName := hostUser.FirstName + " " + hostUser.LastName

	guestBody := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2>Booking Confirmed!</h2>
<p>Hi %s,</p>
<p>Your booking with %s has been confirmed!</p>
%s
<p><a href="%s/bookings">View your bookings</a></p>
<p>Have a wonderful cultural experience!</p>
</div>`,
		guestName, hostName, bookingDetails(booking, hostProfile), m.FrontendURL,
	)
	if err := m.send([]string{guest.Email}, "Booking Confirmation - CulturalStay", guestBody); err != nil {
		return err
	}

	hostBody := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2>New Booking Received!</h2>
<p>Hi %s,</p>
<p>You have a new booking from %s!</p>
%s
<p><a href="%s/bookings">View your bookings</a></p>
<p>Please prepare for your guests' arrival!</p>
</div>`,
		hostName, guestName, bookingDetails(booking, hostProfile), m.FrontendURL,
	)
	return m.send([]string{hostUser.Email}, "New Booking Received - CulturalStay", hostBody)
}

func (m *SMTPMailer) SendBookingCancellation(booking *models.Booking, hostProfile *models.Host, guest, hostUser *models.User) error {
	guestName := guest.FirstName + " " + guest.LastName
	hostName := hostUser.FirstName + " " + hostUser.LastName

	reason := booking.Cancellation.Reason
	if reason == "" {
		reason = "No reason provided"
	}

	body := fmt.Sprintf(
		`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
<h2>Booking Cancelled</h2>
<p>The booking between %s and %s has been cancelled.</p>
%s
<p><strong>Cancelled by:</strong> %s</p>
<p><strong>Reason:</strong> %s</p>
<p>If you have any questions, please contact our support team.</p>
</div>`,
		guestName, hostName, bookingDetails(booking, hostProfile),
		booking.Cancellation.CancelledBy, reason,
	)
	return m.send([]string{guest.Email, hostUser.Email}, "Booking Cancelled - CulturalStay", body)
}
