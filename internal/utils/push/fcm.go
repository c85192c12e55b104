package push

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type FCMClient struct {
	App       *firebase.App
	Messaging *messaging.Client
}

// NewFCMClient reads a Firebase service account credentials JSON file.
func NewFCMClient(serviceAccountPath string) (*FCMClient, error) {
	opt := option.WithCredentialsFile(serviceAccountPath)

	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		return nil, err
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		return nil, err
	}

	return &FCMClient{App: app, Messaging: client}, nil
}

// SendPushNotification sends a push notification to a specific device token.
func (f *FCMClient) SendPushNotification(ctx context.Context, token, title, body string) error {
	msg := &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Token: token,
	}
	_, err := f.Messaging.Send(ctx, msg)
	return err
}
