package auth

import (
	"context"
	"errors"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

// User is the authenticated operator.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

var ErrInvalidToken = errors.New("invalid token")

// TokenVerifier resolves a bearer ID token to a user.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (*User, error)
	// Enabled is false when no credentials were configured and every
	// request passes as the local operator.
	Enabled() bool
}

// FirebaseVerifier verifies Firebase ID tokens. With no credentials
// configured it degrades to a disabled verifier instead of failing startup:
// every request then resolves to a static local operator, and the condition
// is logged once.
type FirebaseVerifier struct {
	client *fbauth.Client
	log    *logrus.Logger
}

// NewFirebaseVerifier resolves credentials from FIREBASE_CREDENTIALS_PATH,
// then FIREBASE_CREDENTIALS_JSON (written to a temp file), then gives up
// and returns a disabled verifier.
func NewFirebaseVerifier(ctx context.Context, log *logrus.Logger) (*FirebaseVerifier, error) {
	credPath := os.Getenv("FIREBASE_CREDENTIALS_PATH")
	if credPath == "" {
		credJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
		if credJSON == "" {
			log.Warn("no Firebase credentials found, auth disabled")
			return &FirebaseVerifier{log: log}, nil
		}

		tmpFile, err := os.CreateTemp("", "firebase-credentials-*.json")
		if err != nil {
			return nil, fmt.Errorf("failed to create temp file: %w", err)
		}
		defer tmpFile.Close()

		if _, err := tmpFile.Write([]byte(credJSON)); err != nil {
			return nil, fmt.Errorf("failed to write credentials: %w", err)
		}
		credPath = tmpFile.Name()
	}

	opt := option.WithCredentialsFile(credPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting auth client: %w", err)
	}

	log.Info("Firebase auth initialized")
	return &FirebaseVerifier{client: client, log: log}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*User, error) {
	if v.client == nil {
		return &User{ID: "local", Email: "local@localhost"}, nil
	}
	if idToken == "" {
		return nil, ErrInvalidToken
	}

	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user := &User{ID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		user.Email = email
	}
	return user, nil
}

func (v *FirebaseVerifier) Enabled() bool {
	return v.client != nil
}

var _ TokenVerifier = (*FirebaseVerifier)(nil)
