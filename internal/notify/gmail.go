package notify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailTransport delivers messages through the Gmail API on behalf of the
// authenticated account. Acceptance by the API is the delivery signal; the
// engine never assumes synchronous mailbox confirmation.
type GmailTransport struct {
	service *gmail.Service
}

// NewGmailTransport builds a transport from an OAuth client credentials file
// and a previously saved token file. Unlike an interactive tool, a service
// cannot prompt for consent, so a missing token is an error.
func NewGmailTransport(ctx context.Context, credentialsPath, tokenPath string) (*GmailTransport, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(b, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("unable to load oauth token (run the authorization flow first): %w", err)
	}

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(config.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail client: %w", err)
	}

	return &GmailTransport{service: srv}, nil
}

// Send submits one RFC-822 message. API errors are reported as transport
// failures so the dispatcher's retry policy applies.
func (t *GmailTransport) Send(ctx context.Context, to, subject, body string) error {
	raw := fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body)

	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	if _, err := t.service.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		return wrapTransport(err)
	}
	return nil
}

// tokenFromFile retrieves a token from a local file
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}
