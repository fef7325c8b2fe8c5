package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const user = "me"

// Client wraps the slice of the Gmail API needed for harvesting:
// listing message IDs by query and fetching individual messages.
type Client struct {
	svc *gmail.Service
}

// NewClient builds a read-only Gmail client from OAuth client
// credentials, caching the user token at tokenPath. When no cached
// token exists the authorization URL is printed and the verification
// code read from stdin.
func NewClient(ctx context.Context, credentialsPath, tokenPath string) (*Client, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("reading credentials: %w", err)
	}
	conf, err := google.ConfigFromJSON(data, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		tok, err = tokenFromWeb(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, tok); err != nil {
			return nil, err
		}
	}

	svc, err := gmail.NewService(ctx, option.WithTokenSource(conf.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("creating gmail service: %w", err)
	}
	return &Client{svc: svc}, nil
}

var errEnough = errors.New("collected enough messages")

// List returns the IDs of messages matching query, following result
// pages until max IDs have been collected or the listing runs out.
func (c *Client) List(ctx context.Context, query string, max int64) ([]string, error) {
	var ids []string
	call := c.svc.Users.Messages.List(user).Q(query).MaxResults(max)
	err := call.Pages(ctx, func(resp *gmail.ListMessagesResponse) error {
		for _, m := range resp.Messages {
			ids = append(ids, m.Id)
			if int64(len(ids)) >= max {
				return errEnough
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errEnough) {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return ids, nil
}

// Message is one alert mail: its subject line and decoded HTML body.
type Message struct {
	Subject string
	HTML    []byte
}

func (c *Client) Fetch(ctx context.Context, id string) (*Message, error) {
	msg, err := c.svc.Users.Messages.Get(user, id).Format("full").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("fetching message %s: %w", id, err)
	}
	return &Message{
		Subject: subject(msg.Payload),
		HTML:    htmlBody(msg.Payload),
	}, nil
}

func subject(p *gmail.MessagePart) string {
	if p == nil {
		return ""
	}
	for _, h := range p.Headers {
		if strings.EqualFold(h.Name, "Subject") {
			return h.Value
		}
	}
	return ""
}

// htmlBody finds the message body: a top-level body if present,
// otherwise the first text/html part, descending into nested
// multipart containers.
func htmlBody(p *gmail.MessagePart) []byte {
	if p == nil {
		return nil
	}
	if p.Body != nil && p.Body.Data != "" {
		return decodeBody(p.Body.Data)
	}
	for _, part := range p.Parts {
		if part.MimeType == "text/html" && part.Body != nil && part.Body.Data != "" {
			return decodeBody(part.Body.Data)
		}
	}
	for _, part := range p.Parts {
		if b := htmlBody(part); b != nil {
			return b
		}
	}
	return nil
}

// decodeBody handles both padded and unpadded URL-safe base64, which
// the API is inconsistent about.
func decodeBody(data string) []byte {
	b, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		b, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return nil
		}
	}
	return b
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("parsing token file: %w", err)
	}
	return tok, nil
}

func tokenFromWeb(ctx context.Context, conf *oauth2.Config) (*oauth2.Token, error) {
	authURL := conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(os.Stderr, "Visit this URL, authorize the app, then paste the code here:\n%v\n> ", authURL)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("reading authorization code: %w", err)
	}
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	return tok, nil
}

func saveToken(path string, tok *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("caching token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(tok)
}
