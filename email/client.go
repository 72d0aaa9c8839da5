package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/safetrack/ehs-platform/config"
)

// Client posts transactional mail to the configured email API (Resend-style
// JSON endpoint). When EMAIL_ENABLED is false every send is a no-op so
// local setups work without credentials.
type Client struct {
	httpClient *http.Client
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (c *Client) send(msg message) error {
	if !config.EmailEnabled {
		return nil
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, config.EmailAPIURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+config.EmailAPIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("email API returned status %d", resp.StatusCode)
	}
	return nil
}

// SendWelcome mails login credentials to a freshly created member account.
func (c *Client) SendWelcome(to, orgName, username, password string) error {
	html := fmt.Sprintf(
		"<p>Welcome to %s on SafeTrack.</p>"+
			"<p>Your account has been created:</p>"+
			"<p>Username: <strong>%s</strong><br>Temporary password: <strong>%s</strong></p>"+
			"<p>Please sign in and change your password.</p>",
		orgName, username, password,
	)
	return c.send(message{
		From:    config.EmailFrom,
		To:      []string{to},
		Subject: fmt.Sprintf("Welcome to %s", orgName),
		HTML:    html,
	})
}
