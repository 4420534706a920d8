// Package remote holds the optional best-effort collaborators: the
// remote user-table mirror written on signup and the remote order
// history source. Failures here are reported to callers, who log and
// fall back; nothing in this package is load-bearing.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ionecenter/marketplace/internal/core/domain"
	"github.com/ionecenter/marketplace/internal/core/port"
	"github.com/ionecenter/marketplace/pkg/retry"
)

const requestTimeout = 5 * time.Second

var _ port.UserMirror = (*UsersMirror)(nil)

// UsersMirror pushes public user records to a remote HTTP store.
type UsersMirror struct {
	url    string
	token  string
	client *http.Client
}

func NewUsersMirror(url, token string) UsersMirror {
	return UsersMirror{
		url:    url,
		token:  token,
		client: &http.Client{Timeout: requestTimeout},
	}
}

// MirrorUser PUTs the record, retrying transient failures with a linear
// backoff.
func (m UsersMirror) MirrorUser(ctx context.Context, u domain.User) error {
	const op = "UsersMirror.MirrorUser"

	body, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	retryCfg := retry.RetryConfig{
		MaxAttempts: 3,
		Backoff:     retry.LinearBackoff(200 * time.Millisecond),
	}

	err = retry.Do(ctx, retryCfg, func() error {
		return m.put(ctx, body)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (m UsersMirror) put(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPut, m.url, bytes.NewReader(body),
	)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if m.token != "" {
		req.Header.Set("Authorization", "Bearer "+m.token)
	}

	res, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status: %s", res.Status)
	}
	return nil
}
