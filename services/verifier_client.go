// rps-frame-server/services/verifier_client.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"rps-frame-server/logger"
	"rps-frame-server/models"
	"rps-frame-server/utils"
)

var (
	// ErrMissingSignature means the callback body carried no signed
	// message at all.
	ErrMissingSignature = errors.New("frame action carries no signed message")

	// ErrInvalidSignature means the verification service rejected the
	// signed message.
	ErrInvalidSignature = errors.New("frame action signature rejected")
)

// ActionVerifier turns a signed frame action blob into a verified
// identity, button index and callback URL. Tests swap in a stub.
type ActionVerifier interface {
	VerifyAction(ctx context.Context, messageBytesInHex string) (*models.VerifiedAction, error)
}

type FrameVerifierClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewFrameVerifierClient(baseURL, apiKey string, timeout time.Duration) *FrameVerifierClient {
	return &FrameVerifierClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  utils.NewHTTPClient(timeout),
	}
}

type validateRequest struct {
	MessageBytesInHex string `json:"message_bytes_in_hex"`
}

type validateResponse struct {
	Valid  bool `json:"valid"`
	Action struct {
		Interactor struct {
			FID int64 `json:"fid"`
		} `json:"interactor"`
		TappedButton struct {
			Index int `json:"index"`
		} `json:"tapped_button"`
		URL string `json:"url"`
	} `json:"action"`
}

// VerifyAction calls /v1/frame/validate on the verification service.
func (c *FrameVerifierClient) VerifyAction(ctx context.Context, messageBytesInHex string) (*models.VerifiedAction, error) {
	if messageBytesInHex == "" {
		return nil, ErrMissingSignature
	}

	endpoint := fmt.Sprintf("%s/v1/frame/validate", c.BaseURL)

	jsonData, _ := json.Marshal(validateRequest{MessageBytesInHex: messageBytesInHex})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("api_key", c.APIKey)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		logger.Log.Warnw("verifier returned non-200", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("frame validation failed: %d", resp.StatusCode)
	}

	var out validateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}

	if !out.Valid {
		return nil, ErrInvalidSignature
	}

	return &models.VerifiedAction{
		FID:         out.Action.Interactor.FID,
		ButtonIndex: out.Action.TappedButton.Index,
		QueryParams: queryParamsOf(out.Action.URL),
	}, nil
}

// queryParamsOf flattens the query string of the signed callback URL.
// Repeated keys keep the first value.
func queryParamsOf(rawURL string) map[string]string {
	params := map[string]string{}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return params
	}
	for key, values := range parsed.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}
