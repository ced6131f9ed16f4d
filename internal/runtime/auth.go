package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"quantumtie/internal/domain"
)

// DefaultIAMURL is the IBM Cloud token endpoint.
const DefaultIAMURL = "https://iam.cloud.ibm.com/identity/token"

// refreshMargin is how long before expiry a cached token is replaced.
const refreshMargin = time.Minute

// authenticator produces bearer tokens for an account.
type authenticator struct {
	account domain.Account
	iamURL  string
	http    *http.Client
	now     func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

func (a *authenticator) bearer(ctx context.Context) (string, error) {
	if !a.account.Channel.UsesIAM() {
		return a.account.Token, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.token != "" && a.now().Before(a.expires.Add(-refreshMargin)) {
		return a.token, nil
	}

	form := url.Values{
		"grant_type": {"urn:ibm:params:oauth:grant-type:apikey"},
		"apikey":     {a.account.Token},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.iamURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := a.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("iam token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", &APIError{Method: http.MethodPost, Path: "iam token", Status: resp.Status, Code: resp.StatusCode}
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("iam token: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("iam token: empty access token")
	}
	a.token = tr.AccessToken
	a.expires = a.now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	return a.token, nil
}
