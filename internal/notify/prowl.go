package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const prowlEndpoint = "https://api.prowlapp.com/publicapi/add/"

type Prowl struct {
	APIKey      string
	ProviderKey string
	Endpoint    string
	Client      *http.Client
}

func NewProwl(apiKey, providerKey string) *Prowl {
	if apiKey == "" {
		return nil
	}
	return &Prowl{
		APIKey:      apiKey,
		ProviderKey: providerKey,
		Endpoint:    prowlEndpoint,
		Client:      &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *Prowl) Send(ctx context.Context, n Notification) error {
	if p == nil || p.APIKey == "" {
		return errors.New("prowl disabled")
	}

	form := url.Values{
		"apikey":      {p.APIKey},
		"priority":    {fmt.Sprintf("%d", n.Priority)},
		"application": {n.Application},
		"event":       {n.Event},
		"description": {n.Message},
	}
	if p.ProviderKey != "" {
		form.Set("providerkey", p.ProviderKey)
	}
	if n.URL != "" {
		form.Set("url", n.URL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/plain")

	resp, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("prowl status %d", resp.StatusCode)
	}
	return nil
}
