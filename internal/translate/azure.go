package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// AzureTranslator calls the Azure Translator REST API (api-version
// 3.0). Misconfiguration or any call failure falls back to the local
// stub result; it never surfaces an error to the caller.
type AzureTranslator struct {
	Key      string
	Endpoint string
	Region   string
	Client   *http.Client
}

func NewAzureTranslator(key, endpoint, region string) *AzureTranslator {
	return &AzureTranslator{
		Key:      key,
		Endpoint: endpoint,
		Region:   region,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type azureTranslateResp []struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

func (t *AzureTranslator) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	if text == "" {
		return "", nil
	}

	from := NormalizeLang(fromLang)
	to := NormalizeLang(toLang)

	if from == to || t.Key == "" || t.Endpoint == "" || t.Client == nil {
		return Fallback(text, fromLang, toLang), nil
	}

	translated, err := t.call(ctx, text, from, to)
	if err != nil {
		log.Printf("translate: azure call failed, using stub: %v", err)
		return Fallback(text, fromLang, toLang), nil
	}
	return translated, nil
}

func (t *AzureTranslator) call(ctx context.Context, text, from, to string) (string, error) {
	params := url.Values{}
	params.Set("api-version", "3.0")
	// empty "from" lets the service auto-detect
	if from != "" {
		params.Set("from", from)
	}
	params.Set("to", to)

	endpoint := fmt.Sprintf("%s/translate?%s", strings.TrimRight(t.Endpoint, "/"), params.Encode())

	body, err := json.Marshal([]map[string]string{{"text": text}})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", t.Key)
	req.Header.Set("Ocp-Apim-Subscription-Region", t.Region)
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("azure translator: status %d", resp.StatusCode)
	}

	var decoded azureTranslateResp
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if len(decoded) == 0 || len(decoded[0].Translations) == 0 {
		return "", fmt.Errorf("azure translator: empty response")
	}
	return decoded[0].Translations[0].Text, nil
}
