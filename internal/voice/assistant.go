// Package voice turns an order transcript into draft line items. An
// external AI endpoint does the heavy lifting; when it is unreachable the
// heuristic parser takes over so the operator still gets a draft.
package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"restopos/internal/logger"
	"restopos/internal/models"
)

// ParseResult carries the matched line items plus the transcript fragments
// nothing in the catalog matched. Unmatched fragments are reported back to
// the operator, never treated as an error.
type ParseResult struct {
	Items     []models.OrderLineItem `json:"items"`
	Unmatched []string               `json:"unmatched,omitempty"`
}

type Assistant struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

func NewAssistant(cfg models.VoiceConfig, log *logger.Logger) *Assistant {
	return &Assistant{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

type aiRequest struct {
	Transcript string   `json:"transcript"`
	Products   []string `json:"products"`
}

type aiResponse struct {
	Items []struct {
		Product  string `json:"product"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
}

// ParseOrder extracts line items from a transcript. The AI endpoint result
// still goes through catalog name matching, so a hallucinated product name
// degrades to an unmatched fragment rather than a bogus line.
func (a *Assistant) ParseOrder(ctx context.Context, transcript string, catalog map[string]*models.Product) ParseResult {
	if a.endpoint != "" {
		if result, err := a.parseRemote(ctx, transcript, catalog); err == nil {
			return result
		} else {
			a.log.Warn("voice endpoint failed, falling back to heuristics", "error", err)
		}
	}
	return ParseTranscript(transcript, catalog)
}

func (a *Assistant) parseRemote(ctx context.Context, transcript string, catalog map[string]*models.Product) (ParseResult, error) {
	names := make([]string, 0, len(catalog))
	for _, p := range catalog {
		names = append(names, p.Name)
	}

	body, err := json.Marshal(aiRequest{Transcript: transcript, Products: names})
	if err != nil {
		return ParseResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return ParseResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return ParseResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ParseResult{}, fmt.Errorf("voice endpoint returned status %d", resp.StatusCode)
	}

	var decoded aiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ParseResult{}, err
	}

	var result ParseResult
	for _, item := range decoded.Items {
		product := matchProduct(item.Product, catalog)
		if product == nil {
			result.Unmatched = append(result.Unmatched, item.Product)
			continue
		}
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		result.Items = append(result.Items, models.OrderLineItem{ProductID: product.ID, Quantity: qty})
	}
	return result, nil
}
