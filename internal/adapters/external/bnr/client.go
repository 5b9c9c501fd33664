// Package bnr fetches the daily RON reference-rate table published by the
// National Bank of Romania as an XML feed.
package bnr

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/mpopesco/investfolio/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Client fetches rate tables from the BNR feed.
type Client struct {
	url  string
	http *http.Client
}

// NewClient creates a new BNR feed client.
func NewClient(url string) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type feed struct {
	Header struct {
		PublishingDate string `xml:"PublishingDate"`
	} `xml:"Header"`
	Body struct {
		Cube struct {
			Date  string `xml:"date,attr"`
			Rates []struct {
				Currency   string `xml:"currency,attr"`
				Multiplier string `xml:"multiplier,attr"`
				Value      string `xml:",chardata"`
			} `xml:"Rate"`
		} `xml:"Cube"`
	} `xml:"Body"`
}

// FetchRateTable downloads and parses the feed into a currency->RON table.
// Rates quoted per 100 (or any other multiplier of) units are normalized by
// dividing the quoted value by the multiplier, so the table is always RON per
// one unit of currency.
func (c *Client) FetchRateTable(ctx context.Context) (*domain.RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rates request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates feed returned http %d", resp.StatusCode)
	}

	var doc feed
	if err := xml.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse rates feed: %w", err)
	}

	table, err := tableFromFeed(doc)
	if err != nil {
		return nil, err
	}
	return table, nil
}

func tableFromFeed(doc feed) (*domain.RateTable, error) {
	if len(doc.Body.Cube.Rates) == 0 {
		return nil, fmt.Errorf("rates feed contained no rates")
	}

	rates := make(map[string]decimal.Decimal, len(doc.Body.Cube.Rates))
	for _, r := range doc.Body.Cube.Rates {
		value, err := decimal.NewFromString(r.Value)
		if err != nil {
			continue
		}
		if r.Multiplier != "" {
			multiplier, err := decimal.NewFromString(r.Multiplier)
			if err != nil || multiplier.IsZero() {
				continue
			}
			value = value.Div(multiplier)
		}
		rates[r.Currency] = value
	}

	asOf := doc.Body.Cube.Date
	if asOf == "" {
		asOf = doc.Header.PublishingDate
	}

	table := domain.NewRateTable(asOf, rates)
	return &table, nil
}
