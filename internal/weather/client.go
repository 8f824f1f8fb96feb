// Package weather fetches the current weather from OpenWeatherMap and keeps
// one report per city and day in a cache file.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"maeum/internal/core"
)

// DefaultBaseURL is the OpenWeatherMap 2.5 API root.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

// ErrNoAPIKey is returned by NewClient when no key is configured.
var ErrNoAPIKey = errors.New("weather api key not configured")

// Fetcher returns the current weather of a city.
type Fetcher interface {
	Current(ctx context.Context, city, country string) (*core.WeatherReport, error)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	now     func() time.Time
}

var _ Fetcher = (*Client)(nil)

// NewClient builds an OpenWeatherMap client. An empty baseURL selects
// DefaultBaseURL and a zero timeout means no client-side timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoAPIKey
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		now:     time.Now,
	}, nil
}

type currentResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Message string `json:"message"`
}

// Current performs one GET of /weather for city,country in metric units.
func (c *Client) Current(ctx context.Context, city, country string) (*core.WeatherReport, error) {
	q := url.Values{}
	q.Set("q", city+","+country)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read weather response: %w", err)
	}

	var data currentResponse
	decodeErr := json.Unmarshal(body, &data)

	if resp.StatusCode != http.StatusOK {
		msg := data.Message
		if decodeErr != nil || msg == "" {
			msg = "unknown error"
		}
		return nil, fmt.Errorf("weather provider returned %d: %s", resp.StatusCode, msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode weather response: %w", decodeErr)
	}
	if len(data.Weather) == 0 {
		return nil, errors.New("weather response has no conditions")
	}

	cond := data.Weather[0]
	return &core.WeatherReport{
		Date:        core.FormatDate(c.now()),
		Main:        cond.Main,
		Description: cond.Description,
		Temp:        round1(data.Main.Temp),
		FeelsLike:   round1(data.Main.FeelsLike),
		Humidity:    data.Main.Humidity,
		Emoji:       EmojiFor(cond.Main),
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
