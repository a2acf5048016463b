// Package insightsapi consume el API HTTP de insights desde otro proceso
// (p.ej. el CLI con --server). Expone las mismas firmas que insights.Service.
package insightsapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"pet-adoption-insights/internal/domain/catalog"
	"pet-adoption-insights/internal/domain/insights"
	"pet-adoption-insights/internal/platform/httpclient"
)

// StoreAPI es el nombre de store usado cuando el servidor responde 503.
const StoreAPI = "api"

type Client struct {
	http *httpclient.Client
}

func New(baseURL string, timeout time.Duration) (*Client, error) {
	c, err := httpclient.New(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	c.UserAgent = "pet-adoption-insights-cli"
	return &Client{http: c}, nil
}

func (c *Client) RecommendPets(ctx context.Context, userID int64, limit int) ([]catalog.Pet, bool, error) {
	var out []catalog.Pet
	path := fmt.Sprintf("/users/%d/recommendations", userID)
	found, err := c.get(ctx, path, limitQuery(limit), &out)
	return out, found, err
}

func (c *Client) MostAdoptablePets(ctx context.Context, limit int) ([]catalog.Pet, error) {
	var out []catalog.Pet
	_, err := c.get(ctx, "/pets/adoptable", limitQuery(limit), &out)
	return out, err
}

func (c *Client) UserConnections(ctx context.Context, userID int64, limit int) ([]catalog.User, bool, error) {
	var out []catalog.User
	path := fmt.Sprintf("/users/%d/connections", userID)
	found, err := c.get(ctx, path, limitQuery(limit), &out)
	return out, found, err
}

func (c *Client) LowEngagementPets(ctx context.Context) ([]catalog.Pet, error) {
	var out []catalog.Pet
	_, err := c.get(ctx, "/pets/low-engagement", nil, &out)
	return out, err
}

func (c *Client) UserEngagement(ctx context.Context, userID int64) (insights.EngagementReport, bool, error) {
	var out insights.EngagementReport
	path := fmt.Sprintf("/users/%d/engagement", userID)
	found, err := c.get(ctx, path, nil, &out)
	return out, found, err
}

func (c *Client) ForecastDemand(ctx context.Context) (insights.Forecast, error) {
	var out insights.Forecast
	_, err := c.get(ctx, "/forecast/demand", nil, &out)
	return out, err
}

// get traduce los status del servidor a la semántica del servicio:
// 404 => found=false, 400 => ErrInvalidInput, 503 => *insights.StoreError.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) (bool, error) {
	err := c.http.GetJSON(ctx, path, q, out)
	if err == nil {
		return true, nil
	}

	var he *httpclient.HTTPError
	if !errors.As(err, &he) {
		return false, err
	}
	switch he.StatusCode {
	case http.StatusNotFound:
		return false, nil
	case http.StatusBadRequest:
		return true, fmt.Errorf("%w: %s", insights.ErrInvalidInput, he.Body)
	case http.StatusServiceUnavailable:
		return true, &insights.StoreError{Store: StoreAPI, Op: path, Err: he}
	default:
		return true, err
	}
}

func limitQuery(limit int) url.Values {
	return url.Values{"limit": {strconv.Itoa(limit)}}
}
