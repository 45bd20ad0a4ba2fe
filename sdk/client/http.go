package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	sdk "github.com/faciam-dev/customfields/sdk"
	"github.com/go-resty/resty/v2"
)

type httpClient struct {
	base string
	http *resty.Client
}

type Option func(*httpClient)

// WithToken sets the Authorization token
func WithToken(tok string) Option {
	return func(c *httpClient) {
		c.http.SetAuthToken(tok)
	}
}

// NewHTTP returns a new Client for the given base URL.
func NewHTTP(base string, opts ...Option) Client {
	c := &httpClient{base: strings.TrimRight(base, "/"), http: resty.New()}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) selectionURL(typeName string) string {
	if typeName == "" {
		return c.base + "/selection"
	}
	return c.base + "/selection/" + url.PathEscape(typeName)
}

func (c *httpClient) ListSelection(ctx context.Context, typeName string) ([]sdk.CustomField, error) {
	var out []sdk.CustomField
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get(c.selectionURL(typeName))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, restyErr(resp)
	}
	return out, nil
}

func (c *httpClient) CreateSelection(ctx context.Context, typeName string, in sdk.SelectionFieldInput) (sdk.CustomField, error) {
	if typeName == "" {
		return sdk.CustomField{}, fmt.Errorf("plain type name is required")
	}
	var out sdk.CustomField
	resp, err := c.http.R().SetContext(ctx).SetBody(in).SetResult(&out).Post(c.selectionURL(typeName))
	if err != nil {
		return sdk.CustomField{}, err
	}
	if resp.IsError() {
		return sdk.CustomField{}, restyErr(resp)
	}
	return out, nil
}

func (c *httpClient) PlainTypes(ctx context.Context) ([]PlainType, error) {
	var out []PlainType
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get(c.base + "/plain-types")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, restyErr(resp)
	}
	return out, nil
}

func (c *httpClient) Mode() string { return "http" }

// StatusError is returned for non-2xx API responses.
type StatusError struct {
	Code   int
	Status string
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Status, e.Detail)
	}
	return e.Status
}

func restyErr(resp *resty.Response) error {
	detail := strings.TrimSpace(string(resp.Body()))
	return &StatusError{Code: resp.StatusCode(), Status: resp.Status(), Detail: detail}
}
