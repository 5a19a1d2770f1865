package client

import (
	"context"
	"net/url"

	"github.com/patwell/ipgate/pkg/types"
)

// SearchPatents looks up patents by assignee name.
func (c *Client) SearchPatents(ctx context.Context, assignee string) (types.SearchResult[types.Patent], error) {
	var out types.SearchResult[types.Patent]
	err := c.get(ctx, "/api/patents/search?assignee="+url.QueryEscape(assignee), &out)
	return out, err
}

// SearchTrademarks looks up trademarks by owner name.
func (c *Client) SearchTrademarks(ctx context.Context, owner string) (types.SearchResult[types.Trademark], error) {
	var out types.SearchResult[types.Trademark]
	err := c.get(ctx, "/api/trademarks/search?owner="+url.QueryEscape(owner), &out)
	return out, err
}

// Health reports the gateway's health document.
func (c *Client) Health(ctx context.Context) (map[string]interface{}, error) {
	var out map[string]interface{}
	err := c.get(ctx, "/health", &out)
	return out, err
}
