package client

import (
	"context"
	"net/url"

	"github.com/patwell/ipgate/pkg/types"
)

// clientList is the GET /admin/clients response envelope: stored override
// records keyed by normalized name.
type clientList struct {
	Clients map[string]types.ClientRecord `json:"clients"`
}

// ListClients returns every stored override record, keyed by normalized
// name.  Each record's Key field is filled in from its map key.
func (c *Client) ListClients(ctx context.Context) (map[string]types.ClientRecord, error) {
	var out clientList
	if err := c.get(ctx, "/admin/clients", &out); err != nil {
		return nil, err
	}
	for key, rec := range out.Clients {
		rec.Key = key
		out.Clients[key] = rec
	}
	return out.Clients, nil
}

// UpsertClient stores an override record and returns the key it was stored
// under.
func (c *Client) UpsertClient(ctx context.Context, rec types.ClientRecord) (string, error) {
	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Key     string `json:"key"`
	}
	if err := c.post(ctx, "/admin/clients", rec, &out); err != nil {
		return "", err
	}
	return out.Key, nil
}

// DeleteClient removes the override stored under any spelling of name.
func (c *Client) DeleteClient(ctx context.Context, name string) error {
	return c.del(ctx, "/admin/clients/"+url.PathEscape(name))
}
