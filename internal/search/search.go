// AngelaMos | 2026
// search.go

// Package search wraps the Meilisearch listing index. Indexing is a
// best-effort side effect of property writes; Postgres stays the
// source of truth and search only resolves free-text queries to IDs.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/meilisearch/meilisearch-go"

	"github.com/rentloop/rentloop-api/internal/config"
)

type Client struct {
	client *meilisearch.Client
	index  string
}

// ListingDocument is the denormalized shape stored in the index.
type ListingDocument struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	PropertyType string   `json:"property_type"`
	BHK          int      `json:"bhk"`
	Furnishing   string   `json:"furnishing"`
	Rent         int64    `json:"rent"`
	City         string   `json:"city"`
	Area         string   `json:"area"`
	Landmark     string   `json:"landmark"`
	Pincode      string   `json:"pincode"`
	Amenities    []string `json:"amenities"`
	Status       string   `json:"status"`
	CreatedAt    int64    `json:"created_at"`
}

func NewClient(cfg config.SearchConfig) *Client {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   cfg.Host,
		APIKey: cfg.APIKey,
	})

	return &Client{
		client: client,
		index:  cfg.Index,
	}
}

func (c *Client) InitIndex() error {
	_, err := c.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        c.index,
		PrimaryKey: "id",
	})
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		return fmt.Errorf("create index: %w", err)
	}

	_, err = c.client.Index(c.index).UpdateSearchableAttributes(&[]string{
		"title",
		"description",
		"city",
		"area",
		"landmark",
		"amenities",
	})
	if err != nil {
		return fmt.Errorf("update searchable attributes: %w", err)
	}

	_, err = c.client.Index(c.index).UpdateFilterableAttributes(&[]string{
		"id",
		"property_type",
		"bhk",
		"furnishing",
		"rent",
		"city",
		"pincode",
		"status",
	})
	if err != nil {
		return fmt.Errorf("update filterable attributes: %w", err)
	}

	_, err = c.client.Index(c.index).UpdateSortableAttributes(&[]string{
		"rent",
		"created_at",
	})
	if err != nil {
		return fmt.Errorf("update sortable attributes: %w", err)
	}

	return nil
}

// Ping satisfies the health checker interface.
func (c *Client) Ping(_ context.Context) error {
	if _, err := c.client.Health(); err != nil {
		return fmt.Errorf("search health: %w", err)
	}
	return nil
}

func (c *Client) IndexListing(doc ListingDocument) error {
	_, err := c.client.Index(c.index).AddDocuments([]ListingDocument{doc})
	if err != nil {
		return fmt.Errorf("index listing: %w", err)
	}
	return nil
}

func (c *Client) DeleteListing(id string) error {
	_, err := c.client.Index(c.index).DeleteDocument(id)
	if err != nil {
		return fmt.Errorf("delete listing from index: %w", err)
	}
	return nil
}

type Query struct {
	Text   string
	City   string
	Limit  int64
	Offset int64
}

// SearchIDs resolves a free-text query to listing IDs in relevance
// order. Only active listings are surfaced.
func (c *Client) SearchIDs(q Query) ([]string, int64, error) {
	if q.Limit == 0 {
		q.Limit = 20
	}

	filters := []string{`status = "active"`}
	if q.City != "" {
		filters = append(filters, fmt.Sprintf("city = %q", q.City))
	}

	searchReq := &meilisearch.SearchRequest{
		Limit:                q.Limit,
		Offset:               q.Offset,
		Filter:               strings.Join(filters, " AND "),
		AttributesToRetrieve: []string{"id"},
	}

	res, err := c.client.Index(c.index).Search(q.Text, searchReq)
	if err != nil {
		return nil, 0, fmt.Errorf("search listings: %w", err)
	}

	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		if id, ok := hitMap["id"].(string); ok {
			ids = append(ids, id)
		}
	}

	return ids, res.EstimatedTotalHits, nil
}
