package domain

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPageSize is the fixed number of results per catalog query
	DefaultPageSize = 100

	// PopularCount is the size of the "most popular" row
	PopularCount = 10
)

// Order selects the catalog sort order
type Order int

const (
	OrderDefault Order = iota
	OrderFollowedCount
	OrderLatestUpload
)

// CatalogQuery holds the optional, independent catalog filters.
// Every filter that is set is sent; they combine conjunctively.
type CatalogQuery struct {
	Title   string // Free text title search
	GenreID string // Catalog tag UUID
	Status  Status
	Limit   int // 0 = DefaultPageSize
	Order   Order
}

// PopularQuery returns the query for the most followed titles
func PopularQuery() CatalogQuery {
	return CatalogQuery{Limit: PopularCount, Order: OrderFollowedCount}
}

// IsFiltered reports whether any user filter is set
func (q CatalogQuery) IsFiltered() bool {
	return strings.TrimSpace(q.Title) != "" || q.GenreID != "" || q.Status != ""
}

// Values assembles the query parameters for the manga list endpoint
func (q CatalogQuery) Values() url.Values {
	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageSize
	}

	v := url.Values{}
	v.Set("limit", strconv.Itoa(limit))
	v.Add("includes[]", "cover_art")

	if q.Status != "" {
		v.Add("status[]", string(q.Status))
	}
	if q.GenreID != "" {
		v.Add("includedTags[]", q.GenreID)
	}
	if title := strings.TrimSpace(q.Title); title != "" {
		v.Set("title", title)
	}

	switch q.Order {
	case OrderFollowedCount:
		v.Set("order[followedCount]", "desc")
	case OrderLatestUpload:
		v.Set("order[latestUploadedChapter]", "desc")
	}

	return v
}
