// Package social discovers POI candidates from social travel content.
//
// Two implementations exist: an HTTP client for a content-search gateway and
// a deterministic offline client seeded with persona template data. The
// offline client doubles as the degradation path when the gateway is down,
// so discovery never fails outright.
package social

import (
	"context"

	"github.com/wayfarer-labs/planner-cli/internal/model"
)

// Post is one recent social post mentioning a POI, fetched as verification
// evidence.
type Post struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Likes   int    `json:"likes"`
}

// Note is one raw content item returned by the search gateway. A single
// travel-guide note can mention several POIs.
type Note struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
	Likes   int    `json:"likes"`
}

// Client defines the content search operations used by the planner.
type Client interface {
	// SearchPOIs searches travel content for a keyword and extracts POI
	// candidates, at most max.
	SearchPOIs(ctx context.Context, keyword string, max int) ([]model.Candidate, error)

	// RecentPosts fetches up to n recent posts mentioning a POI.
	RecentPosts(ctx context.Context, poiName string, n int) ([]Post, error)
}
