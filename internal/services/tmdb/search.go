package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/patrickmn/go-cache"
)

// UnknownGenre is the name used for genre ids missing from TMDB's table.
const UnknownGenre = "unknown genre"

const genreCacheKey = "genre-map"

// Movie represents one TMDB search result
type Movie struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	ReleaseDate string `json:"release_date"` // e.g. "2014-11-05"
	GenreIDs    []int  `json:"genre_ids"`
}

// Year returns the release year, or 0 when TMDB has no release date.
func (m *Movie) Year() int {
	if len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

type searchResponse struct {
	Results []Movie `json:"results"`
}

type genreResponse struct {
	Genres []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

// SearchMovie returns the best match for a title, or ErrNoResults when TMDB
// knows no such movie. TMDB orders results by relevance; the first one wins.
func (c *Client) SearchMovie(ctx context.Context, title string) (*Movie, error) {
	params := url.Values{}
	params.Set("query", title)

	var response searchResponse
	if err := c.doRequest(ctx, "/search/movie", params, &response); err != nil {
		return nil, fmt.Errorf("failed to search movie: %w", err)
	}

	if len(response.Results) == 0 {
		return nil, fmt.Errorf("%w for title %q", ErrNoResults, title)
	}

	return &response.Results[0], nil
}

// GenreNames resolves genre ids to display names, keeping the input order.
// Ids missing from TMDB's table resolve to UnknownGenre rather than failing.
func (c *Client) GenreNames(ctx context.Context, ids []int) ([]string, error) {
	genreMap, err := c.genreMap(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := genreMap[id]
		if !ok {
			name = UnknownGenre
		}
		names = append(names, name)
	}

	return names, nil
}

// genreMap returns the TMDB genre id table, cached for a day. The table
// changes rarely; the original service refetched it on every creation.
func (c *Client) genreMap(ctx context.Context) (map[int]string, error) {
	if cached, ok := c.genres.Get(genreCacheKey); ok {
		return cached.(map[int]string), nil
	}

	var response genreResponse
	if err := c.doRequest(ctx, "/genre/movie/list", nil, &response); err != nil {
		return nil, fmt.Errorf("failed to get genre list: %w", err)
	}

	genreMap := make(map[int]string, len(response.Genres))
	for _, genre := range response.Genres {
		genreMap[genre.ID] = genre.Name
	}
	c.genres.Set(genreCacheKey, genreMap, cache.DefaultExpiration)

	return genreMap, nil
}
