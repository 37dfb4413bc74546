package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/healthyol/backend/internal/domain/providers"
)

const (
	googleTextSearchURL = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	googleDetailsURL    = "https://maps.googleapis.com/maps/api/place/details/json"
	googlePhotoURL      = "https://maps.googleapis.com/maps/api/place/photo"

	defaultPhotoMaxWidth = 1200
	defaultHTTPTimeout   = 10 * time.Second

	// Google activates a next_page_token only after a short delay; pages
	// requested earlier come back INVALID_REQUEST.
	defaultPageTokenDelay = 2200 * time.Millisecond

	detailsCacheTTL = 60 * 60 * 6
)

// detailsFields is the fixed field set requested from the details endpoint.
var detailsFields = strings.Join([]string{
	"place_id", "name", "formatted_address", "geometry/location",
	"international_phone_number", "formatted_phone_number",
	"website", "rating", "user_ratings_total", "address_components", "photos",
}, ",")

// GoogleClient implements PlacesProvider against the Google Places Web API.
type GoogleClient struct {
	apiKey     string
	httpClient *http.Client
	cache      providers.CacheProvider
	searchURL  string
	detailsURL string
	pageDelay  time.Duration
}

// NewGoogleClient creates a new Google Places client.
func NewGoogleClient(apiKey string, cache providers.CacheProvider) providers.PlacesProvider {
	return NewGoogleClientWithOptions(apiKey, cache, "", nil, 0)
}

// NewGoogleClientWithOptions allows overriding the base URL, HTTP client and
// page-token delay (used for tests). baseURL replaces the host prefix of both
// the text search and details endpoints.
func NewGoogleClientWithOptions(apiKey string, cache providers.CacheProvider, baseURL string, httpClient *http.Client, pageDelay time.Duration) providers.PlacesProvider {
	searchURL := googleTextSearchURL
	detailsURL := googleDetailsURL
	if trimmed := strings.TrimSuffix(strings.TrimSpace(baseURL), "/"); trimmed != "" {
		searchURL = trimmed + "/textsearch/json"
		detailsURL = trimmed + "/details/json"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if pageDelay <= 0 {
		pageDelay = defaultPageTokenDelay
	}
	return &GoogleClient{
		apiKey:     apiKey,
		httpClient: httpClient,
		cache:      cache,
		searchURL:  searchURL,
		detailsURL: detailsURL,
		pageDelay:  pageDelay,
	}
}

// SearchPlaceIDs issues a text search and follows continuation tokens until
// exhausted, returning distinct place ids in first-seen order.
func (c *GoogleClient) SearchPlaceIDs(ctx context.Context, query string) ([]string, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("google places api key is required")
	}

	seen := map[string]struct{}{}
	var ids []string
	token := ""

	for {
		params := url.Values{}
		params.Set("query", query)
		params.Set("key", c.apiKey)
		if token != "" {
			params.Set("pagetoken", token)
		}

		var payload textSearchResponse
		if err := c.getJSON(ctx, c.searchURL, params, &payload); err != nil {
			return nil, err
		}
		if payload.Status != "OK" && payload.Status != "ZERO_RESULTS" {
			if payload.ErrorMessage != "" {
				return nil, fmt.Errorf("places text search failed: %s - %s", payload.Status, payload.ErrorMessage)
			}
			return nil, fmt.Errorf("places text search failed: %s", payload.Status)
		}

		for _, result := range payload.Results {
			id := strings.TrimSpace(result.PlaceID)
			if id == "" {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}

		token = strings.TrimSpace(payload.NextPageToken)
		if token == "" {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pageDelay):
		}
	}

	return ids, nil
}

// GetDetails fetches details for one place id, returning nil when the
// provider has no result.
func (c *GoogleClient) GetDetails(ctx context.Context, placeID string) (*providers.PlaceDetails, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("google places api key is required")
	}

	cacheKey := "places:v1:details:" + placeID
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var details providers.PlaceDetails
			if err := json.Unmarshal(cached, &details); err == nil && details.PlaceID != "" {
				return &details, nil
			}
		}
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailsFields)
	params.Set("key", c.apiKey)

	var payload detailsResponse
	if err := c.getJSON(ctx, c.detailsURL, params, &payload); err != nil {
		return nil, err
	}

	switch payload.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND":
		return nil, nil
	default:
		if payload.ErrorMessage != "" {
			return nil, fmt.Errorf("place details failed: %s - %s", payload.Status, payload.ErrorMessage)
		}
		return nil, fmt.Errorf("place details failed: %s", payload.Status)
	}

	if payload.Result == nil {
		return nil, nil
	}

	details := payload.Result.toDomain()
	if c.cache != nil {
		if body, err := json.Marshal(details); err == nil {
			_ = c.cache.Set(ctx, cacheKey, body, detailsCacheTTL)
		}
	}

	return details, nil
}

// BuildPhotoURL constructs a photo URL. No network call is made.
func (c *GoogleClient) BuildPhotoURL(photoRef string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = defaultPhotoMaxWidth
	}
	params := url.Values{}
	params.Set("maxwidth", strconv.Itoa(maxWidth))
	params.Set("photo_reference", photoRef)
	params.Set("key", c.apiKey)
	return fmt.Sprintf("%s?%s", googlePhotoURL, params.Encode())
}

// BuildMapsURL constructs the canonical maps link for a place id. The same
// URL is stored as both the maps link and the places link of a hospital and
// serves as the primary dedup key.
func (c *GoogleClient) BuildMapsURL(placeID string) string {
	return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=Google&query_place_id=%s", url.QueryEscape(placeID))
}

func (c *GoogleClient) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	reqURL := fmt.Sprintf("%s?%s", endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build places request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("places request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("places request returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode places response: %w", err)
	}

	return nil
}

type textSearchResponse struct {
	Status        string             `json:"status"`
	ErrorMessage  string             `json:"error_message,omitempty"`
	NextPageToken string             `json:"next_page_token"`
	Results       []textSearchResult `json:"results"`
}

type textSearchResult struct {
	PlaceID string `json:"place_id"`
}

type detailsResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Result       *placeDetails `json:"result"`
}

type placeDetails struct {
	PlaceID                  string             `json:"place_id"`
	Name                     string             `json:"name"`
	FormattedAddress         string             `json:"formatted_address"`
	Geometry                 *googleGeometry    `json:"geometry"`
	InternationalPhoneNumber string             `json:"international_phone_number"`
	FormattedPhoneNumber     string             `json:"formatted_phone_number"`
	Website                  string             `json:"website"`
	Rating                   float64            `json:"rating"`
	UserRatingsTotal         int                `json:"user_ratings_total"`
	AddressComponents        []addressComponent `json:"address_components"`
	Photos                   []photoRef         `json:"photos"`
}

type googleGeometry struct {
	Location googleLocation `json:"location"`
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type addressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

type photoRef struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

func (d *placeDetails) toDomain() *providers.PlaceDetails {
	details := &providers.PlaceDetails{
		PlaceID:                  d.PlaceID,
		Name:                     d.Name,
		FormattedAddress:         d.FormattedAddress,
		InternationalPhoneNumber: d.InternationalPhoneNumber,
		FormattedPhoneNumber:     d.FormattedPhoneNumber,
		Website:                  d.Website,
		Rating:                   d.Rating,
		UserRatingsTotal:         d.UserRatingsTotal,
	}

	if d.Geometry != nil {
		details.Location = &providers.GeoPoint{
			Latitude:  d.Geometry.Location.Lat,
			Longitude: d.Geometry.Location.Lng,
		}
	}

	for _, comp := range d.AddressComponents {
		details.AddressComponents = append(details.AddressComponents, providers.AddressComponent{
			LongName:  comp.LongName,
			ShortName: comp.ShortName,
			Types:     comp.Types,
		})
	}

	for _, photo := range d.Photos {
		details.Photos = append(details.Photos, providers.PlacePhoto{
			PhotoReference: photo.PhotoReference,
			Width:          photo.Width,
			Height:         photo.Height,
		})
	}

	return details
}
