package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPageDelay = 5 * time.Millisecond

func newTestClient(t *testing.T, handler http.HandlerFunc) (*GoogleClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	provider := NewGoogleClientWithOptions("test-key", nil, server.URL, server.Client(), testPageDelay)
	return provider.(*GoogleClient), server
}

func TestSearchPlaceIDs_SinglePage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/textsearch/json", r.URL.Path)
		assert.Equal(t, "hospitals in Ankara", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "OK",
			"results": []map[string]string{
				{"place_id": "p1"},
				{"place_id": "p2"},
			},
		})
	})

	ids, err := client.SearchPlaceIDs(context.Background(), "hospitals in Ankara")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, ids)
}

func TestSearchPlaceIDs_FollowsPageTokens(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Query().Get("pagetoken") {
		case "":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":          "OK",
				"next_page_token": "token-1",
				"results":         []map[string]string{{"place_id": "p1"}},
			})
		case "token-1":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "OK",
				"results": []map[string]string{{"place_id": "p2"}, {"place_id": "p1"}},
			})
		default:
			t.Errorf("unexpected page token %q", r.URL.Query().Get("pagetoken"))
		}
	})

	ids, err := client.SearchPlaceIDs(context.Background(), "hospitals in Ankara")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	// p1 repeated on page two must not duplicate
	assert.Equal(t, []string{"p1", "p2"}, ids)
}

func TestSearchPlaceIDs_ZeroResults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "ZERO_RESULTS"})
	})

	ids, err := client.SearchPlaceIDs(context.Background(), "hospitals in Nowhere")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSearchPlaceIDs_ErrorStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":        "REQUEST_DENIED",
			"error_message": "invalid key",
		})
	})

	_, err := client.SearchPlaceIDs(context.Background(), "hospitals in Ankara")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
	assert.Contains(t, err.Error(), "invalid key")
}

func TestSearchPlaceIDs_ContextCancelledBetweenPages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cancel()
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":          "OK",
			"next_page_token": "token-1",
			"results":         []map[string]string{{"place_id": "p1"}},
		})
	}))
	defer server.Close()

	// Long page delay so cancellation always wins the wait
	provider := NewGoogleClientWithOptions("test-key", nil, server.URL, server.Client(), time.Minute)

	_, err := provider.SearchPlaceIDs(ctx, "hospitals in Ankara")
	require.ErrorIs(t, err, context.Canceled)
}

func TestGetDetails(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/details/json", r.URL.Path)
		assert.Equal(t, "p1", r.URL.Query().Get("place_id"))
		assert.True(t, strings.Contains(r.URL.Query().Get("fields"), "address_components"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "OK",
			"result": map[string]interface{}{
				"place_id":          "p1",
				"name":              "Acme Hospital",
				"formatted_address": "1 Test Street, Ankara",
				"geometry": map[string]interface{}{
					"location": map[string]float64{"lat": 39.9, "lng": 32.8},
				},
				"international_phone_number": "+90 312 000 0000",
				"website":                    "https://acme.example",
				"rating":                     4.4,
				"user_ratings_total":         120,
				"address_components": []map[string]interface{}{
					{"long_name": "Ankara", "types": []string{"locality", "political"}},
				},
				"photos": []map[string]interface{}{
					{"photo_reference": "ref-1", "width": 1024, "height": 768},
				},
			},
		})
	})

	details, err := client.GetDetails(context.Background(), "p1")
	require.NoError(t, err)
	require.NotNil(t, details)
	assert.Equal(t, "Acme Hospital", details.Name)
	assert.Equal(t, "+90 312 000 0000", details.InternationalPhoneNumber)
	require.NotNil(t, details.Location)
	assert.InDelta(t, 39.9, details.Location.Latitude, 0.001)
	require.Len(t, details.AddressComponents, 1)
	assert.Equal(t, "Ankara", details.AddressComponents[0].LongName)
	require.Len(t, details.Photos, 1)
	assert.Equal(t, 1024, details.Photos[0].Width)
}

func TestGetDetails_NotFoundReturnsNil(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"status": "NOT_FOUND"})
	})

	details, err := client.GetDetails(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, details)
}

func TestGetDetails_HTTPError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetDetails(context.Background(), "p1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestBuildMapsURL(t *testing.T) {
	provider := NewGoogleClientWithOptions("k", nil, "", nil, 0)

	got := provider.BuildMapsURL("abc 123")
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=Google&query_place_id=abc+123", got)
}

func TestBuildPhotoURL(t *testing.T) {
	provider := NewGoogleClientWithOptions("k", nil, "", nil, 0)

	raw := provider.BuildPhotoURL("ref-1", 800)
	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "800", parsed.Query().Get("maxwidth"))
	assert.Equal(t, "ref-1", parsed.Query().Get("photo_reference"))

	raw = provider.BuildPhotoURL("ref-1", 0)
	parsed, err = url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprint(defaultPhotoMaxWidth), parsed.Query().Get("maxwidth"))
}

func TestSearchPlaceIDs_RequiresAPIKey(t *testing.T) {
	provider := NewGoogleClientWithOptions("", nil, "", nil, 0)

	_, err := provider.SearchPlaceIDs(context.Background(), "anything")
	require.Error(t, err)
}
