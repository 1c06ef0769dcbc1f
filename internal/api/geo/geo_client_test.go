package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yandexCityPayload = `{
  "response": {
    "GeoObjectCollection": {
      "featureMember": [
        {
          "GeoObject": {
            "name": "Paris",
            "description": "France",
            "Point": {"pos": "2.351556 48.856663"}
          }
        },
        {
          "GeoObject": {
            "name": "Paris",
            "description": "Texas, United States",
            "Point": {"pos": "-95.555513 33.660940"}
          }
        }
      ]
    }
  }
}`

const yandexEmptyPayload = `{
  "response": {
    "GeoObjectCollection": {
      "featureMember": []
    }
  }
}`

func TestGeocoderClient_SearchCity(t *testing.T) {
	ctx := context.Background()

	t.Run("parses matches and query params", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "json", q.Get("format"))
			assert.Equal(t, "test-key", q.Get("apikey"))
			assert.Equal(t, "Paris", q.Get("geocode"))
			assert.Equal(t, "locality", q.Get("kind"))
			assert.Equal(t, "5", q.Get("results"))
			w.Write([]byte(yandexCityPayload))
		}))
		defer server.Close()

		client := NewGeocoderClient(server.URL, "test-key")
		matches, err := client.SearchCity(ctx, "Paris")
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "Paris", matches[0].Name)
		assert.Equal(t, "France", matches[0].Country)
		assert.InDelta(t, 48.856663, matches[0].Lat, 1e-9)
		assert.InDelta(t, 2.351556, matches[0].Lng, 1e-9)
	})

	t.Run("empty collection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(yandexEmptyPayload))
		}))
		defer server.Close()

		client := NewGeocoderClient(server.URL, "test-key")
		matches, err := client.SearchCity(ctx, "Nowhereville")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("malformed position entries are skipped", func(t *testing.T) {
		payload := `{"response":{"GeoObjectCollection":{"featureMember":[
			{"GeoObject":{"name":"Bad","description":"X","Point":{"pos":"garbage"}}},
			{"GeoObject":{"name":"Good","description":"Y","Point":{"pos":"2.0 48.0"}}}
		]}}}`
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(payload))
		}))
		defer server.Close()

		client := NewGeocoderClient(server.URL, "test-key")
		matches, err := client.SearchCity(ctx, "whatever")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Equal(t, "Good", matches[0].Name)
	})

	t.Run("upstream error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "forbidden", http.StatusForbidden)
		}))
		defer server.Close()

		client := NewGeocoderClient(server.URL, "bad-key")
		_, err := client.SearchCity(ctx, "Paris")
		require.Error(t, err)
	})
}

func TestGeocoderClient_GeocodePlaceInCity(t *testing.T) {
	ctx := context.Background()

	t.Run("scopes the query to the city", func(t *testing.T) {
		payload := `{"response":{"GeoObjectCollection":{"featureMember":[
			{"GeoObject":{"name":"Louvre","description":"Paris, France","Point":{"pos":"2.337644 48.860611"}}}
		]}}}`
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "Louvre, Paris", q.Get("geocode"))
			assert.Equal(t, "1", q.Get("results"))
			w.Write([]byte(payload))
		}))
		defer server.Close()

		client := NewGeocoderClient(server.URL, "test-key")
		loc, err := client.GeocodePlaceInCity(ctx, "Louvre", "Paris")
		require.NoError(t, err)
		require.NotNil(t, loc)
		assert.InDelta(t, 48.860611, loc.Lat, 1e-9)
		assert.InDelta(t, 2.337644, loc.Lng, 1e-9)
		assert.Equal(t, "Louvre, Paris, France", loc.Address)
	})

	t.Run("no match returns nil without error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(yandexEmptyPayload))
		}))
		defer server.Close()

		client := NewGeocoderClient(server.URL, "test-key")
		loc, err := client.GeocodePlaceInCity(ctx, "Atlantis Gate", "Paris")
		require.NoError(t, err)
		assert.Nil(t, loc)
	})
}

func TestParsePos(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		lat, lng, err := parsePos("2.351556 48.856663")
		require.NoError(t, err)
		assert.InDelta(t, 48.856663, lat, 1e-9)
		assert.InDelta(t, 2.351556, lng, 1e-9)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, pos := range []string{"", "1.0", "a b", "1.0 2.0 3.0"} {
			_, _, err := parsePos(pos)
			assert.Error(t, err, "pos=%q", pos)
		}
	})
}
