package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
)

func catalogServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/document/activity-types":
			json.NewEncoder(w).Encode(models.ActivityTypesResponse{
				ActivityTypes: []models.ActivityDescriptor{
					{Value: "lectures", Name: "Lectures"},
					{Value: "oral-exam", Name: "Oral Exam"},
					{Value: "written-exam", Name: "Written Exam"},
					{Value: "office-hours", Name: "Office Hours"},
				},
			})
		case "/document/languages":
			json.NewEncoder(w).Encode(models.LanguagesResponse{
				Languages: []models.LanguageDescriptor{
					{Code: "it", Name: "Italiano"},
					{Code: "en", Name: "English"},
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestCatalogClient_ActivityTypes(t *testing.T) {
	var hits int32
	server := catalogServer(t, &hits)
	defer server.Close()

	client := NewCatalogClient(server.URL, time.Second, time.Minute, zerolog.Nop())

	types, err := client.ActivityTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 4)
	assert.Equal(t, "lectures", types[0].Value)
	assert.Equal(t, "Lectures", types[0].Name)
	assert.Equal(t, "office-hours", types[3].Value)
}

func TestCatalogClient_Languages(t *testing.T) {
	var hits int32
	server := catalogServer(t, &hits)
	defer server.Close()

	client := NewCatalogClient(server.URL, time.Second, time.Minute, zerolog.Nop())

	langs, err := client.Languages(context.Background())
	require.NoError(t, err)
	require.Len(t, langs, 2)
	assert.Equal(t, "it", langs[0].Code)
	assert.Equal(t, "English", langs[1].Name)
}

func TestCatalogClient_CachesWithinTTL(t *testing.T) {
	var hits int32
	server := catalogServer(t, &hits)
	defer server.Close()

	client := NewCatalogClient(server.URL, time.Second, time.Minute, zerolog.Nop())

	first, err := client.ActivityTypes(context.Background())
	require.NoError(t, err)

	second, err := client.ActivityTypes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestCatalogClient_RefreshesAfterTTL(t *testing.T) {
	var hits int32
	server := catalogServer(t, &hits)
	defer server.Close()

	client := NewCatalogClient(server.URL, time.Second, 10*time.Millisecond, zerolog.Nop())

	_, err := client.ActivityTypes(context.Background())
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	_, err = client.ActivityTypes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestCatalogClient_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewCatalogClient(server.URL, time.Second, time.Minute, zerolog.Nop())

	types, err := client.ActivityTypes(context.Background())
	assert.Error(t, err)
	assert.Nil(t, types)

	langs, err := client.Languages(context.Background())
	assert.Error(t, err)
	assert.Nil(t, langs)
}

func TestCatalogClient_SeparateCaches(t *testing.T) {
	var hits int32
	server := catalogServer(t, &hits)
	defer server.Close()

	client := NewCatalogClient(server.URL, time.Second, time.Minute, zerolog.Nop())

	_, err := client.ActivityTypes(context.Background())
	require.NoError(t, err)

	_, err = client.Languages(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}
