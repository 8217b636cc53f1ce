package lfgeo

import (
	"context"
	"fmt"
	"littlefolio/internal/models/lfconfig"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPResolverResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/8.8.8.8/json/", r.URL.Path)
		fmt.Fprint(w, `{"country_name": "United States", "city": "Mountain View"}`)
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL)
	loc, err := resolver.Resolve(context.Background(), "8.8.8.8")
	require.NoError(t, err)
	assert.Equal(t, "United States", loc.Country)
	assert.Equal(t, "Mountain View", loc.City)
}

func TestHTTPResolverErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL)
	_, err := resolver.Resolve(context.Background(), "8.8.8.8")
	assert.Error(t, err)
}

func TestHTTPResolverBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "pas du json")
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL)
	_, err := resolver.Resolve(context.Background(), "8.8.8.8")
	assert.Error(t, err)
}

func TestResolveSkipsPrivateAddresses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("aucune requête attendue pour une adresse privée")
	}))
	defer server.Close()

	resolver := NewHTTPResolver(server.URL)
	for _, ip := range []string{"127.0.0.1", "192.168.1.10", "10.0.0.1", "pas-une-ip"} {
		_, err := resolver.Resolve(context.Background(), ip)
		assert.Error(t, err)
	}
}

func TestFromConfig(t *testing.T) {
	// Provider vide : géolocalisation désactivée
	resolver, err := FromConfig(lfconfig.GeoConfig{})
	require.NoError(t, err)
	assert.Nil(t, resolver)

	resolver, err = FromConfig(lfconfig.GeoConfig{Provider: "http", Endpoint: "https://ipapi.co"})
	require.NoError(t, err)
	assert.IsType(t, &HTTPResolver{}, resolver)

	_, err = FromConfig(lfconfig.GeoConfig{Provider: "inconnu"})
	assert.Error(t, err)

	// Base mmdb absente : erreur à l'ouverture
	_, err = FromConfig(lfconfig.GeoConfig{Provider: "mmdb", MmdbPath: "/nexiste/pas.mmdb"})
	assert.Error(t, err)
}
