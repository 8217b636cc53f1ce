package lfgeo

import (
	"context"
	"encoding/json"
	"fmt"
	"littlefolio/internal/models/lfconfig"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"github.com/oschwald/geoip2-golang/v2"
)

// Location est le résultat d'une résolution pays/ville. Les champs
// restent vides quand la résolution échoue : l'appelant enregistre
// l'événement quand même, sans jamais bloquer le rendu de la page.
type Location struct {
	Country string
	City    string
}

// Resolver résout l'adresse réseau d'un visiteur en pays/ville
type Resolver interface {
	Resolve(ctx context.Context, ip string) (Location, error)
}

// FromConfig construit le resolver configuré, ou nil si désactivé
func FromConfig(cfg lfconfig.GeoConfig) (Resolver, error) {
	switch cfg.Provider {
	case "mmdb":
		return NewMMDBResolver(cfg.MmdbPath)
	case "http":
		return NewHTTPResolver(cfg.Endpoint), nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("provider de géolocalisation inconnu: %s", cfg.Provider)
	}
}

// MMDBResolver interroge une base MaxMind City locale
type MMDBResolver struct {
	reader *geoip2.Reader
}

func NewMMDBResolver(path string) (*MMDBResolver, error) {
	reader, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("impossible d'ouvrir la base mmdb %s: %w", path, err)
	}
	return &MMDBResolver{reader: reader}, nil
}

// checkRoutable rejette les adresses locales, absentes de toute base
func checkRoutable(ip string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return netip.Addr{}, err
	}
	if addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() {
		return netip.Addr{}, fmt.Errorf("adresse non routable: %s", ip)
	}
	return addr, nil
}

func (r *MMDBResolver) Resolve(ctx context.Context, ip string) (Location, error) {
	addr, err := checkRoutable(ip)
	if err != nil {
		return Location{}, err
	}

	record, err := r.reader.City(addr)
	if err != nil {
		return Location{}, err
	}

	return Location{
		Country: record.Country.Names.English,
		City:    record.City.Names.English,
	}, nil
}

func (r *MMDBResolver) Close() error {
	return r.reader.Close()
}

// HTTPResolver interroge un service type ipapi : GET {endpoint}/{ip}/json/
// retourne {"country_name": ..., "city": ...}. Timeout court : la
// résolution ne doit jamais retenir une requête visiteur.
type HTTPResolver struct {
	endpoint string
	client   *http.Client
}

func NewHTTPResolver(endpoint string) *HTTPResolver {
	return &HTTPResolver{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		client: &http.Client{
			Timeout: 3 * time.Second,
		},
	}
}

func (r *HTTPResolver) Resolve(ctx context.Context, ip string) (Location, error) {
	if _, err := checkRoutable(ip); err != nil {
		return Location{}, err
	}

	url := fmt.Sprintf("%s/%s/json/", r.endpoint, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Location{}, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return Location{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, fmt.Errorf("géolocalisation statut %d", resp.StatusCode)
	}

	var payload struct {
		CountryName string `json:"country_name"`
		City        string `json:"city"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Location{}, err
	}

	return Location{
		Country: payload.CountryName,
		City:    payload.City,
	}, nil
}
