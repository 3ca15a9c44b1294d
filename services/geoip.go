package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"webstats/api/config"
	"webstats/api/models"
)

// ErrUpstream marks an external lookup failure. Callers degrade to their
// own fallback; it is never surfaced through the HTTP boundary on its own.
var ErrUpstream = errors.New("upstream lookup failed")

// IPInfoResponse is the relevant slice of the ipinfo.io payload. Loc holds
// "lat,lon" as a single comma-joined string.
type IPInfoResponse struct {
	IP       string `json:"ip"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Loc      string `json:"loc"`
	Org      string `json:"org,omitempty"`
	Postal   string `json:"postal,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Coordinates splits Loc into latitude and longitude. Anything other than
// exactly two parseable tokens yields nil coordinates.
func (r *IPInfoResponse) Coordinates() (*float32, *float32) {
	parts := strings.Split(r.Loc, ",")
	if len(parts) != 2 {
		return nil, nil
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 32)
	if err != nil {
		return nil, nil
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 32)
	if err != nil {
		return nil, nil
	}
	lat32, lon32 := float32(lat), float32(lon)
	return &lat32, &lon32
}

// IPInfoResolver queries ipinfo.io over HTTPS with a bearer token. IPv6
// inputs go to the v6 host. No cache and no retry: each call re-queries the
// upstream, and every failure degrades to the zero City.
type IPInfoResolver struct {
	token     string
	dev       bool
	devIP     string
	baseURL   string
	baseURLv6 string
	client    *http.Client
	log       *zap.Logger
}

func NewIPInfoResolver(cfg *config.Config, log *zap.Logger) *IPInfoResolver {
	return &IPInfoResolver{
		token:     cfg.IPInfoToken,
		dev:       cfg.Dev,
		devIP:     cfg.DevIP,
		baseURL:   "https://ipinfo.io",
		baseURLv6: "https://v6.ipinfo.io",
		client:    &http.Client{Timeout: 5 * time.Second},
		log:       log,
	}
}

// Resolve looks the IP up and maps the response onto a City candidate. In
// dev mode the configured fallback IP replaces whatever the caller saw on
// the socket, so local runs still resolve to a real location.
func (r *IPInfoResolver) Resolve(ip string) (models.City, error) {
	if r.dev {
		ip = r.devIP
	}

	base := r.baseURL
	if strings.Contains(ip, ":") {
		base = r.baseURLv6
	}

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/%s", base, ip), nil)
	if err != nil {
		return models.City{}, fmt.Errorf("%w: building request: %v", ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Warn("ip lookup failed", zap.String("ip", ip), zap.Error(err))
		return models.City{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.Warn("ip lookup returned non-200", zap.String("ip", ip), zap.Int("status", resp.StatusCode))
		return models.City{}, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var info IPInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		r.log.Warn("ip lookup returned bad payload", zap.String("ip", ip), zap.Error(err))
		return models.City{}, fmt.Errorf("%w: decoding response: %v", ErrUpstream, err)
	}

	lat, lng := info.Coordinates()
	return models.City{
		Name:      info.City,
		Country:   info.Country,
		Latitude:  lat,
		Longitude: lng,
	}, nil
}
