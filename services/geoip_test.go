package services

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		loc     string
		wantLat *float32
		wantLng *float32
	}{
		{"valid pair", "30.2672,-97.7431", f32p(30.2672), f32p(-97.7431)},
		{"missing half", "30.2672", nil, nil},
		{"too many tokens", "1,2,3", nil, nil},
		{"not numbers", "north,south", nil, nil},
		{"empty", "", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := IPInfoResponse{Loc: tt.loc}
			lat, lng := r.Coordinates()
			if tt.wantLat == nil {
				assert.Nil(t, lat)
				assert.Nil(t, lng)
				return
			}
			require.NotNil(t, lat)
			require.NotNil(t, lng)
			assert.InDelta(t, float64(*tt.wantLat), float64(*lat), 1e-4)
			assert.InDelta(t, float64(*tt.wantLng), float64(*lng), 1e-4)
		})
	}
}

func TestResolve(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ip":"1.2.3.4","city":"Austin","country":"US","loc":"30.2672,-97.7431"}`))
	}))
	defer srv.Close()

	r := testResolver(srv)
	city, err := r.Resolve("1.2.3.4")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "Austin", city.Name)
	assert.Equal(t, "US", city.Country)
	require.NotNil(t, city.Latitude)
	require.NotNil(t, city.Longitude)
	assert.InDelta(t, 30.2672, float64(*city.Latitude), 1e-4)
}

func TestResolveDegradesOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	r := testResolver(srv)
	city, err := r.Resolve("1.2.3.4")

	require.ErrorIs(t, err, ErrUpstream)
	assert.Empty(t, city.Name, "failure must yield the zero city")
	assert.Nil(t, city.Latitude)
}

func TestResolveIPv6Host(t *testing.T) {
	var v4Hits, v6Hits int
	payload := func(w http.ResponseWriter) {
		w.Write([]byte(`{"city":"Oslo","country":"NO","loc":"59.91,10.75"}`))
	}
	v4 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { v4Hits++; payload(w) }))
	defer v4.Close()
	v6 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { v6Hits++; payload(w) }))
	defer v6.Close()

	r := testResolver(v4)
	r.baseURLv6 = v6.URL

	_, err := r.Resolve("2001:db8::1")
	require.NoError(t, err)
	assert.Zero(t, v4Hits)
	assert.Equal(t, 1, v6Hits)

	_, err = r.Resolve("1.2.3.4")
	require.NoError(t, err)
	assert.Equal(t, 1, v4Hits)
}

func TestResolveDevModeOverride(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"city":"Austin","country":"US","loc":"30.26,-97.74"}`))
	}))
	defer srv.Close()

	r := testResolver(srv)
	r.dev = true
	r.devIP = "215.204.222.212"

	_, err := r.Resolve("127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, "/215.204.222.212", gotPath)
}

func testResolver(srv *httptest.Server) *IPInfoResolver {
	return &IPInfoResolver{
		token:     "test-token",
		baseURL:   srv.URL,
		baseURLv6: srv.URL,
		client:    srv.Client(),
		log:       zap.NewNop(),
	}
}

func f32p(v float32) *float32 { return &v }
