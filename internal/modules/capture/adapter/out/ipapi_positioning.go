package out

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	captureout "travellog/internal/modules/capture/port/out"
	apperrors "travellog/internal/platform/errors"
	"travellog/internal/platform/geo"
)

// IPAPIPositioning approximates the device location from its public IP using
// an ip-api.com compatible endpoint.
type IPAPIPositioning struct {
	client   *http.Client
	endpoint string
}

type ipapiResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

func NewIPAPIPositioning(endpoint string, timeout time.Duration) captureout.Positioning {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &IPAPIPositioning{
		client:   &http.Client{Timeout: timeout},
		endpoint: endpoint,
	}
}

// RequestPermission always grants; there is no OS prompt for network lookup.
func (p *IPAPIPositioning) RequestPermission(context.Context) (captureout.Permission, error) {
	return captureout.PermissionGranted, nil
}

func (p *IPAPIPositioning) CurrentCoordinate(ctx context.Context) (geo.Coordinate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoint, nil)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("lookup location: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return geo.Coordinate{}, fmt.Errorf("lookup location: status %d: %s: %w",
			resp.StatusCode, strings.TrimSpace(string(b)), apperrors.ErrCapabilityUnavailable)
	}

	var body ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return geo.Coordinate{}, fmt.Errorf("decode location: %w", err)
	}
	if body.Status != "success" {
		return geo.Coordinate{}, fmt.Errorf("lookup location: %s: %w", body.Message, apperrors.ErrCapabilityUnavailable)
	}
	c := geo.Coordinate{Latitude: body.Lat, Longitude: body.Lon}
	if err := c.Validate(); err != nil {
		return geo.Coordinate{}, fmt.Errorf("lookup location: %v: %w", err, apperrors.ErrCapabilityUnavailable)
	}
	return c, nil
}
