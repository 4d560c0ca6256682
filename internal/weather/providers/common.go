package providers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/i474232898/weather-now/internal/weather"
)

// maxErrorBody caps how much of a failed response body ends up in errors.
const maxErrorBody = 512

var errNoHTTPClient = errors.New("http client not configured")

// doRequest executes req once and returns the body of a 2xx reply.
func doRequest(client *http.Client, req *http.Request) ([]byte, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &weather.StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return io.ReadAll(resp.Body)
}

// formatCoordinate renders a coordinate with the shortest exact decimal form,
// e.g. 55.7518 rather than 55.751800.
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
