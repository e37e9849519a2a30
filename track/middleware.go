package track

import (
	"context"
	"net/http"
)

// Middleware reports every request served by next as a visit. Tracking
// runs in a goroutine after the response is written and can never block
// or fail the wrapped handler. A disabled client makes this a pass-through.
func Middleware(client *Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)

			if !client.Enabled() {
				return
			}
			o := Options{
				Host:      r.Host,
				Path:      r.URL.Path,
				UserAgent: r.UserAgent(),
				Accept:    r.Header.Get("Accept"),
				Country:   r.Header.Get("CF-IPCountry"),
			}
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
				defer cancel()
				_, _ = client.TrackVisit(ctx, o)
			}()
		})
	}
}
