package mcpserver

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/ulule/limiter/v3"
)

// HTTPHandler serves the streamable HTTP transport behind bearer auth and a
// per-IP limiter. An empty token disables auth; a nil limiter disables limiting.
func (s *Server) HTTPHandler(token string, l *limiter.Limiter) http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
	return guard(streamable, token, l)
}

func guard(next http.Handler, token string, l *limiter.Limiter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token != "" {
			provided, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(provided)), []byte(token)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
		}

		if l != nil {
			ip := l.GetIPKey(r)
			res, err := l.Get(r.Context(), ip)
			if err != nil {
				log.Printf("mcp rate limit check failed for %s: %v", ip, err)
			} else if res.Reached {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
