package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"fortune_cookie/pkg/errcodes"
	"fortune_cookie/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Route("/admin", func(r chi.Router) {
			r.Use(adminOnly(s.adminToken))

			r.Route("/phrases", func(r chi.Router) {
				r.Get("/", handler(s.getV1Phrases))
				r.Post("/", handler(s.postV1Phrase))
				r.Patch("/{id}", handler(s.patchV1Phrase))
				r.Delete("/{id}", handler(s.deleteV1Phrase))
			})
		})

		// unauthorized zone
		r.Route("/storefront", func(r chi.Router) {
			r.Post("/fortune", handler(s.postV1Fortune))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			replyError(w, r, err)
		}
	}
}

// adminOnly пропускает запросы с "Authorization: Bearer <token>".
// Пустой токен отключает проверку.
func adminOnly(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				reply.AppError(r.Context(), w, http.StatusForbidden, errcodes.Forbidden, "admin token required", errForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
