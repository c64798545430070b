package middleware

import "net/http"

// CORS is a permissive development CORS policy: no CORS library appears
// anywhere in the example pack, and chi itself ships without one, so
// this is written by hand rather than pulled from an unseen dependency.
// A production deployment would scope AllowOrigin to the actual client
// origin; this module has no such origin to bind to.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
