package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
)

type brotliResponseWriter struct {
	http.ResponseWriter
	bw io.Writer
}

func (w brotliResponseWriter) Write(b []byte) (int, error) {
	return w.bw.Write(b)
}

// BrotliCompress compresses responses for clients that advertise brotli
// support. Upgrade requests (websockets) pass through untouched because the
// wrapped writer cannot be hijacked.
func BrotliCompress(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Upgrade") != "" || !strings.Contains(r.Header.Get("Accept-Encoding"), "br") {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Content-Encoding", "br")
		w.Header().Add("Vary", "Accept-Encoding")
		bw := brotli.NewWriter(w)
		defer bw.Close()

		next.ServeHTTP(brotliResponseWriter{ResponseWriter: w, bw: bw}, r)
	})
}
