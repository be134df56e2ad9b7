package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/SmitUplenchwar2687/Tempo/internal/clock"
	"github.com/SmitUplenchwar2687/Tempo/internal/recorder"
)

// StampMiddleware wraps an http.Handler and stamps every response with the
// clock reading taken when the request arrived, in the X-Tempo-Millis header.
func StampMiddleware(next http.Handler, clk clock.Clock) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Tempo-Millis", strconv.FormatInt(int64(clk.Now()), 10))
		next.ServeHTTP(w, r)
	})
}

// RecordingMiddleware wraps an http.Handler and records one clock reading
// per request into rec, labeled with the given source.
func RecordingMiddleware(next http.Handler, rec *recorder.Recorder, clk clock.Clock, source string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := rec.Record(recorder.Take(source, clk)); err != nil {
			log.Printf("record error: %v", err)
		}
		next.ServeHTTP(w, r)
	})
}
