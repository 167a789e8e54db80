// Package http serves repository objects over HTTP with single-range support.
//
// The handler implements the contract pacman and other download clients rely
// on when resuming package downloads:
//
//   - GET /<key> returns the full object with Accept-Ranges: bytes
//   - a Range: bytes=start-end header returns 206 with the inclusive slice
//     and a Content-Range header; an over-long end is clamped to the object
//   - a range starting at or past the object size returns 416 with
//     Content-Range: bytes */<size>
//   - an unknown key returns 404 with the plain-text body "Not found"
//
// Parsing is deliberately lenient: a malformed Range header (including
// multi-range lists and suffix ranges, which are unsupported) degrades to a
// full 200 response instead of an error. Successful responses carry a fixed
// one-hour public Cache-Control directive.
//
// There is no write path and no authentication; the repository is public and
// the build pipeline writes to the bucket directly.
//
// # Usage
//
//	handler := http.NewHandler(&http.HandlerConfig{}, store)
//	srv := &nethttp.Server{Addr: ":8080", Handler: handler.Router()}
//	srv.ListenAndServe()
//
// The store parameter must implement the Store interface with Stat and
// ReadRange methods.
package http
