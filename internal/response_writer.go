package internal

import (
	"net/http"
	"sync"
)

// ResponseWriter wraps http.ResponseWriter for one request. It runs hooks
// right before the header is sent, so late state (visitor cookies, queued
// notifications) still makes it into the response, and answers htmx requests
// with 200 so the client swaps error fragments.
type ResponseWriter struct {
	http.ResponseWriter
	beforeWrite []func()
	status      int
	size        int64
	mu          sync.Mutex
	written     bool
	isHTMX      bool
}

// NewResponseWriter wraps w.
func NewResponseWriter(w http.ResponseWriter, isHTMX bool) *ResponseWriter {
	return &ResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
		isHTMX:         isHTMX,
	}
}

// OnBeforeWrite registers a hook. Hooks run once, in registration order,
// on the first WriteHeader or Write.
func (w *ResponseWriter) OnBeforeWrite(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.beforeWrite = append(w.beforeWrite, fn)
}

// WriteHeader sends the status code. Only the first call has an effect.
func (w *ResponseWriter) WriteHeader(code int) {
	w.commit(code)
}

// Write sends b, committing an implicit 200 first.
func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.commit(http.StatusOK)
	n, err := w.ResponseWriter.Write(b)
	w.mu.Lock()
	w.size += int64(n)
	w.mu.Unlock()
	return n, err
}

func (w *ResponseWriter) commit(code int) {
	w.mu.Lock()
	if w.written {
		w.mu.Unlock()
		return
	}
	w.written = true
	w.status = code
	hooks := w.beforeWrite
	w.beforeWrite = nil
	w.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}

	// Redirects pass through: htmx follows them transparently.
	if w.isHTMX && code >= http.StatusBadRequest {
		code = http.StatusOK
	}
	w.ResponseWriter.WriteHeader(code)
}

// Status returns the status code the handler asked for.
func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Size returns the number of body bytes written.
func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Written reports whether the header has been sent.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.written
}

// Flush implements http.Flusher.
func (w *ResponseWriter) Flush() {
	w.commit(http.StatusOK)
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the wrapped writer for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
