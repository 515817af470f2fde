package httpc

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	c := NewClient(5 * time.Second)
	if c.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", c.Timeout)
	}
	if Client.Timeout != DefaultTimeout {
		t.Errorf("shared Timeout = %v, want %v", Client.Timeout, DefaultTimeout)
	}
}

func TestReadBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if r.Header.Get("Content-Type") != "text/plain" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		w.Write([]byte(strings.ToUpper(string(body))))
	}))
	defer srv.Close()

	resp, err := Client.Post(srv.URL, "text/plain", strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	body, err := ReadBody(resp, 3)
	if err != nil {
		t.Fatalf("ReadBody() error = %v", err)
	}
	if string(body) != "HEL" {
		t.Errorf("body = %q, want HEL", body)
	}
}
