package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tikz/alphasense/errs"
)

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte("ATOM"))
		case "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	body, err := Get(context.Background(), srv.URL+"/ok")
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "ATOM" {
		t.Errorf("expected ATOM, got %s", body)
	}

	_, err = Get(context.Background(), srv.URL+"/missing")
	if !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_, err = Get(context.Background(), srv.URL+"/broken")
	if err == nil || errors.Is(err, errs.ErrNotFound) {
		t.Errorf("expected a status code error, got %v", err)
	}
}
