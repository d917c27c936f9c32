package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeStrict(t *testing.T) {
	type dto struct {
		Username string `json:"username"`
	}
	cases := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"ok", `{"username":"admin"}`, false},
		{"campo desconhecido", `{"username":"admin","foo":1}`, true},
		{"dois objetos", `{"username":"a"}{"username":"b"}`, true},
		{"json quebrado", `{"username":`, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var d dto
			err := DecodeStrict(strings.NewReader(tc.body), &d)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tc.wantErr)
			}
		})
	}

	var d dto
	if err := DecodeStrict(strings.NewReader(""), &d); !errors.Is(err, io.EOF) {
		t.Fatalf("corpo vazio deveria dar io.EOF, got %v", err)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, http.StatusTeapot, "bule")

	if rr.Code != http.StatusTeapot {
		t.Fatalf("status=%d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content-type=%q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil || body["error"] != "bule" {
		t.Fatalf("body=%s err=%v", rr.Body.String(), err)
	}
}

func TestLogRequests_PassesThrough(t *testing.T) {
	h := LogRequests(nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("oi"))
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rr.Code != http.StatusTeapot || rr.Body.String() != "oi" {
		t.Fatalf("code=%d body=%q", rr.Code, rr.Body.String())
	}
}
