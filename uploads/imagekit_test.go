package uploads

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUpload_SendsFormAndDecodesResponse(t *testing.T) {
	var gotUser, gotFile, gotName, gotFolder string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _, _ = r.BasicAuth()
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotFile = r.FormValue("file")
		gotName = r.FormValue("fileName")
		gotFolder = r.FormValue("folder")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"url":"https://ik.example.com/sw/cat.jpg","fileId":"abc123"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "private_key_x", "skywatch")
	res, err := c.Upload(context.Background(), []byte("image-bytes"), "cat.jpg")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if res.URL != "https://ik.example.com/sw/cat.jpg" || res.FileID != "abc123" {
		t.Fatalf("result = %+v", res)
	}
	if gotUser != "private_key_x" {
		t.Fatalf("basic auth user = %q", gotUser)
	}
	decoded, err := base64.StdEncoding.DecodeString(gotFile)
	if err != nil || string(decoded) != "image-bytes" {
		t.Fatalf("file field = %q, decode err %v", gotFile, err)
	}
	if gotName != "cat.jpg" || gotFolder != "skywatch" {
		t.Fatalf("fileName = %q, folder = %q", gotName, gotFolder)
	}
}

func TestUpload_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid key"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(srv.URL, "bad", "")
	_, err := c.Upload(context.Background(), []byte("x"), "a.jpg")
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Fatalf("err = %v, want non-2xx error", err)
	}
}

func TestUpload_MissingURLIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k", "")
	_, err := c.Upload(context.Background(), []byte("x"), "a.jpg")
	if err == nil || !strings.Contains(err.Error(), "missing url") {
		t.Fatalf("err = %v, want missing url error", err)
	}
}
