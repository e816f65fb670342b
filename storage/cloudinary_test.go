package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestCloudinary(serverURL string) *Cloudinary {
	return newCloudinary("democloud", "key123", "secret456", serverURL)
}

func TestCloudinaryUploadBase64WrapsBarePayload(t *testing.T) {
	var gotFile string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		gotFile = r.PostFormValue("file")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/democloud/image/upload/v1/pempak/abc.jpg","public_id":"pempak/abc"}`))
	}))
	defer server.Close()

	cl := newTestCloudinary(server.URL)
	res, err := cl.UploadBase64(context.Background(), "aGVsbG8=", "")
	if err != nil {
		t.Fatalf("UploadBase64: %v", err)
	}
	if !strings.HasPrefix(gotFile, "data:image/jpeg;base64,") {
		t.Errorf("file = %q, want bare base64 wrapped with jpeg data-URI prefix", gotFile)
	}
	if res.PublicID != "pempak/abc" {
		t.Errorf("public_id = %q", res.PublicID)
	}
	if !strings.HasPrefix(res.URL, "https://") {
		t.Errorf("url = %q, want https", res.URL)
	}
}

func TestCloudinaryUploadBase64KeepsDataURI(t *testing.T) {
	var gotFile string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotFile = r.PostFormValue("file")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/x.png","public_id":"x"}`))
	}))
	defer server.Close()

	cl := newTestCloudinary(server.URL)
	if _, err := cl.UploadBase64(context.Background(), "data:image/png;base64,aGVsbG8=", "folder"); err != nil {
		t.Fatal(err)
	}
	if gotFile != "data:image/png;base64,aGVsbG8=" {
		t.Errorf("file = %q, want data-URI sent unchanged", gotFile)
	}
}

func TestCloudinarySignsRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		folder := r.PostFormValue("folder")
		timestamp := r.PostFormValue("timestamp")
		signature := r.PostFormValue("signature")
		if r.PostFormValue("api_key") != "key123" {
			t.Errorf("api_key = %q", r.PostFormValue("api_key"))
		}

		sum := sha1.Sum([]byte("folder=" + folder + "&timestamp=" + timestamp + "secret456"))
		if signature != hex.EncodeToString(sum[:]) {
			t.Errorf("signature %q does not match sorted-params sha1", signature)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/x.png","public_id":"x"}`))
	}))
	defer server.Close()

	cl := newTestCloudinary(server.URL)
	if _, err := cl.UploadBase64(context.Background(), "aGVsbG8=", "products"); err != nil {
		t.Fatal(err)
	}
}

func TestCloudinaryUploadErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid image file"}}`))
	}))
	defer server.Close()

	cl := newTestCloudinary(server.URL)
	_, err := cl.UploadBase64(context.Background(), "aGVsbG8=", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "Invalid image file") {
		t.Errorf("error = %q, want upstream message included", err.Error())
	}
}

func TestCloudinaryDelete(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   bool
	}{
		{"confirmed", `{"result":"ok"}`, true},
		{"not found reads as not deleted", `{"result":"not found"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if !strings.HasSuffix(r.URL.Path, "/image/destroy") {
					t.Errorf("path = %q", r.URL.Path)
				}
				r.ParseForm()
				if r.PostFormValue("public_id") != "pempak/abc" {
					t.Errorf("public_id = %q", r.PostFormValue("public_id"))
				}
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			cl := newTestCloudinary(server.URL)
			ok, err := cl.Delete(context.Background(), "pempak/abc")
			if err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if ok != tt.want {
				t.Errorf("ok = %v, want %v", ok, tt.want)
			}
		})
	}
}
