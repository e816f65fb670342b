package images

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/RayyanKhan4004/PEMPAK-api/apperror"
	"github.com/RayyanKhan4004/PEMPAK-api/storage"
)

type fakeStore struct {
	uploads int
	fail    bool
}

func (f *fakeStore) Upload(_ context.Context, _ []byte, _ string) (storage.UploadResult, error) {
	return f.result()
}

func (f *fakeStore) UploadBase64(_ context.Context, _ string, _ string) (storage.UploadResult, error) {
	return f.result()
}

func (f *fakeStore) Delete(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func (f *fakeStore) result() (storage.UploadResult, error) {
	if f.fail {
		return storage.UploadResult{}, apperror.Wrap(apperror.Upload, "Failed to upload image", errors.New("boom"))
	}
	f.uploads++
	return storage.UploadResult{URL: "https://cdn/stored.png", PublicID: "stored"}, nil
}

func mustEntries(t *testing.T, input string) []Entry {
	t.Helper()
	var f Field
	if err := json.Unmarshal([]byte(input), &f); err != nil {
		t.Fatal(err)
	}
	entries, err := Normalize(f, Policy{Field: "images"})
	if err != nil {
		t.Fatal(err)
	}
	return entries
}

func TestResolvePassesThroughURLsAndDescriptors(t *testing.T) {
	store := &fakeStore{}
	entries := mustEntries(t, `["https://example.com/a.png",{"url":"https://cdn/b.png","public_id":"b"}]`)

	refs, err := Resolve(context.Background(), store, entries, "products")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if store.uploads != 0 {
		t.Errorf("uploads = %d, want 0", store.uploads)
	}
	if refs[0].URL != "https://example.com/a.png" || refs[0].PublicID != "" {
		t.Errorf("refs[0] = %+v, want URL-only ref", refs[0])
	}
	if refs[1].PublicID != "b" {
		t.Errorf("refs[1] = %+v, want descriptor preserved", refs[1])
	}
}

func TestResolveUploadsDataURIs(t *testing.T) {
	store := &fakeStore{}
	entries := mustEntries(t, `["`+validPNG()+`","https://example.com/a.png"]`)

	refs, err := Resolve(context.Background(), store, entries, "products")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if store.uploads != 1 {
		t.Errorf("uploads = %d, want 1", store.uploads)
	}
	if refs[0].URL != "https://cdn/stored.png" || refs[0].PublicID != "stored" {
		t.Errorf("refs[0] = %+v, want stored descriptor", refs[0])
	}
}

func TestResolveRejectsBadDataURIBeforeUploading(t *testing.T) {
	store := &fakeStore{}
	entries := mustEntries(t, `["`+validPNG()+`","data:image/png;base64,???"]`)

	_, err := Resolve(context.Background(), store, entries, "products")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "images[1]") {
		t.Errorf("error = %q, want failing index named", err.Error())
	}
	if store.uploads != 0 {
		t.Errorf("uploads = %d, want 0: nothing should reach the store when the batch is invalid", store.uploads)
	}
}

func TestResolveSurfacesUploadFailure(t *testing.T) {
	store := &fakeStore{fail: true}
	entries := mustEntries(t, `["`+validPNG()+`"]`)

	_, err := Resolve(context.Background(), store, entries, "products")
	if err == nil {
		t.Fatal("expected upload failure")
	}
	if apperror.Status(err) != 500 {
		t.Errorf("status = %d, want 500", apperror.Status(err))
	}
}
