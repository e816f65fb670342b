package storage

import "context"

// UploadResult is the stable reference returned by the remote image host: a
// secure URL for serving and an opaque id usable for later deletion.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Store is a remote image host. Each call is a single synchronous round trip,
// no retry or batching; callers surface failures directly.
type Store interface {
	// Upload sends a binary payload and returns its stored reference.
	Upload(ctx context.Context, data []byte, folder string) (UploadResult, error)
	// UploadBase64 sends a string payload. Strings already carrying a
	// data-URI prefix are sent as-is, bare base64 is wrapped as image/jpeg.
	UploadBase64(ctx context.Context, payload string, folder string) (UploadResult, error)
	// Delete removes a previously uploaded image. A false return means the
	// host did not confirm removal; "not found" is not distinguished here.
	Delete(ctx context.Context, publicID string) (bool, error)
}

// DefaultFolder is the logical folder uploads land in when the caller does
// not pick one.
const DefaultFolder = "pempak"
