package images

import (
	"context"

	"github.com/RayyanKhan4004/PEMPAK-api/apperror"
	"github.com/RayyanKhan4004/PEMPAK-api/storage"
)

// Resolve converts normalized entries into stored descriptors. Inline base64
// images are validated up front, then uploaded to the store; plain URLs are
// kept as URL-only refs; descriptors pass through untouched. Validation runs
// over the whole batch before the first upload so a bad entry never leaves
// half the set on the remote host.
func Resolve(ctx context.Context, store storage.Store, entries []Entry, folder string) ([]Ref, error) {
	for i, e := range entries {
		if e.Ref == nil && IsDataURI(e.Raw) {
			if err := ValidateDataURI(e.Raw); err != nil {
				return nil, apperror.Newf(apperror.Validation, "images[%d]: %s", i, apperror.Message(err))
			}
		}
	}

	refs := make([]Ref, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.Ref != nil:
			refs = append(refs, *e.Ref)
		case IsDataURI(e.Raw):
			res, err := store.UploadBase64(ctx, e.Raw, folder)
			if err != nil {
				return nil, err
			}
			refs = append(refs, Ref{URL: res.URL, PublicID: res.PublicID})
		default:
			refs = append(refs, Ref{URL: e.Raw})
		}
	}
	return refs, nil
}
