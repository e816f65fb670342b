package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/RayyanKhan4004/PEMPAK-api/apperror"
)

// S3Store stores images in an S3 bucket. Object keys double as public ids, so
// deletion works off the same reference the upload returned.
type S3Store struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Store(ctx context.Context, bucket, region string) (*S3Store, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, apperror.Wrap(apperror.Config, "Failed to load AWS configuration", err)
	}
	return &S3Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

func (st *S3Store) Upload(ctx context.Context, data []byte, folder string) (UploadResult, error) {
	if folder == "" {
		folder = DefaultFolder
	}
	key := fmt.Sprintf("%s/%s", folder, uuid.NewString())

	_, err := st.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: &st.bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		logrus.WithError(err).WithField("key", key).Error("s3 put failed")
		return UploadResult{}, apperror.Wrap(apperror.Upload, "Failed to upload image", err)
	}

	return UploadResult{
		URL:      fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", st.bucket, st.region, key),
		PublicID: key,
	}, nil
}

func (st *S3Store) UploadBase64(ctx context.Context, payload string, folder string) (UploadResult, error) {
	// Strip any data-URI prefix down to the raw base64 payload.
	if strings.HasPrefix(payload, dataURIPrefix) {
		if idx := strings.Index(payload, ","); idx >= 0 {
			payload = payload[idx+1:]
		}
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return UploadResult{}, apperror.Wrap(apperror.Upload, "Failed to upload image: invalid base64 payload", err)
	}
	return st.Upload(ctx, data, folder)
}

func (st *S3Store) Delete(ctx context.Context, publicID string) (bool, error) {
	_, err := st.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &st.bucket,
		Key:    &publicID,
	})
	if err != nil {
		return false, apperror.Wrap(apperror.Upload, "Failed to delete image", err)
	}
	return true, nil
}
