package storage

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"resty.dev/v3"

	"github.com/RayyanKhan4004/PEMPAK-api/apperror"
)

const dataURIPrefix = "data:"

// Cloudinary talks to the Cloudinary upload API over its authenticated REST
// endpoints. Requests are signed with SHA-1 over the sorted parameter set.
type Cloudinary struct {
	cloudName string
	apiKey    string
	apiSecret string
	baseURL   string
	client    *resty.Client
}

type cloudinaryUploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

type cloudinaryDestroyResponse struct {
	Result string `json:"result"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
}

func NewCloudinary(cloudName, apiKey, apiSecret string) *Cloudinary {
	return newCloudinary(cloudName, apiKey, apiSecret, "https://api.cloudinary.com")
}

func newCloudinary(cloudName, apiKey, apiSecret, baseURL string) *Cloudinary {
	client := resty.New().
		SetTimeout(30 * time.Second)

	return &Cloudinary{
		cloudName: cloudName,
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   baseURL,
		client:    client,
	}
}

func (cl *Cloudinary) Upload(ctx context.Context, data []byte, folder string) (UploadResult, error) {
	if folder == "" {
		folder = DefaultFolder
	}

	form := cl.signedForm(map[string]string{"folder": folder})

	var out cloudinaryUploadResponse
	resp, err := cl.client.R().
		SetContext(ctx).
		SetFileReader("file", "upload", bytes.NewReader(data)).
		SetFormData(form).
		SetResult(&out).
		SetError(&out).
		Post(cl.uploadURL())

	return cl.uploadResult(&out, resp, err)
}

func (cl *Cloudinary) UploadBase64(ctx context.Context, payload string, folder string) (UploadResult, error) {
	if folder == "" {
		folder = DefaultFolder
	}

	// Bare base64 gets a default jpeg prefix; strings that are already
	// data-URIs go through untouched.
	if !strings.HasPrefix(payload, dataURIPrefix) {
		payload = "data:image/jpeg;base64," + payload
	}

	form := cl.signedForm(map[string]string{"folder": folder})
	form["file"] = payload

	var out cloudinaryUploadResponse
	resp, err := cl.client.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&out).
		SetError(&out).
		Post(cl.uploadURL())

	return cl.uploadResult(&out, resp, err)
}

func (cl *Cloudinary) Delete(ctx context.Context, publicID string) (bool, error) {
	form := cl.signedForm(map[string]string{"public_id": publicID})

	var out cloudinaryDestroyResponse
	resp, err := cl.client.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&out).
		SetError(&out).
		Post(fmt.Sprintf("%s/v1_1/%s/image/destroy", cl.baseURL, cl.cloudName))

	if err != nil {
		return false, apperror.Wrap(apperror.Upload, "Failed to delete image", err)
	}
	if resp.IsError() {
		logrus.WithFields(logrus.Fields{
			"status":    resp.StatusCode(),
			"public_id": publicID,
		}).Warn("cloudinary destroy rejected")
		return false, apperror.Newf(apperror.Upload, "Failed to delete image: %s", out.Error.Message)
	}

	// "not found" and any other non-ok result both read as not-deleted.
	return out.Result == "ok", nil
}

func (cl *Cloudinary) uploadURL() string {
	return fmt.Sprintf("%s/v1_1/%s/image/upload", cl.baseURL, cl.cloudName)
}

func (cl *Cloudinary) uploadResult(out *cloudinaryUploadResponse, resp *resty.Response, err error) (UploadResult, error) {
	if err != nil {
		return UploadResult{}, apperror.Wrap(apperror.Upload, "Failed to upload image", err)
	}
	if resp.IsError() {
		msg := out.Error.Message
		if msg == "" {
			msg = resp.Status()
		}
		return UploadResult{}, apperror.Newf(apperror.Upload, "Failed to upload image: %s", msg)
	}
	if out.SecureURL == "" || out.PublicID == "" {
		return UploadResult{}, apperror.New(apperror.Upload, "Failed to upload image: incomplete response from store")
	}
	return UploadResult{URL: out.SecureURL, PublicID: out.PublicID}, nil
}

// signedForm builds the authenticated parameter set for one API call. The
// signature covers params sorted by key, with the api secret appended.
func (cl *Cloudinary) signedForm(params map[string]string) map[string]string {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	params["timestamp"] = timestamp

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + cl.apiSecret))

	params["api_key"] = cl.apiKey
	params["signature"] = hex.EncodeToString(sum[:])
	return params
}
