package media

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"nutrilens/config"
	"nutrilens/internal/domain/entity"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/errors"
)

// ImageKitStore talks to the ImageKit upload and management REST APIs.
type ImageKitStore struct {
	uploadEndpoint string
	apiEndpoint    string
	privateKey     string
	client         *http.Client
}

type imageKitUploadResponse struct {
	FileID string `json:"fileId"`
	URL    string `json:"url"`
}

// NewImageKitStore is the constructor for ImageKitStore.
func NewImageKitStore(cfg *config.ImageKitConfig, client *http.Client) (*ImageKitStore, error) {
	if cfg.PrivateKey == "" {
		return nil, errors.New("imagekit private key must be provided")
	}
	if cfg.UploadEndpoint == "" || cfg.APIEndpoint == "" {
		return nil, errors.New("imagekit endpoints must be provided")
	}

	return &ImageKitStore{
		uploadEndpoint: cfg.UploadEndpoint,
		apiEndpoint:    strings.TrimRight(cfg.APIEndpoint, "/"),
		privateKey:     cfg.PrivateKey,
		client:         client,
	}, nil
}

func (s *ImageKitStore) Upload(ctx context.Context, folder service.MediaFolder, file *service.MediaFile) (entity.Media, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fields := map[string]string{
		"fileName":          objectName(file),
		"folder":            "/" + string(folder),
		"useUniqueFileName": "true",
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return entity.Media{}, errors.Wrap(err, "failed to build upload form")
		}
	}

	part, err := w.CreateFormFile("file", fields["fileName"])
	if err != nil {
		return entity.Media{}, errors.Wrap(err, "failed to build upload form")
	}
	if _, err := part.Write(file.Data); err != nil {
		return entity.Media{}, errors.Wrap(err, "failed to build upload form")
	}
	if err := w.Close(); err != nil {
		return entity.Media{}, errors.Wrap(err, "failed to build upload form")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.uploadEndpoint, &body)
	if err != nil {
		return entity.Media{}, errors.Wrap(err, "failed to create upload request")
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.SetBasicAuth(s.privateKey, "")

	resp, err := s.client.Do(req)
	if err != nil {
		return entity.Media{}, errors.Wrap(err, "imagekit upload failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return entity.Media{}, statusError("upload", resp)
	}

	var out imageKitUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return entity.Media{}, errors.Wrap(err, "failed to decode imagekit upload response")
	}
	if out.FileID == "" || out.URL == "" {
		return entity.Media{}, errors.New("imagekit upload response is missing fileId or url")
	}

	return entity.Media{URL: out.URL, FileID: out.FileID}, nil
}

// Delete treats a 404 as already released.
func (s *ImageKitStore) Delete(ctx context.Context, fileID string) error {
	if fileID == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.apiEndpoint+"/files/"+url.PathEscape(fileID), nil)
	if err != nil {
		return errors.Wrap(err, "failed to create delete request")
	}
	req.SetBasicAuth(s.privateKey, "")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "imagekit delete failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return statusError("delete", resp)
	default:
		return nil
	}
}

func statusError(op string, resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	return errors.Errorf("imagekit %s returned %d: %s", op, resp.StatusCode, strings.TrimSpace(string(msg)))
}
