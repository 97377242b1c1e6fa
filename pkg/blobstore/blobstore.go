// Package blobstore blob depolama servisinin ince sarmalayıcısıdır:
// upload(path, bytes) → public URL ve delete(path). İçerik bu çekirdeğin
// sorumluluğunda değildir; sadece HTTP PUT/DELETE yapılır.
package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrUploadFailed yükleme 2xx dışı cevap aldı.
var ErrUploadFailed = errors.New("blobstore: yükleme başarısız")

// ErrDeleteFailed silme 2xx dışı cevap aldı.
var ErrDeleteFailed = errors.New("blobstore: silme başarısız")

// Store blob servisi istemcisi.
type Store struct {
	baseURL    string
	httpClient *http.Client
}

// New verilen taban adresle istemci kurar.
func New(baseURL string) *Store {
	return &Store{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Upload içeriği verilen yola koyar ve public URL'yi döndürür.
func (s *Store) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	target := s.objectURL(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(data))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: durum %d", ErrUploadFailed, resp.StatusCode)
	}
	return target, nil
}

// Delete verilen yoldaki nesneyi siler. 404 başarı sayılır; nesne zaten yok.
func (s *Store) Delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.objectURL(path), nil)
	if err != nil {
		return err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: durum %d", ErrDeleteFailed, resp.StatusCode)
	}
	return nil
}

// objectURL yol bölümlerini ayrı ayrı kaçışlar; "/" ayırıcıları korunur.
func (s *Store) objectURL(path string) string {
	segments := strings.Split(path, "/")
	for i := range segments {
		segments[i] = url.PathEscape(segments[i])
	}
	return s.baseURL + "/" + strings.Join(segments, "/")
}
