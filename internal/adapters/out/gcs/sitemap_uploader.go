// internal/adapters/out/gcs/sitemap_uploader.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/storage"
)

// SitemapUploader publishes the generated sitemap to a public GCS bucket so
// the storefront's CDN origin can serve it.
type SitemapUploader struct {
	Client *storage.Client
	Bucket string
}

func NewSitemapUploader(client *storage.Client, bucket string) *SitemapUploader {
	return &SitemapUploader{Client: client, Bucket: bucket}
}

// Upload writes body to objectName with the given content type. The object is
// cached briefly so crawlers pick up catalog changes within the hour.
func (u *SitemapUploader) Upload(ctx context.Context, objectName, contentType string, body []byte) error {
	if u == nil || u.Client == nil {
		return errors.New("sitemap_uploader: storage client is nil")
	}
	if u.Bucket == "" {
		return errors.New("sitemap_uploader: bucket is empty")
	}

	w := u.Client.Bucket(u.Bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=3600"

	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return fmt.Errorf("sitemap_uploader: write %s: %w", objectName, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("sitemap_uploader: close %s: %w", objectName, err)
	}

	log.Printf("[sitemap] uploaded gs://%s/%s (%d bytes)", u.Bucket, objectName, len(body))
	return nil
}
