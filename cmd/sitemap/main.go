// cmd/sitemap/main.go
//
// One-shot job: builds sitemap.xml from the active catalog and publishes it
// to the configured GCS bucket (or stdout with -dry-run). Intended to run on
// a Cloud Scheduler trigger.
package main

import (
	"context"
	"encoding/xml"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	outfs "leafline/internal/adapters/out/firestore"
	outgcs "leafline/internal/adapters/out/gcs"
	shared "leafline/internal/platform/di/shared"
)

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

func main() {
	dryRun := flag.Bool("dry-run", false, "print the sitemap to stdout instead of uploading")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	baseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("SITE_BASE_URL")), "/")
	if baseURL == "" {
		baseURL = "https://leafline.example"
	}

	infra, err := shared.NewInfra(ctx)
	if err != nil {
		log.Fatalf("[sitemap] infra init failed: %v", err)
	}
	defer infra.Close()

	products, err := outfs.NewProductRepositoryFS(infra.Firestore).ListActive(ctx)
	if err != nil {
		log.Fatalf("[sitemap] list products failed: %v", err)
	}

	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []urlEntry{
			{Loc: baseURL + "/", ChangeFreq: "daily"},
			{Loc: baseURL + "/products", ChangeFreq: "daily"},
		},
	}
	for _, p := range products {
		slug := strings.TrimSpace(p.Slug)
		if slug == "" {
			slug = p.ID
		}
		entry := urlEntry{
			Loc:        baseURL + "/products/" + slug,
			ChangeFreq: "weekly",
		}
		if !p.UpdatedAt.IsZero() {
			entry.LastMod = p.UpdatedAt.UTC().Format("2006-01-02")
		}
		set.URLs = append(set.URLs, entry)
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		log.Fatalf("[sitemap] marshal failed: %v", err)
	}
	body = append([]byte(xml.Header), body...)

	if *dryRun {
		fmt.Println(string(body))
		return
	}

	if infra.GCS == nil {
		log.Fatalf("[sitemap] GCS client not available (set GOOGLE_APPLICATION_CREDENTIALS or run on GCP)")
	}
	bucket := strings.TrimSpace(infra.Config.GCSBucket)
	if bucket == "" {
		log.Fatalf("[sitemap] GCS_BUCKET is empty")
	}

	uploader := outgcs.NewSitemapUploader(infra.GCS, bucket)
	if err := uploader.Upload(ctx, "sitemap.xml", "application/xml", body); err != nil {
		log.Fatalf("[sitemap] upload failed: %v", err)
	}

	log.Printf("[sitemap] done urls=%d", len(set.URLs))
}
