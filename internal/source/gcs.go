// Package source provides caller-side text sources feeding the pipeline.
// The pipeline core is source-agnostic; anything that yields multi-line text
// works. This implementation reads exported notification dumps from GCS.
package source

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
)

// GCS fetches notification dumps stored as GCS objects. It assumes
// Application Default Credentials are configured.
type GCS struct{}

// FetchText downloads the object at gcsURI ("gs://bucket/path/to/dump.txt")
// and returns its contents as text.
func (g *GCS) FetchText(ctx context.Context, gcsURI string) (string, error) {
	bucketName, objectName, err := parseGCSURI(gcsURI)
	if err != nil {
		return "", fmt.Errorf("FetchText: %w", err)
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("FetchText: create storage client: %w", err)
	}
	defer client.Close()

	r, err := client.Bucket(bucketName).Object(objectName).NewReader(ctx)
	if err != nil {
		return "", fmt.Errorf("FetchText: open GCS object reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("FetchText: read GCS object: %w", err)
	}

	return string(data), nil
}

// parseGCSURI splits "gs://bucket/path/to/object" into bucket and object.
func parseGCSURI(uri string) (bucket, object string, err error) {
	if !strings.HasPrefix(uri, "gs://") {
		return "", "", fmt.Errorf("invalid GCS URI %q: missing gs:// prefix", uri)
	}
	trimmed := strings.TrimPrefix(uri, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GCS URI %q: want gs://bucket/object", uri)
	}
	return parts[0], parts[1], nil
}
