package helpers

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// NewGCSClient creates a Google Cloud Storage client. With an empty
// credentials path, Application Default Credentials are used.
func NewGCSClient(ctx context.Context, credentialsJSONPath string) (*storage.Client, error) {
	if credentialsJSONPath != "" {
		return storage.NewClient(ctx, option.WithCredentialsFile(credentialsJSONPath))
	}
	return storage.NewClient(ctx)
}

// UploadImageToGCS streams an image to the bucket and returns its public URL.
func UploadImageToGCS(ctx context.Context, client *storage.Client, bucket, objectPath, contentType string, r io.Reader) (string, error) {
	w := client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objectPath), nil
}
