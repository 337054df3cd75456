// Package archive stores raw import batches in Google Cloud Storage.
package archive

import (
	"context"
	"path"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/careerboost/pkg/helpers"
)

type GCSArchiver struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCSArchiver(client *storage.Client, bucket, prefix string) *GCSArchiver {
	return &GCSArchiver{client: client, bucket: bucket, prefix: prefix}
}

// Archive writes body under prefix/name and returns the gs:// URI.
func (a *GCSArchiver) Archive(ctx context.Context, name string, body []byte) (string, error) {
	return helpers.UploadJSON(ctx, a.client, a.bucket, path.Join(a.prefix, name), body)
}
