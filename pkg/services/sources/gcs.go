package sources

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"github.com/de-tools/fabric-atlas/pkg/services/config"
)

type GCSProfile struct {
	Bucket string `ini:"bucket" validate:"required"`
	Object string `ini:"object" validate:"required"`
}

type gcsSource struct {
	*exportSource
	client *storage.Client
}

func (s *gcsSource) Close() error {
	return s.client.Close()
}

// GCSFactory builds a Cloud Storage export source using application default credentials.
func GCSFactory(ctx context.Context, name string, profiles config.Registry) (Source, error) {
	var p GCSProfile
	if err := profiles.Decode(ctx, name, &p); err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &gcsSource{
		client: client,
		exportSource: &exportSource{
			name: name,
			open: func(ctx context.Context) (io.ReadCloser, error) {
				r, err := client.Bucket(p.Bucket).Object(p.Object).NewReader(ctx)
				if err != nil {
					return nil, fmt.Errorf("read gs://%s/%s: %w", p.Bucket, p.Object, err)
				}
				return r, nil
			},
		},
	}, nil
}
