package sources

import (
	"context"
	"io"
	"os"

	"github.com/de-tools/fabric-atlas/pkg/services/config"
)

type FileProfile struct {
	Path string `ini:"path" validate:"required"`
}

func NewFileSource(name, path string) Source {
	return &exportSource{
		name: name,
		open: func(_ context.Context) (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

func FileFactory(ctx context.Context, name string, profiles config.Registry) (Source, error) {
	var p FileProfile
	if err := profiles.Decode(ctx, name, &p); err != nil {
		return nil, err
	}
	return NewFileSource(name, p.Path), nil
}
