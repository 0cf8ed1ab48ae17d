package sources

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/de-tools/fabric-atlas/pkg/services/config"
)

type AzureBlobProfile struct {
	AccountURL string `ini:"account_url" validate:"required,url"`
	Container  string `ini:"container" validate:"required"`
	Blob       string `ini:"blob" validate:"required"`
}

// AzureBlobFactory builds an Azure Blob export source using the default Azure credential.
func AzureBlobFactory(ctx context.Context, name string, profiles config.Registry) (Source, error) {
	var p AzureBlobProfile
	if err := profiles.Decode(ctx, name, &p); err != nil {
		return nil, err
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain azure credential: %w", err)
	}
	client, err := azblob.NewClient(p.AccountURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client: %w", err)
	}

	return &exportSource{
		name: name,
		open: func(ctx context.Context) (io.ReadCloser, error) {
			resp, err := client.DownloadStream(ctx, p.Container, p.Blob, nil)
			if err != nil {
				return nil, fmt.Errorf("download %s/%s: %w", p.Container, p.Blob, err)
			}
			return resp.Body, nil
		},
	}, nil
}
