package sources

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/fabric-atlas/pkg/services/config"
)

type S3Profile struct {
	Bucket string `ini:"bucket" validate:"required"`
	Key    string `ini:"key" validate:"required"`
	Region string `ini:"region"`
}

type s3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

func NewS3Source(name string, client s3API, bucket, key string) Source {
	return &exportSource{
		name: name,
		open: func(ctx context.Context) (io.ReadCloser, error) {
			out, err := client.GetObject(ctx, &s3.GetObjectInput{
				Bucket: aws.String(bucket),
				Key:    aws.String(key),
			})
			if err != nil {
				return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
			}
			return out.Body, nil
		},
	}
}

// S3Factory builds an S3 export source using the default AWS credential chain.
func S3Factory(ctx context.Context, name string, profiles config.Registry) (Source, error) {
	var p S3Profile
	if err := profiles.Decode(ctx, name, &p); err != nil {
		return nil, err
	}

	var opts []func(*awsconfig.LoadOptions) error
	if p.Region != "" {
		opts = append(opts, awsconfig.WithRegion(p.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	return NewS3Source(name, s3.NewFromConfig(cfg), p.Bucket, p.Key), nil
}
