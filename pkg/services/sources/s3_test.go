package sources

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, aws.ToString(params.Bucket), aws.ToString(params.Key))
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

func TestS3Source(t *testing.T) {
	client := new(mockS3)
	client.On("GetObject", mock.Anything, "exports", "orders.json").
		Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(sampleExport))}, nil).
		Once()

	src := NewS3Source("bucket", client, "exports", "orders.json")
	orders, err := src.FetchOrders(context.Background(), time.Time{})

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(orders))
	client.AssertExpectations(t)
}

func TestS3Source_GetObjectFails(t *testing.T) {
	client := new(mockS3)
	client.On("GetObject", mock.Anything, "exports", "orders.json").
		Return(nil, errors.New("access denied"))

	src := NewS3Source("bucket", client, "exports", "orders.json")
	_, err := src.FetchOrders(context.Background(), time.Time{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://exports/orders.json")
}
