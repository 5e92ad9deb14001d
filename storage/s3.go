// Package storage uploads finished videos to S3. Upload is optional: when no
// bucket is configured the pipeline leaves artifacts on local disk only.
package storage

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader wraps the S3 client behind the narrow surface the pipeline needs.
type Uploader struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewUploader builds an uploader from the default AWS configuration chain.
func NewUploader(ctx context.Context, bucket, region, prefix string) (*Uploader, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Uploader{
		client: s3.NewFromConfig(awsCfg),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

// UploadVideo puts the finished MP4 under <prefix>/<videoID>.mp4 and returns
// the object key.
func (u *Uploader) UploadVideo(ctx context.Context, videoID, videoPath string) (string, error) {
	file, err := os.Open(videoPath)
	if err != nil {
		return "", fmt.Errorf("failed to open video: %w", err)
	}
	defer file.Close()

	key := path.Join(u.prefix, videoID+".mp4")
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String("video/mp4"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 upload failed: %w", err)
	}
	return key, nil
}
