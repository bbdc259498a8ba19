package clients

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"SehatCare/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const vaultPrefix = "vault/"

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type S3Client struct {
	api       s3API
	bucket    string
	publicURL string
}

func NewS3Client(ctx context.Context, bucket, region, publicURL string) (*S3Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("clients: failed to load aws config: %w", err)
	}
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3Client{
		api:       s3.NewFromConfig(cfg),
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (c *S3Client) Upload(ctx context.Context, name, contentType string, data []byte) (models.VaultFile, error) {
	key := vaultPrefix + uuid.NewString() + "-" + path.Base(name)
	now := time.Now().UTC()
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"uploadedat": now.Format(time.RFC3339),
			"filetype":   contentType,
		},
	})
	if err != nil {
		return models.VaultFile{}, fmt.Errorf("clients: s3 upload failed: %w", err)
	}
	return models.VaultFile{
		Name:      name,
		URL:       c.publicURL + "/" + key,
		Timestamp: now,
		Metadata:  map[string]string{"fileType": contentType},
	}, nil
}

func (c *S3Client) List(ctx context.Context) ([]models.VaultFile, error) {
	out, err := c.api.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
		Prefix: aws.String(vaultPrefix),
	})
	if err != nil {
		return nil, fmt.Errorf("clients: s3 list failed: %w", err)
	}
	files := make([]models.VaultFile, 0, len(out.Contents))
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		files = append(files, models.VaultFile{
			Name:      path.Base(key),
			URL:       c.publicURL + "/" + key,
			Timestamp: aws.ToTime(obj.LastModified),
		})
	}
	return files, nil
}
