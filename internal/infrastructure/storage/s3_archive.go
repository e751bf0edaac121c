package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"placement-prep/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type putter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Archive keeps raw resume uploads in an S3-compatible bucket (R2, MinIO, S3).
type Archive struct {
	client putter
	bucket string
	newID  func() uuid.UUID
}

func NewArchive(ctx context.Context, cfg config.StorageConfig) (*Archive, error) {
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "auto"
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		awsconfig.WithRegion(region),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if ep := strings.TrimSpace(cfg.Endpoint); ep != "" {
			o.BaseEndpoint = aws.String(ep)
			o.UsePathStyle = true
		}
	})
	return &Archive{client: client, bucket: cfg.Bucket, newID: uuid.New}, nil
}

// ResumeKey is the object key for a user's upload: resumes/<user_id>/<uuid><ext>.
func ResumeKey(userID, objectID uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return "resumes/" + userID.String() + "/" + objectID.String() + ext
}

// PutResume stores data and returns the object key.
func (a *Archive) PutResume(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (string, error) {
	if a == nil || a.client == nil {
		return "", errors.New("nil archive")
	}
	key := ResumeKey(userID, a.newID(), filename)

	in := &s3.PutObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := a.client.PutObject(ctx, in); err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return key, nil
}
