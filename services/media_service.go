package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"shopnest/config"
	"shopnest/models"
)

// MediaStore hosts uploaded images. Upload accepts a base64 data URI as sent
// by browser file readers and returns the stored asset's ID and public URL.
// Width is advisory; the store may ignore it.
type MediaStore interface {
	Upload(ctx context.Context, data, folder string, width int) (models.Avatar, error)
	Destroy(ctx context.Context, publicID string) error
}

type S3MediaStore struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

func NewS3MediaStore(ctx context.Context, cfg *config.MediaConfig) (*S3MediaStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3MediaStore{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

func (s *S3MediaStore) Upload(ctx context.Context, data, folder string, width int) (models.Avatar, error) {
	payload, contentType, err := decodeDataURI(data)
	if err != nil {
		return models.Avatar{}, err
	}

	key := fmt.Sprintf("%s/%s", folder, uuid.New())
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(payload),
		ContentType: &contentType,
	})
	if err != nil {
		return models.Avatar{}, fmt.Errorf("media upload failed: %w", err)
	}

	return models.Avatar{
		PublicID: key,
		URL:      s.publicBaseURL + "/" + key,
	}, nil
}

func (s *S3MediaStore) Destroy(ctx context.Context, publicID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &publicID,
	})
	if err != nil {
		return fmt.Errorf("media destroy failed: %w", err)
	}
	return nil
}

// decodeDataURI accepts "data:image/png;base64,AAAA..." or a bare base64
// string and returns the raw bytes plus a content type.
func decodeDataURI(data string) ([]byte, string, error) {
	contentType := "application/octet-stream"
	encoded := data

	if strings.HasPrefix(data, "data:") {
		idx := strings.Index(data, ",")
		if idx < 0 {
			return nil, "", fmt.Errorf("malformed data URI")
		}
		meta := data[len("data:"):idx]
		encoded = data[idx+1:]
		if mt, _, _ := strings.Cut(meta, ";"); mt != "" {
			contentType = mt
		}
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("decode image payload: %w", err)
	}
	return payload, contentType, nil
}
