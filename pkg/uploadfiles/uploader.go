package uploadfiles

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const maxImageSize = 3 * 1024 * 1024

type Uploader struct {
	client *s3.Client
	bucket string
}

type Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
}

func NewUploader(cfg Config) (*Uploader, error) {
	creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	cfgAWS, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfgAWS, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
	})

	return &Uploader{
		client: client,
		bucket: cfg.BucketName,
	}, nil
}

// UploadImage stores an uploaded photo under folder/<prefix>-<timestamp><ext>
// and returns its public URL. Non-image uploads are rejected.
func (u *Uploader) UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder, prefix string) (string, error) {
	if header.Size > maxImageSize {
		return "", fmt.Errorf("file size exceeds 3MB limit")
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("not an image: %s", contentType)
	}

	pr, pw := io.Pipe()

	go func() {
		defer pw.Close()
		_, err := io.Copy(pw, file)
		if err != nil {
			pw.CloseWithError(err)
		}
	}()

	ext := filepath.Ext(header.Filename)
	key := fmt.Sprintf("%s/%s-%d%s", folder, prefix, time.Now().Unix(), ext)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        pr,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	publicURL := fmt.Sprintf("%s/%s", strings.TrimSuffix(*u.client.Options().BaseEndpoint, "/"), key)

	return publicURL, nil
}

func (u *Uploader) Delete(ctx context.Context, fileURL string) error {
	parts := strings.Split(fileURL, "/")
	if len(parts) < 2 {
		return fmt.Errorf("invalid file URL")
	}

	key := strings.Join(parts[len(parts)-2:], "/")

	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
