package s3aws

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"portrait-backend/internal/pkg/logger"
	"portrait-backend/internal/pkg/redis"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

const presignExpiry = 24 * time.Hour

type S3Config struct {
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// S3Client archives embedding snapshots. redis is optional and only caches
// presigned URLs.
type S3Client struct {
	Client     s3iface.S3API
	BucketName string
	redis      redis.IRedis
}

type Is3 interface {
	GetBucketName() string
	UploadFile(ctx context.Context, key string, fileBytes []byte, contentType string) error
	UploadJSON(ctx context.Context, key string, v any) error
	GetPresignedURL(key string) (string, error)
}

func newSession(cfg S3Config) (*session.Session, error) {
	return session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWSRegion),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		),
	})
}

func NewS3Client(cfg S3Config, bucketName string, rds redis.IRedis) (*S3Client, error) {
	sess, err := newSession(cfg)
	if err != nil {
		return nil, err
	}

	s3Client := &S3Client{
		Client:     s3.New(sess),
		BucketName: bucketName,
		redis:      rds,
	}

	exists, err := s3Client.bucketExists()
	if err != nil {
		return nil, err
	}
	if !exists {
		if err = s3Client.createBucket(); err != nil {
			return nil, err
		}
	}

	return s3Client, nil
}

func (s *S3Client) bucketExists() (bool, error) {
	_, err := s.Client.HeadBucket(&s3.HeadBucketInput{
		Bucket: aws.String(s.BucketName),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			switch aerr.Code() {
			case s3.ErrCodeNoSuchBucket, "NotFound":
				return false, nil
			}
		}
		return false, err
	}

	return true, nil
}

func (s *S3Client) createBucket() error {
	logger.Info.Printf("Creating bucket: %s", s.BucketName)
	_, err := s.Client.CreateBucket(&s3.CreateBucketInput{
		Bucket: aws.String(s.BucketName),
	})
	return err
}

func (s *S3Client) GetBucketName() string {
	return s.BucketName
}

func (s *S3Client) UploadFile(ctx context.Context, key string, fileBytes []byte, contentType string) error {
	_, err := s.Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(fileBytes),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return nil
}

// UploadJSON marshals v and stores it under key.
func (s *S3Client) UploadJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return s.UploadFile(ctx, key, data, "application/json")
}

func (s *S3Client) GetPresignedURL(key string) (string, error) {
	cacheKey := fmt.Sprintf("s3:%s:%s", s.BucketName, key)
	if s.redis != nil {
		if cached, err := s.redis.Get(cacheKey); err == nil && strings.HasPrefix(cached, "\"http") {
			return strings.Trim(cached, "\""), nil
		}
	}

	req, _ := s.Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.BucketName),
		Key:    aws.String(key),
	})

	url, err := req.Presign(presignExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign %s: %w", key, err)
	}

	if s.redis != nil {
		// expire the cache well before the URL itself
		if err = s.redis.Set(cacheKey, url, presignExpiry/2); err != nil {
			logger.Warning.Printf("failed to cache presigned url: %v", err)
		}
	}

	return url, nil
}
