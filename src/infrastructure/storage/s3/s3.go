// Package s3 stores diet plan PDFs in an S3 bucket.
package s3

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	logger "diet-challenge-api/src/infrastructure/logger"
	"diet-challenge-api/src/infrastructure/utils"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	awss3 "github.com/aws/aws-sdk-go/service/s3"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// ObjectStoreInterface abstracts the bucket so use cases and tests do not
// touch the AWS SDK directly
type ObjectStoreInterface interface {
	Put(key string, body []byte, contentType string) error
	Get(key string) ([]byte, error)
	StreamRead(key string) (io.ReadCloser, int64, error)
	Delete(key string) error
	PresignedURL(key string, expiry time.Duration) (string, error)
	NewKey(prefix, filename string) string
}

type ObjectStore struct {
	client *awss3.S3
	bucket string
	Logger *logger.Logger
}

// NewObjectStore builds an S3-backed store from the environment. Credentials
// come from the default AWS chain; only AWS_S3_BUCKET and AWS_REGION are read
// here.
func NewObjectStore(loggerInstance *logger.Logger) (*ObjectStore, error) {
	bucket := utils.GetEnv("AWS_S3_BUCKET", "")
	if bucket == "" {
		return nil, fmt.Errorf("AWS_S3_BUCKET not configured")
	}
	region := utils.GetEnv("AWS_REGION", "ap-south-1")

	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &ObjectStore{
		client: awss3.New(sess),
		bucket: bucket,
		Logger: loggerInstance,
	}, nil
}

// NewKey derives a collision-free object key that keeps the original file
// extension
func (s *ObjectStore) NewKey(prefix, filename string) string {
	id, _ := uuid.NewV4()
	ext := strings.ToLower(path.Ext(filename))
	return path.Join(prefix, id.String()+ext)
}

func (s *ObjectStore) Put(key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(&awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		s.Logger.Error("Error uploading object", zap.Error(err), zap.String("key", key))
		return err
	}
	s.Logger.Info("Object uploaded", zap.String("key", key), zap.Int("size", len(body)))
	return nil
}

func (s *ObjectStore) Get(key string) ([]byte, error) {
	reader, _, err := s.StreamRead(key)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

// StreamRead returns the object body and its length without buffering it in
// memory, for large PDF downloads
func (s *ObjectStore) StreamRead(key string) (io.ReadCloser, int64, error) {
	out, err := s.client.GetObject(&awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.Logger.Error("Error reading object", zap.Error(err), zap.String("key", key))
		return nil, 0, err
	}
	return out.Body, aws.Int64Value(out.ContentLength), nil
}

func (s *ObjectStore) Delete(key string) error {
	_, err := s.client.DeleteObject(&awss3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		s.Logger.Error("Error deleting object", zap.Error(err), zap.String("key", key))
		return err
	}
	return nil
}

// PresignedURL returns a time-limited download link for an object
func (s *ObjectStore) PresignedURL(key string, expiry time.Duration) (string, error) {
	req, _ := s.client.GetObjectRequest(&awss3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	url, err := req.Presign(expiry)
	if err != nil {
		s.Logger.Error("Error presigning object URL", zap.Error(err), zap.String("key", key))
		return "", err
	}
	return url, nil
}
