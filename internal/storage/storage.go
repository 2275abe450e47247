package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/fx"

	"github.com/Ealfred1/ResQ-X-checklist/internal/config"
	"github.com/Ealfred1/ResQ-X-checklist/pkg/logger"
)

var Module = fx.Module("storage",
	fx.Provide(NewService),
)

// ErrDisabled is returned by every operation when storage is not configured.
var ErrDisabled = errors.New("storage service not enabled")

// ErrNotFound is returned when the requested object does not exist.
var ErrNotFound = errors.New("object not found")

// objectAPI is the subset of the S3 client the service needs.
type objectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Object is a fully read object.
type Object struct {
	Key         string
	ContentType string
	Data        []byte
}

// Service reads guide assets from an S3-compatible bucket (MinIO in development).
type Service struct {
	client objectAPI
	bucket string
	log    *slog.Logger
}

// NewService creates the storage service. It is inert when storage is not configured.
func NewService(cfg *config.Config, log *slog.Logger) (*Service, error) {
	sc := cfg.Storage
	log = log.With(logger.Scope("storage"))

	if !sc.IsConfigured() {
		log.Debug("storage service disabled - no configuration provided")
		return &Service{bucket: sc.Bucket, log: log}, nil
	}

	resolver := aws.EndpointResolverWithOptionsFunc(
		func(service, region string, options ...interface{}) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               sc.Endpoint,
				HostnameImmutable: true,
				SigningRegion:     sc.Region,
			}, nil
		},
	)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(sc.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(sc.AccessKey, sc.SecretKey, "")),
		awsconfig.WithEndpointResolverWithOptions(resolver),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// path-style addressing is required for MinIO
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	log.Info("storage service initialized",
		slog.String("endpoint", sc.Endpoint),
		slog.String("bucket", sc.Bucket),
	)
	return &Service{client: client, bucket: sc.Bucket, log: log}, nil
}

// Enabled returns true if the storage service is properly configured
func (s *Service) Enabled() bool {
	return s.client != nil
}

// Bucket returns the bucket objects are read from.
func (s *Service) Bucket() string {
	return s.bucket
}

// Get reads the whole object stored under key.
func (s *Service) Get(ctx context.Context, key string) (*Object, error) {
	if !s.Enabled() {
		return nil, ErrDisabled
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%s/%s: %w", s.bucket, key, ErrNotFound)
		}
		s.log.Error("failed to get object", slog.String("key", key), logger.Error(err))
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", key, err)
	}

	return &Object{
		Key:         key,
		ContentType: aws.ToString(out.ContentType),
		Data:        data,
	}, nil
}

// Exists reports whether an object is stored under key.
func (s *Service) Exists(ctx context.Context, key string) (bool, error) {
	if !s.Enabled() {
		return false, ErrDisabled
	}

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("head object %s: %w", key, err)
	}
	return true, nil
}

func isNotFound(err error) bool {
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &noKey) || errors.As(err, &notFound)
}
