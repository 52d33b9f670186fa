package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/dogbox/internal/common"
	sc "github.com/dmitrijs2005/dogbox/internal/server/config"
	"github.com/dmitrijs2005/dogbox/internal/server/models"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}

	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	now = time.Now

	headObject = func(c *s3.Client, ctx context.Context, in *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
		return c.HeadObject(ctx, in)
	}
)

// BlobService hands out presigned URLs for the S3 bucket that holds file
// content. Content never passes through the server.
type BlobService struct {
	config *sc.Config
}

func NewBlobService(config *sc.Config) *BlobService {
	return &BlobService{config: config}
}

// BlobKey is the object key of a file: the name is used verbatim under
// a per-owner prefix.
func BlobKey(ownerID, name string) string {
	return path.Join("users", ownerID, name)
}

func (s *BlobService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// PresignPut returns a URL the client PUTs the content to. A PUT to an
// existing key replaces the object.
func (s *BlobService) PresignPut(ctx context.Context, ownerID, name string) (*models.PresignedRequest, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	expiresAt := now().Add(s.config.PresignExpiry)
	req, err := presignPutObject(newS3PresignClient(client), ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(BlobKey(ownerID, name)),
	}, s3.WithPresignExpires(s.config.PresignExpiry))
	if err != nil {
		return nil, err
	}

	return &models.PresignedRequest{URL: req.URL, Headers: signedHeaders(req.SignedHeader), ExpiresAt: expiresAt}, nil
}

// PresignGet returns a short-lived retrieval URL. It fails with
// common.ErrNotFound when no object exists under the key.
func (s *BlobService) PresignGet(ctx context.Context, ownerID, name string) (*models.PresignedRequest, error) {
	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	key := BlobKey(ownerID, name)

	_, err = headObject(client, ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *types.NotFound
		var nsk *types.NoSuchKey
		if errors.As(err, &nf) || errors.As(err, &nsk) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("head object: %w", err)
	}

	expiresAt := now().Add(s.config.PresignExpiry)
	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.S3Bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.config.PresignExpiry))
	if err != nil {
		return nil, err
	}

	return &models.PresignedRequest{URL: req.URL, ExpiresAt: expiresAt}, nil
}

// signedHeaders drops Host; net/http sets it from the URL.
func signedHeaders(h http.Header) map[string][]string {
	out := make(map[string][]string, len(h))
	for k, v := range h {
		if http.CanonicalHeaderKey(k) == "Host" {
			continue
		}
		out[k] = v
	}
	return out
}
