package s3

import (
	"context"

	"github.com/antinvestor/service-ocr/apps/default/service/storage/provider/cloud"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gocloud.dev/blob/s3blob"
)

// ProviderS3 keeps temporary uploads in an S3 compatible bucket using static credentials.
type ProviderS3 struct {
	*cloud.ProviderCloud

	s3Bucket      string
	s3Endpoint    string
	s3AccessKeyID string
	s3Secret      string
	s3Token       string
	s3Region      string
	client        *s3.Client
}

func (provider *ProviderS3) Setup(ctx context.Context) error {
	s3Config := aws.Config{
		Credentials:  credentials.NewStaticCredentialsProvider(provider.s3AccessKeyID, provider.s3Secret, provider.s3Token),
		BaseEndpoint: aws.String(provider.s3Endpoint),
		Region:       provider.s3Region,
	}

	provider.client = s3.NewFromConfig(s3Config, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	bucket, err := s3blob.OpenBucketV2(ctx, provider.client, provider.s3Bucket, nil)
	if err != nil {
		return err
	}

	provider.UseBucket(bucket)
	return nil
}

func NewProvider(name, publicBaseURL, s3Bucket, s3Endpoint, s3Region, s3Secret, s3Token, s3AccessKeyID string) *ProviderS3 {

	return &ProviderS3{
		ProviderCloud: cloud.NewProvider(name, "s3://"+s3Bucket, publicBaseURL),
		s3Bucket:      s3Bucket,
		s3Endpoint:    s3Endpoint,
		s3Region:      s3Region,
		s3Secret:      s3Secret,
		s3Token:       s3Token,
		s3AccessKeyID: s3AccessKeyID,
	}
}
