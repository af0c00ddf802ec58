package services

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const coverUploadTTL = 15 * time.Minute

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// ObjectPresigner is the part of *s3.PresignClient used for uploads.
type ObjectPresigner interface {
	PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// CoverUpload is what an admin needs to upload a cover image and then
// reference it from a post.
type CoverUpload struct {
	UploadURL     string    `json:"uploadURL"`
	Method        string    `json:"method"`
	CoverImageURL string    `json:"coverImageURL"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// CoverImageService hands out presigned S3 PUT URLs for post cover images.
type CoverImageService struct {
	presigner     ObjectPresigner
	bucket        string
	publicBaseURL string
	now           func() time.Time
	logger        zerolog.Logger
}

// NewCoverImageService presigns uploads into bucket. Public URLs are built from
// publicBaseURL, or the bucket's virtual-hosted S3 URL when it is empty.
func NewCoverImageService(presigner ObjectPresigner, bucket, region, publicBaseURL string) *CoverImageService {
	if publicBaseURL == "" {
		publicBaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &CoverImageService{
		presigner:     presigner,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
		logger:        log.With().Str("service", "coverImageService").Logger(),
	}
}

func (s *CoverImageService) PresignUpload(ctx context.Context, fileName, contentType string) (*CoverUpload, error) {
	if strings.TrimSpace(fileName) == "" {
		return nil, errs.NewMissingRequiredFieldError("fileName")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, errs.NewInvalidFieldError("contentType", "must be an image type")
	}

	key := path.Join("covers", uuid.NewString(), objectName(fileName))
	req, err := s.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(coverUploadTTL))
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to presign cover upload")
		return nil, errs.NewInternalErrorWithCause("failed to prepare upload", err)
	}

	return &CoverUpload{
		UploadURL:     req.URL,
		Method:        req.Method,
		CoverImageURL: s.publicBaseURL + "/" + key,
		ExpiresAt:     s.now().Add(coverUploadTTL),
	}, nil
}

func objectName(fileName string) string {
	name := unsafeKeyChars.ReplaceAllString(path.Base(strings.ReplaceAll(fileName, `\`, "/")), "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		return "cover"
	}
	return name
}
