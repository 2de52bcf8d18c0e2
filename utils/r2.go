// utils/r2.go
package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MaxAvatarBytes caps profile pictures at 5MB.
const MaxAvatarBytes = 5 * 1024 * 1024

// ErrAvatarType is returned when the uploaded file is not an image the
// frontend can render.
var ErrAvatarType = errors.New("la photo de profil doit être au format JPEG, PNG ou WebP")

// ErrAvatarTooLarge is returned when the uploaded file exceeds MaxAvatarBytes.
var ErrAvatarTooLarge = errors.New("la photo de profil dépasse la taille maximale de 5 Mo")

var avatarContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

var r2Client *s3.Client
var r2Bucket string
var cdnBaseURL string

func InitR2() error {
	accountID := os.Getenv("CLOUDFLARE_ACCOUNT_ID")
	accessKeyID := os.Getenv("R2_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("R2_ACCESS_KEY_SECRET")
	r2Bucket = os.Getenv("R2_BUCKET_NAME")
	if r2Bucket == "" {
		return errors.New("R2_BUCKET_NAME environment variable not set")
	}
	cdnBaseURL = os.Getenv("CDN_BASE_URL")
	if cdnBaseURL == "" {
		cdnBaseURL = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion("auto"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)),
		config.WithEndpointResolver(aws.EndpointResolverFunc(
			func(service, region string) (aws.Endpoint, error) {
				return aws.Endpoint{
					URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID),
				}, nil
			}),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to load R2 config: %w", err)
	}

	r2Client = s3.NewFromConfig(cfg)
	return nil
}

// ValidateAvatarUpload rejects files that are not images or exceed the
// avatar size cap, before anything touches the network.
func ValidateAvatarUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxAvatarBytes {
		return ErrAvatarTooLarge
	}
	if !avatarContentTypes[fileHeader.Header.Get("Content-Type")] {
		return ErrAvatarType
	}
	return nil
}

// UploadAvatarToR2 uploads a profile picture to R2 and returns the public
// CDN URL. key is the R2 object key (e.g., "avatars/abc123.png").
func UploadAvatarToR2(fileHeader *multipart.FileHeader, key string) (string, error) {
	if err := ValidateAvatarUpload(fileHeader); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err = r2Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(r2Bucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}

	return fmt.Sprintf("%s/%s", cdnBaseURL, key), nil
}
