package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/config"
)

const maxPhotoWidth = 1024

// PhotoStorage recompresses pet photos to webp and uploads them to an
// S3-compatible bucket. A nil *PhotoStorage means uploads are disabled.
type PhotoStorage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

func New(cfg *config.Config) *PhotoStorage {
	if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
		return nil
	}

	opts := s3.Options{
		Region: cfg.S3Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		),
		UsePathStyle: true,
	}
	if cfg.S3Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.S3Endpoint)
	}

	return &PhotoStorage{
		client:    s3.New(opts),
		bucket:    cfg.S3Bucket,
		publicURL: strings.TrimSuffix(cfg.S3PublicURL, "/"),
	}
}

// UploadPetPhoto decodes a JPEG/PNG, downscales to at most maxPhotoWidth,
// re-encodes as webp and uploads. Returns the public URL of the object.
func (p *PhotoStorage) UploadPetPhoto(ctx context.Context, petID uint, r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode photo: %w", err)
	}

	img := downscale(src, maxPhotoWidth)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := fmt.Sprintf("pets/%d/%s.webp", petID, uuid.NewString())

	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}

	return p.publicURL + "/" + key, nil
}

func downscale(src image.Image, maxWidth int) image.Image {
	b := src.Bounds()
	if b.Dx() <= maxWidth {
		return src
	}

	h := b.Dy() * maxWidth / b.Dx()
	dst := image.NewRGBA(image.Rect(0, 0, maxWidth, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
