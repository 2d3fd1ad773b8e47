package media

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// uploadTransformation bounds stored derivatives to 1200x630, auto quality,
// normalized to webp.
const uploadTransformation = "c_limit,w_1200,h_630,q_auto/f_webp"

// Cloudinary implements Service against the Cloudinary upload API.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("configure cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, r io.Reader, folder string) (*UploadResult, error) {
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:         folder,
		ResourceType:   "image",
		Transformation: uploadTransformation,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	// An upload without an assigned public id has nothing durable to hand
	// back and counts as a failure.
	if res.PublicID == "" {
		return nil, fmt.Errorf("cloudinary upload: no public id in response")
	}

	return &UploadResult{
		URL:      res.SecureURL,
		PublicID: res.PublicID,
		Format:   res.Format,
		Bytes:    res.Bytes,
	}, nil
}

func (c *Cloudinary) Destroy(ctx context.Context, publicID string) (string, error) {
	if publicID == "" {
		return "", fmt.Errorf("public id is required")
	}

	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return "", fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.Result != "ok" {
		return res.Result, fmt.Errorf("failed to delete image: %s", res.Result)
	}
	return res.Result, nil
}
