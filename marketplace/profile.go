package marketplace

import (
	"context"
	"fmt"

	"github.com/dealgrid/dealgrid-go/httpclient"
)

const profilePath = "/profile"

// ProfileService reads and edits the authenticated user's account.
type ProfileService struct {
	client httpclient.Client
}

func newProfileService(client httpclient.Client, _ settings) *ProfileService {
	return &ProfileService{client: client}
}

// Me returns the current user's profile.
func (s *ProfileService) Me(ctx context.Context) (Profile, error) {
	raw, err := s.client.Get(ctx, profilePath, nil)
	if err != nil {
		return Profile{}, err
	}
	return decodeAs[Profile](raw)
}

// Update edits the profile. Empty input fields are left unchanged.
func (s *ProfileService) Update(ctx context.Context, input UpdateProfileInput) (Profile, error) {
	if err := validate.Struct(input); err != nil {
		return Profile{}, fmt.Errorf("invalid profile update: %w", err)
	}

	raw, err := s.client.Patch(ctx, profilePath, &httpclient.RequestOptions{Body: input})
	if err != nil {
		return Profile{}, err
	}
	return decodeAs[Profile](raw)
}

// UploadAvatar uploads a new avatar image and reports upload progress
// through onProgress when it is non-nil.
func (s *ProfileService) UploadAvatar(ctx context.Context, data []byte, contentType string, onProgress httpclient.ProgressFunc) (Profile, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	raw, err := s.client.Post(ctx, profilePath+"/avatar", &httpclient.RequestOptions{
		Headers:    map[string]string{"Content-Type": contentType},
		Body:       data,
		OnProgress: onProgress,
	})
	if err != nil {
		return Profile{}, err
	}
	return decodeAs[Profile](raw)
}
