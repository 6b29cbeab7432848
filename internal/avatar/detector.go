package avatar

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/spiffcs/faceless/internal/constants"
	"github.com/spiffcs/faceless/internal/log"
	"golang.org/x/sync/errgroup"
)

// ImageHasher hashes the image behind a URL.
type ImageHasher interface {
	Hash(ctx context.Context, url string) (Hash, error)
}

// Ensure Hasher implements ImageHasher interface.
var _ ImageHasher = (*Hasher)(nil)

// Detector decides whether an account still shows its default identicon.
type Detector struct {
	hasher            ImageHasher
	avatarTemplate    string
	identiconTemplate string
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithURLTemplates overrides the avatar and identicon URL templates. Each
// template takes the login as its single %s verb.
func WithURLTemplates(avatar, identicon string) DetectorOption {
	return func(d *Detector) {
		d.avatarTemplate = avatar
		d.identiconTemplate = identicon
	}
}

// NewDetector creates a Detector that hashes both images with hasher.
func NewDetector(hasher ImageHasher, opts ...DetectorOption) *Detector {
	d := &Detector{
		hasher:            hasher,
		avatarTemplate:    constants.AvatarURLTemplate,
		identiconTemplate: constants.IdenticonURLTemplate,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AvatarURL returns the URL of the picture GitHub shows for username.
func (d *Detector) AvatarURL(username string) string {
	return fmt.Sprintf(d.avatarTemplate, url.PathEscape(username))
}

// IdenticonURL returns the URL of the identicon GitHub generates for username.
func (d *Detector) IdenticonURL(username string) string {
	return fmt.Sprintf(d.identiconTemplate, url.PathEscape(username))
}

// IsDefaultAvatar reports whether username's avatar is perceptually
// identical to the identicon generated for that login. Both images are
// fetched concurrently; if either fails the error is returned and no
// verdict is made.
func (d *Detector) IsDefaultAvatar(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, errors.New("username is required")
	}

	var avatarHash, identiconHash Hash

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		h, err := d.hasher.Hash(gctx, d.AvatarURL(username))
		if err != nil {
			return fmt.Errorf("avatar: %w", err)
		}
		avatarHash = h
		return nil
	})

	g.Go(func() error {
		h, err := d.hasher.Hash(gctx, d.IdenticonURL(username))
		if err != nil {
			return fmt.Errorf("identicon: %w", err)
		}
		identiconHash = h
		return nil
	})

	if err := g.Wait(); err != nil {
		return false, err
	}

	match, err := avatarHash.Equal(identiconHash)
	if err != nil {
		return false, err
	}

	if log.IsDebug() {
		distance, _ := avatarHash.Distance(identiconHash)
		log.Debug("compared avatar hashes",
			"user", username,
			"avatar", avatarHash.String(),
			"identicon", identiconHash.String(),
			"distance", distance,
			"match", match)
	}

	return match, nil
}
