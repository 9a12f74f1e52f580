package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/pawconnect-server/internal/apierrors"
	"github.com/dtroode/pawconnect-server/internal/logger"
	"github.com/dtroode/pawconnect-server/internal/model"
)

const (
	// MaxAvatarSize is the largest accepted profile image.
	MaxAvatarSize = 2 << 20

	avatarPrefix = "avatars/"

	MsgStorageDisabled  = "Profile images are not available"
	MsgUnsupportedImage = "Unsupported image type"
	MsgImageTooLarge    = "Image must not exceed 2 MiB"
	MsgImageEmpty       = "Image is empty"
)

var avatarTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// AvatarUpload is one profile image sent by the account owner.
type AvatarUpload struct {
	ContentType string
	Size        int64
	Body        io.Reader
}

// Avatar stores profile images in object storage and keeps the account's
// profileImageRef pointing at the current one.
type Avatar struct {
	auth    *Auth
	storage model.Storage
	logger  *logger.Logger
}

// NewAvatar returns an avatar service. storage may be nil, in which case
// uploads are refused and downloads report NotFound.
func NewAvatar(auth *Auth, storage model.Storage, logger *logger.Logger) *Avatar {
	return &Avatar{auth: auth, storage: storage, logger: logger}
}

func (s *Avatar) Upload(ctx context.Context, session model.Session, id int64, in AvatarUpload) (model.User, error) {
	if s.storage == nil {
		return model.User{}, apierrors.NewErrBadRequest(MsgStorageDisabled)
	}

	user, err := s.auth.ownedAccount(ctx, session, id)
	if err != nil {
		return model.User{}, err
	}

	ext, ok := avatarTypes[strings.ToLower(in.ContentType)]
	if !ok {
		return model.User{}, apierrors.NewErrValidation("file", MsgUnsupportedImage, in.ContentType)
	}
	if in.Size <= 0 {
		return model.User{}, apierrors.NewErrValidation("file", MsgImageEmpty, in.Size)
	}
	if in.Size > MaxAvatarSize {
		return model.User{}, apierrors.NewErrValidation("file", MsgImageTooLarge, in.Size)
	}

	key := fmt.Sprintf("%s%d/%s%s", avatarPrefix, user.ID, uuid.NewString(), ext)
	if err := s.storage.Upload(ctx, key, io.LimitReader(in.Body, in.Size), in.Size, in.ContentType); err != nil {
		s.logger.Error("Avatar service: failed to upload image",
			"user_id", user.ID,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	previous := user.ProfileImageRef
	user.ProfileImageRef = key
	user, err = s.auth.users.Save(ctx, user)
	if err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Warn("Avatar service: failed to remove orphaned image",
				"key", key,
				"error", delErr.Error())
		}
		return model.User{}, fmt.Errorf("failed to save user: %w", err)
	}

	if strings.HasPrefix(previous, avatarPrefix) {
		if err := s.storage.Delete(ctx, previous); err != nil {
			s.logger.Warn("Avatar service: failed to remove previous image",
				"key", previous,
				"error", err.Error())
		}
	}

	s.logger.Info("Avatar service: image updated", "user_id", user.ID, "key", key)
	return user, nil
}

// Download opens the stored profile image of account id.
func (s *Avatar) Download(ctx context.Context, id int64) (io.ReadCloser, string, error) {
	notFound := apierrors.NewErrNotFound("Avatar", "userId", id)
	if s.storage == nil {
		return nil, "", notFound
	}

	user, err := s.auth.users.GetByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		return nil, "", apierrors.NewErrNotFound("User", "id", id)
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to get user by id: %w", err)
	}
	if !strings.HasPrefix(user.ProfileImageRef, avatarPrefix) {
		return nil, "", notFound
	}

	rc, err := s.storage.Download(ctx, user.ProfileImageRef)
	if errors.Is(err, model.ErrNotFound) {
		return nil, "", notFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to download avatar: %w", err)
	}

	return rc, contentTypeFor(user.ProfileImageRef), nil
}

func contentTypeFor(key string) string {
	ext := path.Ext(key)
	for ct, e := range avatarTypes {
		if e == ext {
			return ct
		}
	}
	return "application/octet-stream"
}
