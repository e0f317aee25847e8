package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/adityawarmn/projectflow-api/internal/dto"
	"github.com/adityawarmn/projectflow-api/internal/repository"
)

// Avatar upload failures the handler maps onto 4xx responses.
var (
	ErrAvatarTooLarge        = errors.New("avatar exceeds the maximum allowed size")
	ErrUnsupportedAvatarType = errors.New("avatar must be a png, jpeg or webp image")
)

var allowedAvatarTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
}

// FileStorage uploads binary content and returns a public URL.
type FileStorage interface {
	Upload(ctx context.Context, reader io.Reader, folder, filename string) (string, error)
}

// UserService manages accounts and avatar uploads.
type UserService interface {
	List(ctx context.Context) ([]dto.UserResponse, error)
	Get(ctx context.Context, id uint) (dto.UserResponse, error)
	Update(ctx context.Context, id uint, payload dto.UserUpdateRequest) (dto.UserResponse, error)
	Delete(ctx context.Context, id uint) error
	UploadAvatar(ctx context.Context, id uint, file *multipart.FileHeader) (dto.AvatarResponse, error)
}

type userService struct {
	users         repository.UserRepository
	recorder      ActivityRecorder
	storage       FileStorage
	validator     *validator.Validate
	logger        zerolog.Logger
	uploadFolder  string
	maxAvatarSize int64
}

// NewUserService constructs the user service. The storage client may be
// nil, in which case avatar uploads are rejected.
func NewUserService(users repository.UserRepository, recorder ActivityRecorder, storage FileStorage, validate *validator.Validate, uploadFolder string, maxAvatarSizeMB int, logger zerolog.Logger) UserService {
	if maxAvatarSizeMB <= 0 {
		maxAvatarSizeMB = 5
	}
	return &userService{
		users:         users,
		recorder:      recorder,
		storage:       storage,
		validator:     validate,
		logger:        logger.With().Str("component", "user_service").Logger(),
		uploadFolder:  uploadFolder,
		maxAvatarSize: int64(maxAvatarSizeMB) << 20,
	}
}

func (s *userService) List(ctx context.Context) ([]dto.UserResponse, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, dto.NewUserResponse(user))
	}
	return responses, nil
}

func (s *userService) Get(ctx context.Context, id uint) (dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, id uint, payload dto.UserUpdateRequest) (dto.UserResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	before, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	updates := map[string]interface{}{}
	if payload.Name != nil {
		updates["name"] = strings.TrimSpace(*payload.Name)
	}
	if payload.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*payload.Email))
	}
	if payload.Role != nil {
		updates["role"] = *payload.Role
	}

	if len(updates) == 0 {
		return dto.NewUserResponse(before), nil
	}

	after, err := s.users.Update(ctx, id, updates)
	if err != nil {
		return dto.UserResponse{}, err
	}

	s.recorder.RecordUpdated(ctx, after, snapshotOf(s.logger, before), snapshotOf(s.logger, after))
	return dto.NewUserResponse(after), nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.users.Delete(ctx, &user); err != nil {
		return err
	}

	s.recorder.RecordDeleted(ctx, user, snapshotOf(s.logger, user))
	return nil
}

func (s *userService) UploadAvatar(ctx context.Context, id uint, file *multipart.FileHeader) (dto.AvatarResponse, error) {
	if s.storage == nil {
		return dto.AvatarResponse{}, errors.New("file storage is not configured")
	}
	if file.Size > s.maxAvatarSize {
		return dto.AvatarResponse{}, ErrAvatarTooLarge
	}

	before, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AvatarResponse{}, ErrUserNotFound
		}
		return dto.AvatarResponse{}, err
	}

	source, err := file.Open()
	if err != nil {
		return dto.AvatarResponse{}, err
	}
	defer source.Close()

	content, err := io.ReadAll(io.LimitReader(source, s.maxAvatarSize+1))
	if err != nil {
		return dto.AvatarResponse{}, err
	}
	if int64(len(content)) > s.maxAvatarSize {
		return dto.AvatarResponse{}, ErrAvatarTooLarge
	}

	// Sniff the real content type; the client-provided header is not trusted.
	detected := mimetype.Detect(content)
	if _, ok := allowedAvatarTypes[detected.String()]; !ok {
		return dto.AvatarResponse{}, ErrUnsupportedAvatarType
	}

	filename := fmt.Sprintf("user-%d%s", id, detected.Extension())
	url, err := s.storage.Upload(ctx, bytes.NewReader(content), s.uploadFolder, filename)
	if err != nil {
		return dto.AvatarResponse{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	after, err := s.users.Update(ctx, id, map[string]interface{}{"avatar": url})
	if err != nil {
		return dto.AvatarResponse{}, err
	}

	s.recorder.RecordUpdated(ctx, after, snapshotOf(s.logger, before), snapshotOf(s.logger, after))

	s.logger.Info().Uint("user_id", id).Str("content_type", detected.String()).Msg("avatar updated")
	return dto.AvatarResponse{Avatar: after.Avatar}, nil
}
