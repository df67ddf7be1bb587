package impl

import (
	"context"
	"log/slog"
	"strings"

	"nutrilens/config"
	deliverycontext "nutrilens/internal/delivery/context"
	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/domain/policy"
	"nutrilens/internal/domain/repository"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const avatarField = "avatar"

type profileService struct {
	principals repository.PrincipalRepository
	hasher     service.PasswordHasher
	media      *mediaHandler
	logger     *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	Principals repository.PrincipalRepository
	Hasher     service.PasswordHasher
	MediaStore service.MediaStore
	Metrics    service.MetricsRecorder
	Config     *config.Config
	Logger     *slog.Logger
}

func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		principals: params.Principals,
		hasher:     params.Hasher,
		media:      newMediaHandler(params.MediaStore, params.Metrics, params.Config),
		logger:     params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *profileService) GetProfile(ctx context.Context, principalID uuid.UUID) (*entity.Principal, error) {
	principal, err := srv.principals.FindByID(ctx, principalID)
	if errors.Is(err, repository.ErrPrincipalNotFound) {
		return nil, domainerrors.ErrPrincipalNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find principal")
	}

	return principal, nil
}

// UpdateAccount applies the supplied attributes and recomputes BMI from the resulting weight and height.
func (srv *profileService) UpdateAccount(ctx context.Context, actor *entity.Principal, input *usecase.UpdateAccountInput) (*entity.Principal, error) {
	if err := validateAccountInput(actor, input); err != nil {
		return nil, err
	}

	principal, err := srv.GetProfile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	applyAccountInput(principal, input)
	principal.Profile.RecomputeBMI()

	if err := srv.principals.UpdateProfile(ctx, principal); err != nil {
		if errors.Is(err, repository.ErrPrincipalNotFound) {
			return nil, domainerrors.ErrPrincipalNotFound
		}

		return nil, errors.Wrap(err, "failed to update profile")
	}

	srv.log(ctx).Info("Account details updated", slog.String("principal_id", actor.ID.String()))

	return principal, nil
}

func validateAccountInput(actor *entity.Principal, input *usecase.UpdateAccountInput) error {
	if *input == (usecase.UpdateAccountInput{}) {
		return domainerrors.ErrValidation.WithMessage("No account details provided")
	}
	if input.FullName != nil && strings.TrimSpace(*input.FullName) == "" {
		return domainerrors.NewValidationError("fullName", "fullName must not be blank")
	}
	if input.Weight != nil && *input.Weight <= 0 {
		return domainerrors.NewValidationError("weight", "weight must be positive")
	}
	if input.Height != nil && *input.Height <= 0 {
		return domainerrors.NewValidationError("height", "height must be positive")
	}

	if input.CompanyRegistrationNo != nil || input.GSTNo != nil {
		if d := policy.EditCompanyFields(actor); !d.Allowed() {
			field := "companyRegistrationNo"
			if input.CompanyRegistrationNo == nil {
				field = "gstNo"
			}

			return domainerrors.NewValidationError(field, d.Reason())
		}
	}

	return nil
}

func applyAccountInput(p *entity.Principal, input *usecase.UpdateAccountInput) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}

	setString(&p.FullName, input.FullName)
	setString(&p.Profile.Mobile, input.Mobile)
	setString(&p.Profile.Address, input.Address)
	setString(&p.Profile.Country, input.Country)
	setString(&p.CompanyRegistrationNo, input.CompanyRegistrationNo)
	setString(&p.GSTNo, input.GSTNo)

	if input.DOB != nil {
		p.Profile.DOB = input.DOB
	}
	if input.Weight != nil {
		p.Profile.Weight = input.Weight
	}
	if input.Height != nil {
		p.Profile.Height = input.Height
	}
	if input.Gender != nil {
		p.Profile.Gender = input.Gender
	}
	if input.IsVeg != nil {
		p.Profile.IsVeg = input.IsVeg
	}
}

func (srv *profileService) ChangePassword(ctx context.Context, actor *entity.Principal, input *usecase.ChangePasswordInput) error {
	if missing := requiredFields("oldPassword", input.OldPassword, "newPassword", input.NewPassword); len(missing) > 0 {
		return domainerrors.ErrValidation.WithMessage(missing[0].Message).WithFieldErrors(missing...)
	}

	principal, err := srv.principals.FindCredentialsByID(ctx, actor.ID)
	if errors.Is(err, repository.ErrPrincipalNotFound) {
		return domainerrors.ErrPrincipalNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to load credentials")
	}

	if !srv.hasher.Check(input.OldPassword, principal.PasswordHash) {
		return domainerrors.NewValidationError("oldPassword", "Invalid old password")
	}
	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return err
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash password")
	}
	if err := srv.principals.UpdatePassword(ctx, actor.ID, hash); err != nil {
		return errors.Wrap(err, "failed to update password")
	}

	srv.log(ctx).Info("Password changed", slog.String("principal_id", actor.ID.String()))

	return nil
}

// UpdateAvatar stores the new image first. A failure to release the old one only leaks the file.
func (srv *profileService) UpdateAvatar(ctx context.Context, actor *entity.Principal, file *service.MediaFile) (*entity.Principal, error) {
	if err := srv.media.validate(avatarField, file); err != nil {
		return nil, err
	}

	principal, err := srv.GetProfile(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	avatar, err := srv.media.upload(ctx, srv.log(ctx), service.FolderAvatars, file)
	if err != nil {
		return nil, err
	}
	if err := srv.principals.UpdateAvatar(ctx, actor.ID, avatar); err != nil {
		srv.media.discard(ctx, srv.log(ctx), avatar)

		return nil, errors.Wrap(err, "failed to update avatar")
	}
	srv.media.discard(ctx, srv.log(ctx), principal.Avatar)

	principal.Avatar = avatar

	return principal, nil
}
