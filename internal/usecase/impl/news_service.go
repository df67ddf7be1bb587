package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

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

const newsImageField = "newsImage"

type newsService struct {
	news   repository.NewsRepository
	media  *mediaHandler
	logger *slog.Logger
}

// NewsServiceParams holds dependencies for NewsService, injected by Fx.
type NewsServiceParams struct {
	fx.In

	News       repository.NewsRepository
	MediaStore service.MediaStore
	Metrics    service.MetricsRecorder
	Config     *config.Config
	Logger     *slog.Logger
}

func NewNewsService(params NewsServiceParams) usecase.NewsUsecase {
	return &newsService{
		news:   params.News,
		media:  newMediaHandler(params.MediaStore, params.Metrics, params.Config),
		logger: params.Logger,
	}
}

func (srv *newsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *newsService) CreateNews(ctx context.Context, actor *entity.Principal, input *usecase.CreateNewsInput) (*entity.News, error) {
	if err := policy.CreateNews(actor).Err(); err != nil {
		return nil, err
	}

	missing := requiredFields(
		"title", input.Title,
		"shortDescription", input.ShortDescription,
		"content", input.Content,
	)
	if len(missing) > 0 {
		return nil, domainerrors.ErrValidation.WithMessage("All fields are required").WithFieldErrors(missing...)
	}
	if err := srv.media.validate(newsImageField, input.Image); err != nil {
		return nil, err
	}

	image, err := srv.media.upload(ctx, srv.log(ctx), service.FolderNews, input.Image)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	news := &entity.News{
		ID:               uuid.New(),
		Title:            strings.TrimSpace(input.Title),
		ShortDescription: strings.TrimSpace(input.ShortDescription),
		Content:          strings.TrimSpace(input.Content),
		Image:            image,
		AuthorID:         actor.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := srv.news.Create(ctx, news); err != nil {
		srv.media.discard(ctx, srv.log(ctx), image)

		return nil, errors.Wrap(err, "failed to create news")
	}

	srv.log(ctx).Info("News published", slog.String("news_id", news.ID.String()))

	return news, nil
}

func (srv *newsService) ListNews(ctx context.Context) ([]*entity.News, error) {
	news, err := srv.news.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list news")
	}

	return news, nil
}

func (srv *newsService) GetNews(ctx context.Context, newsID string) (*entity.News, error) {
	id, err := parseID("newsId", newsID)
	if err != nil {
		return nil, err
	}

	news, err := srv.news.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNewsNotFound) {
		return nil, domainerrors.ErrNewsNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find news")
	}

	return news, nil
}

func (srv *newsService) UpdateNewsDetails(ctx context.Context, actor *entity.Principal, newsID string, details entity.NewsDetails) (*entity.News, error) {
	news, err := srv.findOwned(ctx, actor, newsID)
	if err != nil {
		return nil, err
	}

	if details.IsEmpty() {
		return nil, domainerrors.ErrValidation.WithMessage("No news details provided")
	}
	fields := []struct {
		name  string
		value *string
	}{
		{"title", details.Title},
		{"shortDescription", details.ShortDescription},
		{"content", details.Content},
	}
	for _, f := range fields {
		if f.value != nil && strings.TrimSpace(*f.value) == "" {
			return nil, domainerrors.NewValidationError(f.name, f.name+" must not be blank")
		}
	}

	details.ApplyTo(news)
	news.UpdatedAt = time.Now().UTC()
	if err := srv.news.UpdateDetails(ctx, news); err != nil {
		return nil, errors.Wrap(err, "failed to update news")
	}

	return news, nil
}

func (srv *newsService) UpdateNewsImage(ctx context.Context, actor *entity.Principal, newsID string, image *service.MediaFile) (*entity.News, error) {
	news, err := srv.findOwned(ctx, actor, newsID)
	if err != nil {
		return nil, err
	}
	if err := srv.media.validate(newsImageField, image); err != nil {
		return nil, err
	}

	uploaded, err := srv.media.upload(ctx, srv.log(ctx), service.FolderNews, image)
	if err != nil {
		return nil, err
	}
	if err := srv.news.UpdateImage(ctx, news.ID, uploaded); err != nil {
		srv.media.discard(ctx, srv.log(ctx), uploaded)

		return nil, errors.Wrap(err, "failed to update news image")
	}
	srv.media.discard(ctx, srv.log(ctx), news.Image)

	news.Image = uploaded

	return news, nil
}

func (srv *newsService) findOwned(ctx context.Context, actor *entity.Principal, newsID string) (*entity.News, error) {
	if err := policy.CreateNews(actor).Err(); err != nil {
		return nil, err
	}

	news, err := srv.GetNews(ctx, newsID)
	if err != nil {
		return nil, err
	}
	if err := policy.EditNews(actor, news).Err(); err != nil {
		return nil, err
	}

	return news, nil
}
