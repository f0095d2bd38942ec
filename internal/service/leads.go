package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pribylovaa/go-content-portal/internal/leadcapture"
	"github.com/pribylovaa/go-content-portal/internal/models"
	"github.com/pribylovaa/go-content-portal/internal/region"
	"github.com/pribylovaa/go-content-portal/internal/storage"
	"github.com/pribylovaa/go-content-portal/pkg/log"
	"github.com/pribylovaa/go-content-portal/pkg/redact"
)

// SourceNewsletter — источник лида встроенного виджета подписки.
const SourceNewsletter = "newsletter"

// PublicSource проверяет источник, присланный клиентом в публичной форме подписки.
// Пустой источник — SourceNewsletter. Источники download_* выставляет только RequestDownload.
func PublicSource(s string) (string, error) {
	switch strings.TrimSpace(s) {
	case "", SourceNewsletter:
		return SourceNewsletter, nil
	default:
		return "", &ValidationError{Field: "source", Rule: "oneof"}
	}
}

// validate — валидатор лидов с правилом leademail.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("leademail", func(fl validator.FieldLevel) bool {
		return leadcapture.ValidEmail(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("service: register leademail: %v", err))
	}

	return v
}

// FollowUp — действие после успешной записи лида (например, выдача ссылки на файл).
type FollowUp func(ctx context.Context) error

// CaptureLead проверяет и сохраняет лид, затем выполняет followUp.
//
// Правила:
//   - невалидный лид не доходит до хранилища (ErrValidation);
//   - followUp вызывается только после успешной записи;
//   - сбой followUp — сбой всей отправки, хотя лид уже сохранён
//     (компенсации нет).
//
// Ошибки:
//   - ErrValidation (*ValidationError) — email/источник не прошли проверку;
//   - ErrUnavailable — запись в хранилище лидов не удалась;
//   - ошибка followUp — как есть, с обёрткой op.
func (s *Service) CaptureLead(ctx context.Context, lead models.Lead, followUp FollowUp) error {
	const op = "service.leads.CaptureLead"

	lg := log.From(ctx)

	lead.Email = strings.TrimSpace(lead.Email)
	lead.Source = strings.TrimSpace(lead.Source)
	lead.AssetName = strings.TrimSpace(lead.AssetName)

	if err := validateLead(lead); err != nil {
		lg.Warn("lead_validation_failed",
			slog.String("op", op),
			slog.String("source", lead.Source),
			slog.String("err", err.Error()),
		)
		s.metrics.Lead(lead.Source, "invalid")

		return fmt.Errorf("%s: %w", op, err)
	}

	lead.ID = uuid.NewString()
	lead.CreatedAt = s.now().UTC()

	if err := s.leads.InsertLead(ctx, lead); err != nil {
		lg.Error("lead_insert_failed",
			slog.String("op", op),
			slog.String("source", lead.Source),
			slog.String("email", redact.Email(lead.Email)),
			slog.String("err", err.Error()),
		)
		s.metrics.Lead(lead.Source, "error")

		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}

	if followUp != nil {
		if err := followUp(ctx); err != nil {
			lg.Error("lead_follow_up_failed",
				slog.String("op", op),
				slog.String("lead_id", lead.ID),
				slog.String("source", lead.Source),
				slog.String("err", err.Error()),
			)
			s.metrics.Lead(lead.Source, "follow_up_error")

			return fmt.Errorf("%s: follow-up: %w", op, err)
		}
	}

	s.metrics.Lead(lead.Source, "ok")
	lg.Info("lead_captured",
		slog.String("op", op),
		slog.String("lead_id", lead.ID),
		slog.String("source", lead.Source),
		slog.String("region", lead.Region),
		slog.String("email", redact.Email(lead.Email)),
	)

	return nil
}

// validateLead переводит ошибки validator в *ValidationError первого поля.
func validateLead(lead models.Lead) error {
	err := validate.Struct(lead)
	if err == nil {
		return nil
	}

	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		return &ValidationError{
			Field: strings.ToLower(fields[0].Field()),
			Rule:  fields[0].Tag(),
		}
	}

	return &ValidationError{Field: "lead", Rule: err.Error()}
}

// RequestDownload — модальный вариант захвата лида: находит материал
// (e-book или технический документ) в регионе r, сохраняет лид с источником
// "download_<kind>" и названием материала, затем выдаёт ссылку на файл.
//
// Ошибки:
//   - ErrInvalidArgument — вид без файла или неизвестный регион;
//   - ErrNotFound — материала нет в регионе или у него нет файла;
//   - ErrValidation, ErrUnavailable — как у CaptureLead.
func (s *Service) RequestDownload(ctx context.Context, r region.Region, kind models.Kind, id, email string) (*models.Download, error) {
	const op = "service.leads.RequestDownload"

	var (
		title, key, fileURL string
		err                 error
	)
	switch kind {
	case models.KindEbook:
		var rec storage.Record
		if rec, err = one(ctx, s, ebookSource, id, r); err == nil {
			e := ebookSource.mapRaw(rec, r)
			title, key, fileURL = e.Title, e.FileKey, e.FileURL
		}
	case models.KindMaterial:
		var rec storage.Record
		if rec, err = one(ctx, s, materialSource, id, r); err == nil {
			m := materialSource.mapRaw(rec, r)
			title, key, fileURL = m.Title, m.FileKey, m.FileURL
		}
	default:
		err = fmt.Errorf("kind %q has no downloadable asset: %w", kind, ErrInvalidArgument)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if key == "" && fileURL == "" {
		log.From(ctx).Warn("download_asset_without_file",
			slog.String("op", op),
			slog.String("kind", string(kind)),
			slog.String("id", id),
		)

		return nil, fmt.Errorf("%s: no file: %w", op, ErrNotFound)
	}

	dl := &models.Download{AssetName: title}
	lead := models.Lead{
		Email:     email,
		Source:    "download_" + string(kind),
		Region:    r.Code(),
		AssetName: title,
	}

	err = s.CaptureLead(ctx, lead, func(ctx context.Context) error {
		url, err := s.assetURL(ctx, key, fileURL)
		if err != nil {
			return err
		}
		dl.URL = url
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return dl, nil
}

// assetURL — ссылка на файл: подписанная ссылка MinIO по ключу,
// иначе публичный file_url записи.
func (s *Service) assetURL(ctx context.Context, key, fileURL string) (string, error) {
	if key != "" && s.assets != nil {
		url, err := s.assets.DownloadURL(ctx, key)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			if fileURL != "" {
				return fileURL, nil
			}
			return "", ErrNotFound
		case err != nil:
			return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return url, nil
	}

	if fileURL == "" {
		return "", ErrNotFound
	}

	return fileURL, nil
}
