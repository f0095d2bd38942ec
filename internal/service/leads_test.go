package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-content-portal/internal/models"
	"github.com/pribylovaa/go-content-portal/internal/region"
	"github.com/pribylovaa/go-content-portal/internal/storage"
	"github.com/pribylovaa/go-content-portal/mocks"
)

// Покрываем захват лидов:
//  - невалидный email никогда не доходит до приёмника;
//  - follow-up только после успешной записи;
//  - сбой follow-up — сбой отправки, лид остаётся записанным;
//  - модальный вариант: источник download_<kind>, asset_name, ссылка MinIO.

var fixedNow = time.Date(2024, 3, 5, 10, 0, 0, 0, time.FixedZone("WET", 0))

func TestCaptureLead_InvalidEmail_NeverInserts(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockLeadSink(ctrl) // без EXPECT: InsertLead запрещён
	svc := New(nil, sink, testConfig())

	followed := false
	for _, email := range []string{"not-an-email", "", "a b@c.pt", "a@b"} {
		err := svc.CaptureLead(context.Background(), models.Lead{Email: email, Source: SourceNewsletter},
			func(context.Context) error { followed = true; return nil })

		require.ErrorIs(t, err, ErrValidation, email)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "email", verr.Field)
	}
	require.False(t, followed)
}

func TestCaptureLead_MissingSource_IsValidationError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	err := New(nil, mocks.NewMockLeadSink(ctrl), testConfig()).
		CaptureLead(context.Background(), models.Lead{Email: "ana@fundicao.pt", Source: "  "}, nil)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "source", verr.Field)
	require.Equal(t, "required", verr.Rule)
}

func TestPublicSource_OnlyNewsletter(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "  ", SourceNewsletter} {
		got, err := PublicSource(in)
		require.NoError(t, err)
		require.Equal(t, SourceNewsletter, got)
	}

	for _, in := range []string{"download_ebooks", "download_materials", "admin"} {
		_, err := PublicSource(in)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "source", verr.Field)
		require.ErrorIs(t, err, ErrValidation)
	}
}

func TestNewValidator_LeadEmailRuleRegistered(t *testing.T) {
	t.Parallel()

	var v interface{ Var(any, string) error }
	require.NotPanics(t, func() { v = newValidator() })
	require.NoError(t, v.Var("ana@fundicao.pt", "leademail"))
	require.Error(t, v.Var("ana@", "leademail"))
}

func TestCaptureLead_PersistsThenRunsFollowUp(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var inserted bool
	sink := mocks.NewMockLeadSink(ctrl)
	sink.EXPECT().InsertLead(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, l models.Lead) error {
			require.NotEmpty(t, l.ID)
			require.Equal(t, "ana@fundicao.pt", l.Email)
			require.Equal(t, SourceNewsletter, l.Source)
			require.Equal(t, "pt", l.Region)
			require.Equal(t, fixedNow.UTC(), l.CreatedAt)
			inserted = true
			return nil
		})

	svc := New(nil, sink, testConfig(), WithClock(func() time.Time { return fixedNow }))
	err := svc.CaptureLead(context.Background(),
		models.Lead{Email: " ana@fundicao.pt ", Source: SourceNewsletter, Region: "pt"},
		func(context.Context) error {
			require.True(t, inserted, "follow-up must run after the write")
			return nil
		})
	require.NoError(t, err)
}

func TestCaptureLead_FollowUpFailure_FailsSubmissionLeadKept(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockLeadSink(ctrl)
	sink.EXPECT().InsertLead(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	boom := errors.New("download blocked")
	err := New(nil, sink, testConfig()).CaptureLead(context.Background(),
		models.Lead{Email: "ana@fundicao.pt", Source: "download_ebooks"},
		func(context.Context) error { return boom })

	require.ErrorIs(t, err, boom)
}

func TestCaptureLead_InsertFailure_SkipsFollowUp(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockLeadSink(ctrl)
	sink.EXPECT().InsertLead(gomock.Any(), gomock.Any()).Return(errors.New("no primary"))

	followed := false
	err := New(nil, sink, testConfig()).CaptureLead(context.Background(),
		models.Lead{Email: "ana@fundicao.pt", Source: SourceNewsletter},
		func(context.Context) error { followed = true; return nil })

	require.ErrorIs(t, err, ErrUnavailable)
	require.False(t, followed)
}

func ebookRepo() *memRepo {
	repo := newMemRepo()
	repo.add("ebooks", storage.Record{
		"id": "eb1", "region": "pt", "status": "published",
		"title": "Manual de Fundição", "file_key": "ebooks/manual.pdf",
		"file_url": "https://cdn.example.com/manual.pdf",
	})
	repo.add("technical_materials", storage.Record{
		"id": "tm1", "region": "pt", "status": "published", "title": "Sem ficheiro",
	})
	return repo
}

func TestRequestDownload_Ebook_PresignedLink(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockLeadSink(ctrl)
	assets := mocks.NewMockAssetLinker(ctrl)

	gomock.InOrder(
		sink.EXPECT().InsertLead(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, l models.Lead) error {
				require.Equal(t, "download_ebooks", l.Source)
				require.Equal(t, "Manual de Fundição", l.AssetName)
				require.Equal(t, "pt", l.Region)
				return nil
			}),
		assets.EXPECT().DownloadURL(gomock.Any(), "ebooks/manual.pdf").
			Return("https://minio.local/materials/ebooks/manual.pdf?X-Amz-Signature=abc", nil),
	)

	svc := New(ebookRepo(), sink, testConfig(), WithAssets(assets))
	dl, err := svc.RequestDownload(context.Background(), region.Portugal, models.KindEbook, "eb1", "ana@fundicao.pt")
	require.NoError(t, err)
	require.Equal(t, "Manual de Fundição", dl.AssetName)
	require.Contains(t, dl.URL, "X-Amz-Signature")
}

func TestRequestDownload_MissingObject_FallsBackToFileURL(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockLeadSink(ctrl)
	sink.EXPECT().InsertLead(gomock.Any(), gomock.Any()).Return(nil)
	assets := mocks.NewMockAssetLinker(ctrl)
	assets.EXPECT().DownloadURL(gomock.Any(), gomock.Any()).Return("", storage.ErrNotFound)

	dl, err := New(ebookRepo(), sink, testConfig(), WithAssets(assets)).
		RequestDownload(context.Background(), region.Portugal, models.KindEbook, "eb1", "ana@fundicao.pt")
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/manual.pdf", dl.URL)
}

func TestRequestDownload_LinkFailure_AfterLeadPersisted(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockLeadSink(ctrl)
	sink.EXPECT().InsertLead(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	assets := mocks.NewMockAssetLinker(ctrl)
	assets.EXPECT().DownloadURL(gomock.Any(), gomock.Any()).Return("", errors.New("minio: 500"))

	_, err := New(ebookRepo(), sink, testConfig(), WithAssets(assets)).
		RequestDownload(context.Background(), region.Portugal, models.KindEbook, "eb1", "ana@fundicao.pt")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestRequestDownload_NoLeadWhenAssetUnresolved(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := mocks.NewMockLeadSink(ctrl) // без EXPECT
	svc := New(ebookRepo(), sink, testConfig())

	// Другой регион.
	_, err := svc.RequestDownload(context.Background(), region.Mexico, models.KindEbook, "eb1", "ana@fundicao.pt")
	require.ErrorIs(t, err, ErrNotFound)

	// Материал без файла.
	_, err = svc.RequestDownload(context.Background(), region.Portugal, models.KindMaterial, "tm1", "ana@fundicao.pt")
	require.ErrorIs(t, err, ErrNotFound)

	// Вид без файлов.
	_, err = svc.RequestDownload(context.Background(), region.Portugal, models.KindNews, "n1", "ana@fundicao.pt")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRequestDownload_InvalidEmail_NoInsert(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := New(ebookRepo(), mocks.NewMockLeadSink(ctrl), testConfig())
	_, err := svc.RequestDownload(context.Background(), region.Portugal, models.KindEbook, "eb1", "not-an-email")
	require.ErrorIs(t, err, ErrValidation)
}
