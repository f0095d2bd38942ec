package mapper

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/pribylovaa/go-content-portal/internal/models"
	"github.com/pribylovaa/go-content-portal/internal/region"
	"github.com/pribylovaa/go-content-portal/internal/storage"
	"github.com/stretchr/testify/require"
)

var ts = time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC)

func TestNews_FullRecord(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("0b7c2f4e-1a2b-4c3d-8e9f-001122334455")
	rec := storage.Record{
		"id":           [16]byte(id),
		"title":        "Nova fundição em Aveiro",
		"category":     "Indústria",
		"summary":      "<p>Investimento de <b>10 M€</b> &amp; 50 empregos</p>",
		"author":       "Redação",
		"image_url":    "https://cdn.example/aveiro.jpg",
		"publish_date": ts,
		"views":        int32(42),
	}

	want := models.NewsItem{
		ID:          id.String(),
		Title:       "Nova fundição em Aveiro",
		Category:    "Indústria",
		Summary:     "Investimento de 10 M€ & 50 empregos",
		Author:      "Redação",
		ImageURL:    "https://cdn.example/aveiro.jpg",
		ImageAlt:    "Nova fundição em Aveiro",
		PublishedAt: ts,
		DateLabel:   "5 de março de 2024",
		Views:       42,
	}

	if diff := cmp.Diff(want, News(rec, region.Portugal)); diff != "" {
		t.Errorf("News() mismatch (-want +got):\n%s", diff)
	}
}

func TestNews_MissingOptionalFields_Fallbacks(t *testing.T) {
	t.Parallel()

	got := News(storage.Record{"id": "n1", "title": "Só título"}, region.Portugal)

	want := models.NewsItem{
		ID:       "n1",
		Title:    "Só título",
		Category: "Geral",
		ImageURL: PlaceholderImage,
		ImageAlt: "Sem Imagem",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("News() mismatch (-want +got):\n%s", diff)
	}
}

func TestMappers_EmptyRecord_NeverPanic(t *testing.T) {
	t.Parallel()

	empty := storage.Record{}
	for _, r := range region.All() {
		require.NotPanics(t, func() {
			_ = News(empty, r)
			_ = Supplier(empty, r)
			_ = Foundry(empty, r)
			_ = Material(empty, r)
			_ = Ebook(empty, r)
			_ = Event(empty, r)
		})
	}

	require.Equal(t, 0, Ebook(empty, region.Mexico).DownloadCount)
	require.Equal(t, "Sin Imagen", Event(empty, region.Mexico).ImageAlt)
	require.NotNil(t, Foundry(empty, region.Mexico).Specialties)
}

func TestDateLabel_DependsOnRegion(t *testing.T) {
	t.Parallel()

	rec := storage.Record{"id": "e1", "title": "Feira", "event_date": ts}

	require.Equal(t, "5 de março de 2024", Event(rec, region.Portugal).DateLabel)
	require.Equal(t, "5 de marzo de 2024", Event(rec, region.Mexico).DateLabel)
	require.Equal(t, "March 5, 2024", Event(rec, region.USA).DateLabel)
}

func TestDateLabel_UsesRegionCalendarDay(t *testing.T) {
	t.Parallel()

	late := time.Date(2024, time.March, 5, 22, 0, 0, 0, time.FixedZone("-03", -3*60*60))

	tests := []struct {
		name string
		rec  storage.Record
		reg  region.Region
		want string
	}{
		{"time value in brazil", storage.Record{"publish_date": late}, region.Brazil, "5 de março de 2024"},
		{"offset string in brazil", storage.Record{"publish_date": "2024-03-05T22:00:00-03:00"}, region.Brazil, "5 de março de 2024"},
		{"same instant in portugal", storage.Record{"publish_date": late}, region.Portugal, "6 de março de 2024"},
		{"same instant in mexico", storage.Record{"publish_date": late}, region.Mexico, "5 de marzo de 2024"},
		{"same instant in usa", storage.Record{"publish_date": late}, region.USA, "March 5, 2024"},
		{"date only in mexico", storage.Record{"publish_date": "2024-03-05"}, region.Mexico, "5 de marzo de 2024"},
		{"wall clock late evening in usa", storage.Record{"publish_date": "2024-03-05 23:30:00"}, region.USA, "March 5, 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, News(tt.rec, tt.reg).DateLabel)
		})
	}
}

func TestTimestamp_WallClockAnchoredInRegionZone(t *testing.T) {
	t.Parallel()

	got := Event(storage.Record{"event_date": "2024-03-05"}, region.Mexico).EventDate

	require.True(t, got.Equal(time.Date(2024, time.March, 5, 0, 0, 0, 0, region.Mexico.Location())))
	require.Equal(t, time.UTC, got.Location())
}

func TestSupplier_FieldTranslation(t *testing.T) {
	t.Parallel()

	rec := storage.Record{
		"id":          "s1",
		"name":        "Ligas do Norte",
		"description": "Fornecedor de ligas de alumínio",
		"category":    "Matérias-primas",
		"location":    "Porto",
		"website":     "https://ligas.example",
		"is_verified": true,
	}

	want := models.Supplier{
		ID:       "s1",
		Name:     "Ligas do Norte",
		Category: "Matérias-primas",
		Summary:  "Fornecedor de ligas de alumínio",
		Location: "Porto",
		Website:  "https://ligas.example",
		LogoURL:  PlaceholderImage,
		ImageAlt: "Sem Imagem",
		Verified: true,
	}

	if diff := cmp.Diff(want, Supplier(rec, region.Portugal)); diff != "" {
		t.Errorf("Supplier() mismatch (-want +got):\n%s", diff)
	}
}

func TestFoundry_SpecialtiesAndVerifiedAlias(t *testing.T) {
	t.Parallel()

	got := Foundry(storage.Record{
		"id":          "f1",
		"name":        "Fundición Azteca",
		"specialties": []any{"hierro", " ", "acero", "hierro"},
		"verified":    "true",
		"image_url":   "https://cdn.example/f1.png",
	}, region.Mexico)

	require.Equal(t, []string{"hierro", "acero"}, got.Specialties)
	require.True(t, got.Verified)
	require.Equal(t, "Fundición Azteca", got.ImageAlt)
}

func TestMaterialAndEbook_CountersAndDates(t *testing.T) {
	t.Parallel()

	m := Material(storage.Record{
		"id":             "m1",
		"title":          "Norma EN 1706",
		"download_count": int64(7),
		"created_at":     "2024-03-05T09:30:00Z",
		"file_key":       "materials/en1706.pdf",
	}, region.Spain)

	require.Equal(t, 7, m.DownloadCount)
	require.Equal(t, ts, m.CreatedAt)
	require.Equal(t, "5 de marzo de 2024", m.DateLabel)
	require.Equal(t, "materials/en1706.pdf", m.FileKey)

	e := Ebook(storage.Record{
		"id":        "b1",
		"title":     "Guia de Moldação",
		"pages":     "120",
		"downloads": float64(3),
		"cover_url": "https://cdn.example/b1.jpg",
	}, region.Brazil)

	require.Equal(t, 120, e.Pages)
	require.Equal(t, 3, e.DownloadCount)
	require.Equal(t, "https://cdn.example/b1.jpg", e.CoverURL)
	require.True(t, e.CreatedAt.IsZero())
	require.Empty(t, e.DateLabel)
}
