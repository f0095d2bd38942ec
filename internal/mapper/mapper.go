package mapper

import (
	"github.com/pribylovaa/go-content-portal/internal/models"
	"github.com/pribylovaa/go-content-portal/internal/region"
	"github.com/pribylovaa/go-content-portal/internal/storage"
	"github.com/samber/lo"
)

// image подбирает URL картинки и alt-текст: без картинки — заглушка и
// перевод «Sem Imagem» на язык региона.
func image(url, title string, r region.Region) (string, string) {
	if url == "" {
		return PlaceholderImage, r.Translate(region.KeyImageMissing)
	}

	return url, lo.CoalesceOrEmpty(title, r.Translate(region.KeyImageMissing))
}

func category(rec storage.Record, r region.Region) string {
	return lo.CoalesceOrEmpty(str(rec, "category", "type"), r.Translate(region.KeyCategoryDefault))
}

// News: publish_date, summary, image_url.
func News(rec storage.Record, r region.Region) models.NewsItem {
	title := str(rec, "title")
	img, alt := image(str(rec, "image_url", "cover_image"), title, r)
	published := timestamp(rec, r, "publish_date", "published_at", "created_at")

	return models.NewsItem{
		ID:          str(rec, "id"),
		Title:       title,
		Category:    category(rec, r),
		Summary:     plain(str(rec, "summary", "excerpt", "description")),
		Author:      str(rec, "author"),
		ImageURL:    img,
		ImageAlt:    alt,
		PublishedAt: published,
		DateLabel:   r.FormatDate(published),
		Views:       integer(rec, "views", "view_count"),
	}
}

// Supplier: name, description, logo_url, is_verified.
func Supplier(rec storage.Record, r region.Region) models.Supplier {
	name := str(rec, "name", "company_name")
	logo, alt := image(str(rec, "logo_url", "image_url"), name, r)

	return models.Supplier{
		ID:       str(rec, "id"),
		Name:     name,
		Category: category(rec, r),
		Summary:  plain(str(rec, "description", "summary")),
		Location: str(rec, "location", "city", "country"),
		Website:  str(rec, "website", "website_url"),
		LogoURL:  logo,
		ImageAlt: alt,
		Verified: flag(rec, "is_verified", "verified"),
	}
}

// Foundry: name, description, specialties, verified.
func Foundry(rec storage.Record, r region.Region) models.Foundry {
	name := str(rec, "name")
	img, alt := image(str(rec, "image_url", "logo_url"), name, r)

	return models.Foundry{
		ID:          str(rec, "id"),
		Name:        name,
		Category:    category(rec, r),
		Summary:     plain(str(rec, "description", "summary")),
		Location:    str(rec, "location", "city"),
		Specialties: lo.Uniq(list(rec, "specialties")),
		ImageURL:    img,
		ImageAlt:    alt,
		Verified:    flag(rec, "verified", "is_verified"),
	}
}

// Material: created_at, description, file_url/file_key, download_count.
func Material(rec storage.Record, r region.Region) models.TechnicalMaterial {
	title := str(rec, "title")
	img, alt := image(str(rec, "thumbnail_url", "image_url"), title, r)
	created := timestamp(rec, r, "created_at", "publish_date")

	return models.TechnicalMaterial{
		ID:            str(rec, "id"),
		Title:         title,
		Category:      category(rec, r),
		Summary:       plain(str(rec, "description", "summary")),
		FileURL:       str(rec, "file_url"),
		FileKey:       str(rec, "file_key"),
		ImageURL:      img,
		ImageAlt:      alt,
		DownloadCount: integer(rec, "download_count", "downloads"),
		CreatedAt:     created,
		DateLabel:     r.FormatDate(created),
	}
}

// Ebook: cover_url, author, pages, download_count.
func Ebook(rec storage.Record, r region.Region) models.Ebook {
	title := str(rec, "title")
	cover, alt := image(str(rec, "cover_url", "cover_image", "image_url"), title, r)
	created := timestamp(rec, r, "created_at", "publish_date")

	return models.Ebook{
		ID:            str(rec, "id"),
		Title:         title,
		Category:      category(rec, r),
		Summary:       plain(str(rec, "description", "summary")),
		Author:        str(rec, "author"),
		FileURL:       str(rec, "file_url"),
		FileKey:       str(rec, "file_key"),
		CoverURL:      cover,
		ImageAlt:      alt,
		Pages:         integer(rec, "pages"),
		DownloadCount: integer(rec, "download_count", "downloads"),
		CreatedAt:     created,
		DateLabel:     r.FormatDate(created),
	}
}

// Event: event_date, location, registration_url.
func Event(rec storage.Record, r region.Region) models.Event {
	title := str(rec, "title", "name")
	img, alt := image(str(rec, "image_url"), title, r)
	date := timestamp(rec, r, "event_date", "start_date")

	return models.Event{
		ID:        str(rec, "id"),
		Title:     title,
		Category:  category(rec, r),
		Summary:   plain(str(rec, "description", "summary")),
		Location:  str(rec, "location"),
		Link:      str(rec, "registration_url", "link", "website"),
		ImageURL:  img,
		ImageAlt:  alt,
		EventDate: date,
		DateLabel: r.FormatDate(date),
	}
}
