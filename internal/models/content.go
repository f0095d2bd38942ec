package models

import "time"

// Общие поля всех view-моделей.
//
// Особенности:
//   - модели неизменяемы и собираются заново на каждый ответ;
//   - ImageURL никогда не пуст (подставляется заглушка), ImageAlt — перевод
//     «Sem Imagem», если картинки нет;
//   - DateLabel — дата в локали региона на момент маппинга.

// NewsItem — новость.
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Summary     string    `json:"summary,omitempty"`
	Author      string    `json:"author,omitempty"`
	ImageURL    string    `json:"image_url"`
	ImageAlt    string    `json:"image_alt"`
	PublishedAt time.Time `json:"published_at"`
	DateLabel   string    `json:"date_label"`
	Views       int       `json:"views"`
}

// Supplier — поставщик.
type Supplier struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Summary  string `json:"summary,omitempty"`
	Location string `json:"location,omitempty"`
	Website  string `json:"website,omitempty"`
	LogoURL  string `json:"logo_url"`
	ImageAlt string `json:"image_alt"`
	Verified bool   `json:"verified"`
}

// Foundry — литейное производство.
type Foundry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Summary     string   `json:"summary,omitempty"`
	Location    string   `json:"location,omitempty"`
	Specialties []string `json:"specialties"`
	ImageURL    string   `json:"image_url"`
	ImageAlt    string   `json:"image_alt"`
	Verified    bool     `json:"verified"`
}

// TechnicalMaterial — технический документ.
type TechnicalMaterial struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	Summary       string    `json:"summary,omitempty"`
	FileURL       string    `json:"file_url,omitempty"`
	FileKey       string    `json:"-"`
	ImageURL      string    `json:"image_url"`
	ImageAlt      string    `json:"image_alt"`
	DownloadCount int       `json:"download_count"`
	CreatedAt     time.Time `json:"created_at"`
	DateLabel     string    `json:"date_label"`
}

// Ebook — электронная книга.
type Ebook struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
	Summary       string    `json:"summary,omitempty"`
	Author        string    `json:"author,omitempty"`
	FileURL       string    `json:"file_url,omitempty"`
	FileKey       string    `json:"-"`
	CoverURL      string    `json:"cover_url"`
	ImageAlt      string    `json:"image_alt"`
	Pages         int       `json:"pages"`
	DownloadCount int       `json:"download_count"`
	CreatedAt     time.Time `json:"created_at"`
	DateLabel     string    `json:"date_label"`
}

// Event — мероприятие (выставка, конференция).
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Summary   string    `json:"summary,omitempty"`
	Location  string    `json:"location,omitempty"`
	Link      string    `json:"link,omitempty"`
	ImageURL  string    `json:"image_url"`
	ImageAlt  string    `json:"image_alt"`
	EventDate time.Time `json:"event_date"`
	DateLabel string    `json:"date_label"`
}

// Detail — сущность, найденная по идентификатору, и связанные материалы
// того же региона и той же категории.
type Detail[T any] struct {
	Item    T   `json:"item"`
	Related []T `json:"related"`
}
