package models

import "time"

// Lead — контакт, оставленный посетителем (подписка, запрос материала).
type Lead struct {
	// ID — идентификатор лида (UUIDv4), проставляется сервисом.
	ID string
	// Email — адрес посетителя.
	Email string `validate:"required,leademail"`
	// Source — дискриминатор источника ("newsletter", "download_ebooks", ...).
	Source string `validate:"required,max=64"`
	// Region — регион, в котором оставлен лид (опционально).
	Region string `validate:"omitempty,max=8"`
	// AssetName — название материала для модального варианта (опционально).
	AssetName string `validate:"max=512"`
	// CreatedAt — время создания (UTC), проставляется сервисом.
	CreatedAt time.Time
}

// Download — результат модального лид-захвата: ссылка на файл материала.
type Download struct {
	URL       string `json:"url"`
	AssetName string `json:"asset_name"`
}
