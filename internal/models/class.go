package models

// Class представляет занятие из каталога студии.
// Каталог заполняется миграцией и для сервиса доступен только на чтение.
type Class struct {
	ClassID         string  `json:"class_id"`         // Уникальный идентификатор занятия, например "CF001"
	Name            string  `json:"name"`             // Название занятия
	DurationMinutes int     `json:"duration_minutes"` // Длительность в минутах
	Price           float64 `json:"price"`            // Текущая цена за одно занятие
	ImagePath       string  `json:"image_path"`       // Путь к изображению занятия
}
