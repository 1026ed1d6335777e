package models

import "time"

// PricingPlan представляет тарифный план абонемента.
type PricingPlan struct {
	UUID         string    `json:"uuid"`          // Уникальный идентификатор тарифа
	Name         string    `json:"name"`          // Название тарифа (уникальное)
	Price        float64   `json:"price"`         // Цена тарифа (> 0)
	DurationDays int       `json:"duration_days"` // Длительность в днях (> 0)
	IsActive     bool      `json:"is_active"`     // Признак доступности тарифа
	Features     []string  `json:"features"`      // Список возможностей тарифа
	CreatedAt    time.Time `json:"created_at"`    // Дата создания записи
	UpdatedAt    time.Time `json:"updated_at"`    // Дата последнего изменения
}

// DummyPlan используется для приёма данных тарифа из JSON-запроса при создании.
type DummyPlan struct {
	Name         string   `json:"name" validate:"required,min=2,max=100"`  // Название тарифа
	Price        float64  `json:"price" validate:"gt=0"`          // Цена (>0)
	DurationDays int      `json:"duration_days" validate:"gt=0"`  // Длительность в днях (>0)
	IsActive     *bool    `json:"is_active,omitempty"`                     // Доступность (по умолчанию true)
	Features     []string `json:"features,omitempty" validate:"omitempty,dive,min=1"` // Возможности
}

// UpdatePlan описывает частичное обновление тарифа,
// обновляются только поля с ненулевыми указателями.
type UpdatePlan struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Price        *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	DurationDays *int     `json:"duration_days,omitempty" validate:"omitempty,gt=0"`
	IsActive     *bool    `json:"is_active,omitempty"`
	Features     []string `json:"features,omitempty" validate:"omitempty,dive,min=1"`
}
