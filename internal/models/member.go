// Package models содержит доменные структуры приложения: участники зала,
// тарифные планы и платёжные транзакции, а также вспомогательные типы
// для приёма данных из JSON-запросов до их валидации.
package models

import "time"

// Member представляет участника фитнес-зала.
// Поля подписки могут быть nil — это означает, что участник не привязан к тарифу.
type Member struct {
	UUID               string     `json:"uuid"`                            // Уникальный идентификатор участника
	Name               string     `json:"name"`                            // Полное имя
	Email              string     `json:"email"`                           // Электронная почта (уникальная)
	Phone              string     `json:"phone"`                           // Телефон (уникальный)
	SubscriptionPlanID *string    `json:"subscription_plan_id,omitempty"`  // Идентификатор тарифного плана
	SubscriptionStart  *time.Time `json:"subscription_start,omitempty"`    // Дата начала подписки
	SubscriptionExpiry *time.Time `json:"subscription_expiry,omitempty"`   // Дата окончания подписки
	LastPaymentDate    *time.Time `json:"last_payment_date,omitempty"`     // Дата последнего платежа
	CreatedAt          time.Time  `json:"created_at"`                      // Дата создания записи
	UpdatedAt          time.Time  `json:"updated_at"`                      // Дата последнего изменения
}

// DummyMember используется для приёма данных участника из JSON-запроса
// при создании. Все проверяемые ограничения описаны тегами validate.
type DummyMember struct {
	Name               string `json:"name" validate:"required,min=2,max=100"`               // Полное имя
	Email              string `json:"email" validate:"required,email"`                      // Электронная почта
	Phone              string `json:"phone" validate:"required,phone"`                      // Телефон в свободном международном формате
	SubscriptionPlanID string `json:"subscription_plan_id,omitempty" validate:"omitempty,uuid"` // Тариф (опционально)
}

// UpdateMember описывает частичное обновление участника.
// Обновляются только поля с ненулевыми указателями, список полей фиксирован.
type UpdateMember struct {
	Name               *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email              *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone              *string `json:"phone,omitempty" validate:"omitempty,phone"`
	SubscriptionPlanID *string `json:"subscription_plan_id,omitempty" validate:"omitempty,uuid"`
	SubscriptionStart  *string `json:"subscription_start,omitempty" validate:"omitempty,datetime=2006-01-02"`
	SubscriptionExpiry *string `json:"subscription_expiry,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// MemberPatch — типизированный набор изменяемых полей участника,
// передаётся из бизнес-логики в хранилище после разбора дат.
type MemberPatch struct {
	Name               *string
	Email              *string
	Phone              *string
	SubscriptionPlanID *string
	SubscriptionStart  *time.Time
	SubscriptionExpiry *time.Time
	LastPaymentDate    *time.Time
}

// MemberStats содержит агрегированные счётчики по участникам.
type MemberStats struct {
	Total          int `json:"total"`           // Всего участников
	Active         int `json:"active"`          // Подписка действует
	Expired        int `json:"expired"`         // Подписка истекла
	NoSubscription int `json:"no_subscription"` // Без привязки к тарифу
}
