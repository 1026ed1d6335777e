package models

import "time"

// Статусы платёжной транзакции.
const (
	TransactionPending   = "pending"
	TransactionCompleted = "completed"
	TransactionFailed    = "failed"
	TransactionCancelled = "cancelled"
)

// Transaction представляет платёжную операцию участника.
// PlanID может быть nil — платёж без привязки к тарифу (разовое посещение и т.п.).
type Transaction struct {
	UUID            string    `json:"uuid"`              // Уникальный идентификатор транзакции
	MemberID        string    `json:"member_id"`         // Идентификатор участника
	PlanID          *string   `json:"plan_id,omitempty"` // Идентификатор тарифа (опционально)
	Amount          float64   `json:"amount"`            // Сумма платежа (> 0)
	PaymentMethod   string    `json:"payment_method"`    // Способ оплаты: cash, card, transfer, online
	Status          string    `json:"status"`            // Статус: pending, completed, failed, cancelled
	TransactionDate time.Time `json:"transaction_date"`  // Дата проведения платежа
	CreatedAt       time.Time `json:"created_at"`        // Дата создания записи
}

// DummyTransaction используется для приёма данных транзакции из JSON-запроса.
// Дата приходит строкой в формате 2006-01-02, по умолчанию — текущий день.
type DummyTransaction struct {
	MemberID        string  `json:"member_id" validate:"required,uuid"`                                             // Участник
	PlanID          string  `json:"plan_id,omitempty" validate:"omitempty,uuid"`                                    // Тариф (опционально)
	Amount          float64 `json:"amount" validate:"gt=0"`                                                // Сумма (>0)
	PaymentMethod   string  `json:"payment_method" validate:"required,oneof=cash card transfer online"`             // Способ оплаты
	Status          string  `json:"status,omitempty" validate:"omitempty,oneof=pending completed failed cancelled"` // Статус
	TransactionDate string  `json:"transaction_date,omitempty" validate:"omitempty,datetime=2006-01-02"`            // Дата платежа
}

// UpdateTransaction описывает частичное обновление транзакции.
// Менять можно только статус и способ оплаты, остальные поля неизменяемы.
type UpdateTransaction struct {
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=pending completed failed cancelled"`
	PaymentMethod *string `json:"payment_method,omitempty" validate:"omitempty,oneof=cash card transfer online"`
}
