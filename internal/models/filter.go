package models

import "time"

// ListOptions представляет разобранные параметры списочного запроса:
// пагинация, сортировка и фильтры. Формируется из query-строки
// и передаётся в слой доступа к данным.
type ListOptions struct {
	Page   int // Номер страницы, начиная с 1
	Limit  int // Количество записей на страницу
	Offset int // Смещение, (Page-1)*Limit

	SortColumn string // Столбец сортировки (из белого списка ресурса)
	SortDesc   bool   // Направление сортировки, true — по убыванию

	Search        string     // Подстрока для регистронезависимого поиска
	MemberID      string     // Фильтр по участнику
	PlanID        string     // Фильтр по тарифу
	Status        string     // Фильтр по статусу транзакции
	PaymentMethod string     // Фильтр по способу оплаты
	DateFrom      *time.Time // Нижняя граница даты (включительно)
	DateTo        *time.Time // Верхняя граница даты (включительно)
	Active        *bool      // Производный фильтр "подписка действует"
}

// Pagination содержит сводку пагинации для списочного ответа.
type Pagination struct {
	Page       int  `json:"page"`        // Текущая страница
	Limit      int  `json:"limit"`       // Размер страницы
	Total      int  `json:"total"`       // Всего записей
	TotalPages int  `json:"total_pages"` // Всего страниц, ceil(total/limit)
	HasNext    bool `json:"has_next"`    // Есть ли следующая страница
	HasPrev    bool `json:"has_prev"`    // Есть ли предыдущая страница
}

// NewPagination считает сводку пагинации по количеству найденных записей.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
