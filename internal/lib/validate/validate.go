// Package validate настраивает общий экземпляр валидатора для HTTP-обработчиков.
//
// Помимо стандартных правил go-playground/validator регистрируется тег "phone" —
// свободный международный формат телефона: цифры и пунктуация, от 7 до 15 символов.
package validate

import (
	"regexp"
	"time"

	"github.com/go-playground/validator"
)

// phoneRe допускает необязательный ведущий "+", далее цифры, пробелы, скобки,
// дефисы и точки, суммарно от 7 до 15 символов.
var phoneRe = regexp.MustCompile(`^\+?[0-9][0-9 \-().]{5,13}[0-9]$`)

// New возвращает валидатор с зарегистрированными кастомными правилами.
func New() *validator.Validate {
	v := validator.New()
	// регистрация не возвращает ошибку при корректной сигнатуре функции
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	// в v9 нет встроенного правила datetime, параметр тега служит макетом даты
	_ = v.RegisterValidation("datetime", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(fl.Param(), fl.Field().String())
		return err == nil
	})
	return v
}
