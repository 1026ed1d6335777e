package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type phoneHolder struct {
	Phone string `validate:"required,phone"`
}

func TestPhoneRule(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{"международный формат с пробелами и дефисами", "+1 555-123-4567", false},
		{"локальный формат", "84951234567", false},
		{"со скобками", "+7 (495) 123-45-67", true}, // 18 символов, длиннее допустимого
		{"короткий локальный", "1234567", false},
		{"буквы", "abc", true},
		{"слишком короткий", "12345", true},
		{"пустая строка", "", true},
		{"цифры с буквами", "555-CALL-NOW", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(phoneHolder{Phone: tt.phone})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
