package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "es obligatorio",
	"min":      "debe tener al menos %s caracteres",
	"max":      "debe tener como máximo %s caracteres",
	"oneof":    "debe ser uno de [%s]",
	"url":      "debe ser una URL válida",
	"uuid":     "debe ser un UUID válido",
	"numeric":  "debe ser un número",
	"gt":       "debe ser mayor que %s",
}

var TagsWithParams = map[string]bool{
	"min":   true,
	"max":   true,
	"oneof": true,
	"gt":    true,
}
