package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const (
	txRefRegex = `^[A-Za-z0-9][A-Za-z0-9_-]{7,63}$`
)

const (
	TxRefTag = "tx_ref"
)

var valid = map[string]func(fl validator.FieldLevel) bool{
	TxRefTag: ValidateTxRef,
}

func ValidateTxRef(fl validator.FieldLevel) bool {
	txRef := fl.Field().String()
	return regexp.MustCompile(txRefRegex).MatchString(txRef)
}
