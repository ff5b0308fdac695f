package entity

import "errors"

var (
	ErrNotFound           = errors.New("registro não encontrado")
	ErrSyncAlreadyRunning = errors.New("já existe um sync em andamento")
	ErrRetryExhausted     = errors.New("limite de retentativas do webhook atingido")
	ErrRetryNotEligible   = errors.New("webhook não está em estado failed")
	ErrCouponConflict     = errors.New("já existe cupom ativo para essa marca")
)
