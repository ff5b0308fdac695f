package usecase

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Formatos de data que o ActiveCampaign manda dependendo da tela
// em que o campo foi preenchido. MM/DD/YYYY vem primeiro porque é
// o formato dos campos customizados antigos.
var acDateFormats = []string{
	"01/02/2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05-07:00",
}

// NormalizeDate converte qualquer formato conhecido para YYYY-MM-DD.
// Lixo vira nil — nunca erro: data inválida não pode derrubar um sync
// de milhares de deals.
func NormalizeDate(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, format := range acDateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			s := t.Format("2006-01-02")
			return &s
		}
	}
	return nil
}

// ParseMoneyCents converte a string decimal do CRM ("1234.56") para
// centavos inteiros. Centavo é a representação canônica do sistema
// inteiro; essa é a ÚNICA fronteira onde decimal vira inteiro.
func ParseMoneyCents(raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	// contas BR às vezes exportam com vírgula decimal
	raw = strings.ReplaceAll(raw, ",", ".")

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(f * 100))
}

// ParseIntOrNil é usado nos campos customizados numéricos (pares vendidos).
func ParseIntOrNil(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// StrOrNil evita gravar string vazia onde a coluna é nullable.
func StrOrNil(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}
