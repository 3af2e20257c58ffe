package tools

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	TicketNumberLen = 8
	maxTicketSeq    = 9999
)

// ErrExhaustedSequence indica que o ano já tem 9999 chamados.
var ErrExhaustedSequence = errors.New("limite de 9999 chamados para o ano atual excedido")

// TicketPrefix devolve o ano com 4 dígitos.
func TicketPrefix(year int) string {
	return fmt.Sprintf("%04d", year)
}

// FormatTicketNumber monta o número do chamado (ano + sequência com 4 dígitos).
func FormatTicketNumber(year, seq int) string {
	return TicketPrefix(year) + fmt.Sprintf("%04d", seq)
}

// TicketSequence extrai a sequência de um número de chamado do ano informado.
// ok é false quando o número é de outro ano ou o sufixo não é numérico.
func TicketSequence(year int, number string) (int, bool) {
	prefix := TicketPrefix(year)
	if len(number) <= len(prefix) || !strings.HasPrefix(number, prefix) {
		return 0, false
	}
	seq, err := strconv.Atoi(number[len(prefix):])
	if err != nil || seq < 0 {
		return 0, false
	}
	return seq, true
}

// NextTicketNumber calcula o próximo número de chamado do ano a partir dos
// números já existentes. Números de outros anos são ignorados.
func NextTicketNumber(year int, existing []string) (string, error) {
	last := 0
	for _, n := range existing {
		if seq, ok := TicketSequence(year, n); ok && seq > last {
			last = seq
		}
	}

	next := FormatTicketNumber(year, last+1)
	if len(next) > TicketNumberLen || last+1 > maxTicketSeq {
		return "", fmt.Errorf("ano %s: %w", TicketPrefix(year), ErrExhaustedSequence)
	}
	return next, nil
}
