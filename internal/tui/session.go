package tui

import (
	"strings"

	"coin-converter/internal/domain"
)

// InputsFromArgs reads "[FROM [TO [AMOUNT]]]" from an ssh command line.
func InputsFromArgs(args []string) domain.ConversionInputs {
	var from, to, amount string
	fields := make([]string, 0, len(args))
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			fields = append(fields, a)
		}
	}
	if len(fields) > 0 {
		from = fields[0]
	}
	if len(fields) > 1 {
		to = fields[1]
	}
	if len(fields) > 2 {
		amount = fields[2]
	}
	return domain.NewConversionInputs(from, to, amount)
}
