package console

import (
	"fmt"
	"strconv"
	"strings"
)

// TemplatePrecision is the number of decimals used for float parameters
const TemplatePrecision = 4

// ShowTemplate writes markup text where each '#' is replaced by the next parameter.
// Parameters are printed as-is, never parsed as markup; surplus '#' are printed literally.
func (c *Console) ShowTemplate(text string, params ...any) error {
	var chunk strings.Builder
	next := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '#' {
			chunk.WriteByte(text[i])
			continue
		}
		if err := c.ShowText(chunk.String()); err != nil {
			return err
		}
		chunk.Reset()

		param := "#"
		if next < len(params) {
			param = formatParam(params[next])
		}
		next++
		if err := c.Print(param); err != nil {
			return err
		}
	}
	return c.ShowText(chunk.String())
}

func formatParam(v any) string {
	switch p := v.(type) {
	case string:
		return p
	case float64:
		return strconv.FormatFloat(p, 'f', TemplatePrecision, 64)
	case float32:
		return strconv.FormatFloat(float64(p), 'f', TemplatePrecision, 32)
	case int:
		return strconv.Itoa(p)
	case fmt.Stringer:
		return p.String()
	}
	return fmt.Sprint(v)
}
