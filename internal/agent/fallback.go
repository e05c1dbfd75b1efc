package agent

import (
	"github.com/grupokossodo/intake-agent/internal/model"
	"github.com/grupokossodo/intake-agent/internal/tool"
)

// Static fallbacks for turns where the model produced no usable text and no
// tool was called.
const (
	fallbackConfirmData = "Gracias por tu información. ¿Podrías confirmar tu nombre completo, " +
		"teléfono, email, RUC/DNI y nombre de empresa?"
	fallbackGeneric = "¿En qué puedo ayudarte?"
)

// closingLine synthesizes the canned reply for a turn where a tool ran but
// the model returned no trailing text, keyed by the last tool executed.
func closingLine(lastTool string, company model.Company) string {
	switch lastTool {
	case tool.ToolEndConversation:
		return "¡Gracias por contactar al Grupo Kossodo! " +
			"Un asesor se comunicará contigo pronto. ¡Que tengas un excelente día!"
	case tool.ToolSaveInquiry:
		if company == model.CompanyKossomet {
			return "Perfecto. Un técnico especializado de Kossomet " +
				"se pondrá en contacto contigo a la brevedad. " +
				"¿Hay algo más en lo que pueda ayudarte?"
		}
		return "Perfecto. Un asesor de ventas de Kossodo " +
			"se pondrá en contacto contigo a la brevedad. " +
			"¿Hay algo más en lo que pueda ayudarte?"
	case tool.ToolSaveContact:
		return "Gracias. ¿Me podrías proporcionar los datos que aún faltan?"
	case tool.ToolSetCompany:
		return "Entendido. Para que un asesor pueda contactarte, " +
			"necesito algunos datos. ¿Cuál es tu nombre completo?"
	default:
		return "¿En qué más puedo ayudarte?"
	}
}
