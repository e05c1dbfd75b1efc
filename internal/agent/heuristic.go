package agent

import (
	"strings"
	"unicode"

	"github.com/grupokossodo/intake-agent/internal/llm"
)

// looksLikeContactData detects messages that likely carry a contact-data
// dump (name, phone, email in list form). It only ever selects a
// non-persisted hint or a fallback string; it never gates tool visibility.
func looksLikeContactData(message string) bool {
	if hasEmailShape(message) {
		return true
	}
	multipleItems := strings.Contains(message, ",") || strings.Count(message, " ") >= 3
	return hasLongNumber(message) && multipleItems
}

// hasEmailShape reports an "@" with a dot-containing fragment after the
// final "@".
func hasEmailShape(message string) bool {
	idx := strings.LastIndex(message, "@")
	if idx < 0 || idx == len(message)-1 {
		return false
	}
	return strings.Contains(message[idx+1:], ".")
}

// hasLongNumber reports a run of 8 or more consecutive digits.
func hasLongNumber(message string) bool {
	run := 0
	for _, r := range message {
		if unicode.IsDigit(r) {
			run++
			if run >= 8 {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

const contactHintText = "[Sistema: El mensaje anterior parece contener datos de contacto. " +
	"Identifica: nombre, teléfono (9 dígitos), email (@), RUC (11 dígitos) o DNI (8 dígitos), " +
	"y nombre de empresa. Usa save_contact con los datos identificados, luego responde " +
	"preguntando SOLO por los datos que faltan.]"

// contactHint builds the synthetic hint content unit. It is appended to the
// generation copy only and never reaches the durable transcript.
func contactHint() llm.Content {
	return llm.TextContent(llm.RoleUser, contactHintText)
}
