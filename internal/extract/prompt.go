package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BuildSystemPrompt returns the system instruction for an extraction call.
// It states the fixed output schema, embeds the current accumulated state
// verbatim, and instructs the model to prefer explicit new information over
// preserved old information.
func BuildSystemPrompt(kind Kind, current State) (string, error) {
	fields, err := FieldsFor(kind)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a %s data extraction assistant for a travel expense application. ", kind)
	b.WriteString("Read the conversation, any pasted images, and any attached document text, and extract the fields below.\n\n")

	b.WriteString("Fields:\n")
	for _, f := range fields {
		fmt.Fprintf(&b, "- %s (%s): %s", f.Name, f.Type, f.Description)
		if len(f.Enum) > 0 {
			fmt.Fprintf(&b, " [one of: %s]", strings.Join(f.Enum, ", "))
		}
		b.WriteString("\n")
	}

	stateJSON := []byte("{}")
	if len(current) > 0 {
		stateJSON, err = json.Marshal(current)
		if err != nil {
			return "", fmt.Errorf("marshaling current state: %w", err)
		}
	}
	fmt.Fprintf(&b, "\nCurrent accumulated data:\n%s\n\n", stateJSON)

	b.WriteString("Rules:\n")
	fmt.Fprintf(&b, "- Respond ONLY by calling the record_%s_fields tool.\n", kind)
	b.WriteString("- Report only fields you can determine from the input; omit everything else.\n")
	b.WriteString("- When new information contradicts the current accumulated data, prefer the explicit new information.\n")
	b.WriteString("- When the input says nothing about a field, do not repeat its current value; just omit it.\n")
	b.WriteString("- Dates are YYYY-MM-DD. Amounts are plain numbers without currency symbols.\n")

	return b.String(), nil
}
