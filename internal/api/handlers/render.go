package handlers

import (
	"encoding/json"
	"fmt"
	"strings"
)

// render turns item into its JSON object form and makes sure every requested
// embed is present, as null or an empty list when nothing is related.
func render(item interface{}, embeds []string) (map[string]interface{}, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return nil, fmt.Errorf("encode %T: %w", item, err)
	}
	out := map[string]interface{}{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %T: %w", item, err)
	}

	for _, embed := range embeds {
		if _, ok := out[embed]; ok {
			continue
		}
		if strings.HasSuffix(embed, "s") {
			out[embed] = []interface{}{}
		} else {
			out[embed] = nil
		}
	}
	return out, nil
}

func renderAll[T any](items []T, embeds []string) ([]map[string]interface{}, error) {
	out := make([]map[string]interface{}, 0, len(items))
	for i := range items {
		obj, err := render(&items[i], embeds)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

// splitList parses comma separated query values, repeated or not.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
