package postgres

import "encoding/json"

// Permission chains and membership lists are stored as jsonb arrays.

func marshalChain(values []string) []byte {
	if values == nil {
		values = []string{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return []byte("[]")
	}
	return b
}

func unmarshalChain(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var values []string
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	return values
}
